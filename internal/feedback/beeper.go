package feedback

import (
	"fmt"
	"unsafe"

	"github.com/gen2brain/malgo"

	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/detection"
)

// Beeper plays the detector tone through the default audio output.
type Beeper struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	tone   *Tone
}

// NewBeeper initializes the audio device and starts (silent) playback.
func NewBeeper() (*Beeper, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}

	b := &Beeper{
		ctx:  ctx,
		tone: NewTone(config.AudioSampleRate),
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 1
	deviceConfig.SampleRate = config.AudioSampleRate
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(pOutputSamples, pInputSamples []byte, framecount uint32) {
		if len(pOutputSamples) == 0 {
			return
		}
		samples := unsafe.Slice((*float32)(unsafe.Pointer(&pOutputSamples[0])), int(framecount))
		b.tone.Fill(samples)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("init audio device: %w", err)
	}
	b.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("start audio device: %w", err)
	}

	return b, nil
}

// Update feeds a reading into the tone generator.
func (b *Beeper) Update(r detection.Reading) {
	b.tone.SetReading(r)
}

// Silence mutes output without tearing the device down.
func (b *Beeper) Silence() {
	b.tone.Silence()
}

// Close stops playback and releases the audio device.
func (b *Beeper) Close() {
	if b.device != nil {
		b.device.Uninit()
		b.device = nil
	}
	if b.ctx != nil {
		_ = b.ctx.Uninit()
		b.ctx.Free()
		b.ctx = nil
	}
}
