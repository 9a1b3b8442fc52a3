package magnet

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"mag-radar.solberg.io/internal/config"
)

// HMC5883L/HMC5983 register map.
const (
	hmcRegCRA  = 0x00
	hmcRegCRB  = 0x01
	hmcRegMode = 0x02
	hmcRegData = 0x03 // X MSB, X LSB, Z MSB, Z LSB, Y MSB, Y LSB
	hmcRegIDA  = 0x0A

	hmcAddr = 0x1E

	// CRA: 8-sample averaging, 75 Hz output rate, normal bias.
	hmcCRAValue = 0x78
	// Mode: continuous measurement.
	hmcModeContinuous = 0x00

	// ADC overflow/underflow marker.
	hmcSaturated = -4096
)

// LSB-per-Gauss by gain code, from the datasheet. The Z channel uses a
// slightly different scale than X/Y.
var (
	hmcGainXY = []float64{1370, 1090, 820, 660, 440, 390, 330, 230}
	hmcGainZ  = []float64{1330, 980, 660, 600, 400, 355, 295, 205}
)

// I2CSource reads an HMC5883L-family magnetometer over I2C and emits
// samples at the nominal rate.
type I2CSource struct {
	program *tea.Program
	cancel  context.CancelFunc

	bus     i2c.BusCloser
	dev     i2c.Dev
	scaleXY float64 // µT per count
	scaleZ  float64
}

// NewI2CSource opens busName (e.g. "1" or "/dev/i2c-1") and configures the
// sensor for continuous measurement with the given gain code (0-7).
func NewI2CSource(busName string, gainCode int) (*I2CSource, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	if gainCode < 0 || gainCode >= len(hmcGainXY) {
		gainCode = 1 // ±1.3 Gauss, the sensor default
	}

	s := &I2CSource{
		bus: bus,
		dev: i2c.Dev{Addr: hmcAddr, Bus: bus},
		// counts -> Gauss -> µT (1 Gauss = 100 µT)
		scaleXY: 100.0 / hmcGainXY[gainCode],
		scaleZ:  100.0 / hmcGainZ[gainCode],
	}

	if err := s.configure(gainCode); err != nil {
		_ = bus.Close()
		return nil, err
	}
	return s, nil
}

func (s *I2CSource) configure(gainCode int) error {
	// Identify the chip before touching config registers.
	id := make([]byte, 3)
	if err := s.dev.Tx([]byte{hmcRegIDA}, id); err != nil {
		return fmt.Errorf("read magnetometer id: %w", err)
	}
	if id[0] != 'H' || id[1] != '4' || id[2] != '3' {
		return fmt.Errorf("unexpected magnetometer id %q, want H43", id)
	}

	for _, w := range [][]byte{
		{hmcRegCRA, hmcCRAValue},
		{hmcRegCRB, byte(gainCode) << 5},
		{hmcRegMode, hmcModeContinuous},
	} {
		if err := s.dev.Tx(w, nil); err != nil {
			return fmt.Errorf("configure magnetometer: %w", err)
		}
	}
	return nil
}

// Start begins polling the sensor in a goroutine.
func (s *I2CSource) Start(p *tea.Program) error {
	s.program = p

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *I2CSource) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / config.SampleRateHz)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sample, err := s.read(now)
			if err != nil {
				log.Printf("magnet: i2c read: %v", err)
				if s.program != nil {
					s.program.Send(SourceErrorMsg{Err: err})
				}
				continue
			}
			if !sample.Valid() {
				continue
			}
			if s.program != nil {
				s.program.Send(SampleMsg{Sample: sample})
			}
		}
	}
}

func (s *I2CSource) read(now time.Time) (Sample, error) {
	buf := make([]byte, 6)
	if err := s.dev.Tx([]byte{hmcRegData}, buf); err != nil {
		return Sample{}, err
	}

	// Register order is X, Z, Y.
	x := int16(binary.BigEndian.Uint16(buf[0:2]))
	z := int16(binary.BigEndian.Uint16(buf[2:4]))
	y := int16(binary.BigEndian.Uint16(buf[4:6]))

	if x == hmcSaturated || y == hmcSaturated || z == hmcSaturated {
		return Sample{}, fmt.Errorf("magnetometer saturated, lower the gain")
	}

	return Sample{
		X:    float64(x) * s.scaleXY,
		Y:    float64(y) * s.scaleXY,
		Z:    float64(z) * s.scaleZ,
		Time: now,
	}, nil
}

// Stop halts polling and releases the bus.
func (s *I2CSource) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.bus != nil {
		_ = s.bus.Close()
	}
}
