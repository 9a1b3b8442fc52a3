package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mag-radar.solberg.io/internal/app"
	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/feedback"
	"mag-radar.solberg.io/internal/magnet"
)

var (
	flagDemo       bool
	flagI2CBus     string
	flagGain       int
	flagSerialPort string
	flagBaud       int
	flagMute       bool
	flagConfig     string
	flagDebug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mag-radar",
		Short: "Terminal metal detector driven by a 3-axis magnetometer",
		Long: `mag-radar reads a 3-axis magnetometer, calibrates against the ambient
field, and displays magnetic anomalies on a circular ASCII radar with
audio feedback. Pitch follows signal strength and the beep cadence
follows the detection level, like a classic metal detector.

Supported sensors: HMC5883L-family over I2C (--i2c-bus), or any
serial bridge emitting "x,y,z" µT lines (--serial). Use --demo for a
simulated sensor with a wandering buried target.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run with a simulated magnetometer (no hardware required)")
	rootCmd.Flags().StringVar(&flagI2CBus, "i2c-bus", "", "I2C bus of an HMC5883L magnetometer (e.g. \"1\" or \"/dev/i2c-1\")")
	rootCmd.Flags().IntVar(&flagGain, "gain", 1, "HMC5883L gain code 0-7 (higher = wider range, coarser)")
	rootCmd.Flags().StringVar(&flagSerialPort, "serial", "", "Serial port of a magnetometer bridge (e.g. /dev/ttyUSB0)")
	rootCmd.Flags().IntVar(&flagBaud, "baud", 115200, "Serial baud rate")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with audio feedback off")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML file overriding detection tuning")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Write debug output to mag-radar.log")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagDebug {
		f, err := tea.LogToFile("mag-radar.log", "mag-radar")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	}

	tuning, err := config.LoadTuning(flagConfig)
	if err != nil {
		return err
	}

	source, sourceName, err := newSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "No magnetometer found. Try one of:")
		fmt.Fprintln(os.Stderr, "  mag-radar --i2c-bus 1")
		fmt.Fprintln(os.Stderr, "  mag-radar --serial /dev/ttyUSB0")
		fmt.Fprintln(os.Stderr, "  mag-radar --demo    (demo mode, no hardware needed)")
		return err
	}

	sink := newSink()

	model := app.New(tuning, source, sourceName, sink, flagMute)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	if err := model.StartSource(p); err != nil {
		sink.Close()
		return err
	}

	_, err = p.Run()
	return err
}

// newSource picks the sensor from the flags. Exactly one source runs per
// session.
func newSource() (magnet.Source, string, error) {
	switch {
	case flagDemo:
		return magnet.NewMockSource(), "demo", nil
	case flagI2CBus != "":
		src, err := magnet.NewI2CSource(flagI2CBus, flagGain)
		if err != nil {
			return nil, "", err
		}
		return src, "i2c:" + flagI2CBus, nil
	case flagSerialPort != "":
		src, err := magnet.NewSerialSource(flagSerialPort, flagBaud)
		if err != nil {
			return nil, "", err
		}
		return src, flagSerialPort, nil
	default:
		return nil, "", fmt.Errorf("no sensor selected: pass --i2c-bus, --serial, or --demo")
	}
}

// newSink prefers real audio and falls back to silence when the device
// cannot be opened (headless hosts, CI).
func newSink() feedback.Sink {
	beeper, err := feedback.NewBeeper()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio unavailable, running silent: %v\n", err)
		return feedback.Nop{}
	}
	return beeper
}
