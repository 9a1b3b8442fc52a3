package magnet

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.bug.st/serial"
)

// SerialSource reads samples from a serial-bridged magnetometer (e.g. an
// Arduino forwarding sensor readings). The wire format is one sample per
// line: "x,y,z" in µT. Malformed or non-finite lines are dropped here so
// the processor only ever sees valid input.
type SerialSource struct {
	program *tea.Program
	cancel  context.CancelFunc

	port serial.Port
	name string
}

// NewSerialSource opens the named port at the given baud rate.
func NewSerialSource(name string, baud int) (*SerialSource, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	return &SerialSource{port: port, name: name}, nil
}

// Start begins reading lines in a goroutine.
func (s *SerialSource) Start(p *tea.Program) error {
	s.program = p

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *SerialSource) loop(ctx context.Context) {
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		sample, err := ParseSampleLine(scanner.Text(), time.Now())
		if err != nil {
			log.Printf("magnet: serial %s: %v", s.name, err)
			continue
		}
		if s.program != nil {
			s.program.Send(SampleMsg{Sample: sample})
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		if s.program != nil {
			s.program.Send(SourceErrorMsg{Err: fmt.Errorf("serial %s: %w", s.name, err)})
		}
	}
}

// ParseSampleLine parses one "x,y,z" line of µT readings.
func ParseSampleLine(line string, now time.Time) (Sample, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 3 {
		return Sample{}, fmt.Errorf("bad sample line %q: want 3 fields, got %d", line, len(parts))
	}

	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("bad sample line %q: %w", line, err)
		}
		vals[i] = v
	}

	sample := Sample{X: vals[0], Y: vals[1], Z: vals[2], Time: now}
	if !sample.Valid() {
		return Sample{}, fmt.Errorf("non-finite sample %q rejected", line)
	}
	return sample, nil
}

// Stop halts reading and closes the port.
func (s *SerialSource) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.port != nil {
		_ = s.port.Close()
	}
}
