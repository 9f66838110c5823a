package analysis

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// MatrixCollector accumulates one row per input frame's Data() view
// (cloned on accumulate, like every accumulator in this package) and, on
// Flush, emits them as a single frame.Matrix, per spec.md §2's "audio
// matrix collection" analytical processor. Rows shorter than the widest
// row seen are zero-padded on the right so every row has the same length.
type MatrixCollector struct {
	*graph.BaseProcessor

	rows   [][]float32
	format frame.AudioFormat
	seen   bool
}

// NewMatrixCollector constructs a MatrixCollector.
func NewMatrixCollector(id graph.ID) *MatrixCollector {
	m := &MatrixCollector{}
	m.BaseProcessor = graph.NewBaseProcessor(id, nil, m.equalSelf, m.string)
	return m
}

func (m *MatrixCollector) equalSelf(other graph.Processor) bool {
	_, ok := other.(*MatrixCollector)
	return ok
}

func (m *MatrixCollector) string() string {
	if id := m.ID(); id != nil {
		return fmt.Sprintf("MatrixCollector{id=%v}", id)
	}
	return "MatrixCollector{}"
}

// Process accumulates a copy of in's Data() row.
func (m *MatrixCollector) Process(in frame.Frame) error {
	if !m.seen {
		m.format = in.Head().Format
		m.seen = true
	}
	row := dataOf(in)
	cp := make([]float32, len(row))
	copy(cp, row)
	m.rows = append(m.rows, cp)
	return nil
}

// ProcessChannel treats every channel as channel 0.
func (m *MatrixCollector) ProcessChannel(channel int, in frame.Frame) error { return m.Process(in) }

// Read is unsupported; MatrixCollector only emits at flush.
func (m *MatrixCollector) Read() (frame.Frame, error) {
	return nil, fmt.Errorf("analysis: MatrixCollector does not support pull mode")
}

// Flush emits the collected matrix (zero-padded to the widest row), then
// forwards flush downstream.
func (m *MatrixCollector) Flush() error {
	width := 0
	for _, r := range m.rows {
		if len(r) > width {
			width = len(r)
		}
	}
	values := make([]float32, len(m.rows)*width)
	for i, r := range m.rows {
		copy(values[i*width:i*width+len(r)], r)
	}
	out, err := frame.NewMatrix(0, m.format, len(m.rows), width, values)
	if err != nil {
		return err
	}
	m.SetOutput(out)
	if err := m.FanOut().Process(out); err != nil {
		return err
	}
	return m.FanOut().Flush()
}
