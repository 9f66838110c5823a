package frame

// Matrix carries a 2-D array of float32 values, row-major: the output of
// self-similarity, novelty and other whole-buffer analytical processors.
type Matrix struct {
	Header
	Rows, Cols int
	Values     []float32 // len == Rows*Cols, row-major
}

// NewMatrix constructs a Matrix frame. values must have length rows*cols.
func NewMatrix(frameIndex int64, format AudioFormat, rows, cols int, values []float32) (Matrix, error) {
	if len(values) != rows*cols {
		return Matrix{}, &FormatError{Op: "NewMatrix", Reason: "values length must equal rows*cols"}
	}
	return Matrix{
		Header: Header{FrameIndex: frameIndex, Format: format, NumSamples: cols},
		Rows:   rows,
		Cols:   cols,
		Values: values,
	}, nil
}

// At returns the value at (row, col).
func (m Matrix) At(row, col int) float32 {
	return m.Values[row*m.Cols+col]
}

// Row returns a view over row r.
func (m Matrix) Row(r int) []float32 {
	return m.Values[r*m.Cols : (r+1)*m.Cols]
}

// Data exposes row 0, the generic "payload" accessor for a Matrix frame.
func (m Matrix) Data() []float32 {
	if m.Rows == 0 {
		return nil
	}
	return m.Row(0)
}

// Clone deep-copies the value array.
func (m Matrix) Clone() Matrix {
	v := make([]float32, len(m.Values))
	copy(v, m.Values)
	return Matrix{Header: m.Header, Rows: m.Rows, Cols: m.Cols, Values: v}
}
