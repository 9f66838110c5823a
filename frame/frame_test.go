package frame

import "testing"

func TestHeaderTimestamp(t *testing.T) {
	tests := []struct {
		name       string
		frameIndex int64
		sampleRate int
		units      int64
		want       int64
	}{
		{"one second at 44100Hz", 44100, 44100, UnitSeconds, 1},
		{"half second in milliseconds", 22050, 44100, UnitMilliseconds, 500},
		{"zero sample rate", 100, 0, UnitSeconds, 0},
		{"frame zero", 0, 44100, UnitNanoseconds, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Header{FrameIndex: tt.frameIndex, Format: AudioFormat{SampleRate: tt.sampleRate}}
			if got := h.Timestamp(tt.units); got != tt.want {
				t.Errorf("Timestamp() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAudioFormatMono(t *testing.T) {
	if !(AudioFormat{Channels: 1}).Mono() {
		t.Error("expected Channels:1 to report Mono()")
	}
	if (AudioFormat{Channels: 2}).Mono() {
		t.Error("expected Channels:2 to not report Mono()")
	}
}

func TestRealClone(t *testing.T) {
	r := NewReal(0, AudioFormat{SampleRate: 8000}, []float32{1, 2, 3})
	c := r.Clone()
	if !r.Equal(c) {
		t.Fatal("clone should be equal to original")
	}
	c.Samples[0] = 99
	if r.Samples[0] == 99 {
		t.Error("mutating the clone mutated the original: Clone did not deep-copy")
	}
}

func TestRealDerive(t *testing.T) {
	r := NewReal(5, AudioFormat{SampleRate: 8000}, []float32{1, 2})
	d := r.Derive(6, []float32{3, 4, 5})
	if d.FrameIndex != 6 || d.NumSamples != 3 {
		t.Errorf("Derive header = {idx=%d, n=%d}, want {idx=6, n=3}", d.FrameIndex, d.NumSamples)
	}
	if d.Format != r.Format {
		t.Error("Derive should keep the original format")
	}
}

func TestRealPowersAndMagnitudes(t *testing.T) {
	r := NewReal(0, AudioFormat{}, []float32{-2, 3})
	mags := r.Magnitudes()
	if mags[0] != 2 || mags[1] != 3 {
		t.Errorf("Magnitudes() = %v, want [2 3]", mags)
	}
	pows := r.Powers()
	if pows[0] != 4 || pows[1] != 9 {
		t.Errorf("Powers() = %v, want [4 9]", pows)
	}
}

func TestComplexMagnitudesAndPowers(t *testing.T) {
	c := NewComplex(0, AudioFormat{}, []float32{3, 0}, []float32{4, 5})
	mags := c.Magnitudes()
	if mags[0] != 5 {
		t.Errorf("Magnitudes()[0] = %v, want 5", mags[0])
	}
	pows := c.Powers()
	if pows[0] != 25 {
		t.Errorf("Powers()[0] = %v, want 25", pows[0])
	}
}

func TestNewComplexCheckedRejectsMismatchedLengths(t *testing.T) {
	_, err := NewComplexChecked(0, AudioFormat{}, []float32{1, 2}, []float32{1})
	if err == nil {
		t.Fatal("expected a FormatError for mismatched real/imaginary lengths")
	}
	if _, ok := err.(*FormatError); !ok {
		t.Errorf("expected *FormatError, got %T", err)
	}
}

func TestNewLinearSpectrumValidatesBinCount(t *testing.T) {
	if _, err := NewLinearSpectrum(0, AudioFormat{SampleRate: 100}, 8, make([]float32, 4), make([]float32, 4)); err != nil {
		t.Fatalf("expected 4 bins to satisfy an 8-sample input, got %v", err)
	}
	if _, err := NewLinearSpectrum(0, AudioFormat{SampleRate: 100}, 8, make([]float32, 3), make([]float32, 3)); err == nil {
		t.Fatal("expected a FormatError for a bin count that doesn't match inputLength/2")
	}
}

func TestLinearSpectrumFrequencyMirroring(t *testing.T) {
	s, err := NewLinearSpectrum(0, AudioFormat{SampleRate: 8000}, 8, make([]float32, 4), make([]float32, 4))
	if err != nil {
		t.Fatal(err)
	}
	if bw := s.Bandwidth(); bw != 1000 {
		t.Fatalf("Bandwidth() = %v, want 1000", bw)
	}
	if s.Frequency(1) != s.Frequency(7) {
		t.Errorf("Frequency(1)=%v should equal its mirror Frequency(7)=%v", s.Frequency(1), s.Frequency(7))
	}
	if s.Frequency(0) != 0 {
		t.Errorf("Frequency(0) = %v, want 0", s.Frequency(0))
	}
}

func TestLinearSpectrumBinClampsToHalfSpectrum(t *testing.T) {
	s, _ := NewLinearSpectrum(0, AudioFormat{SampleRate: 8000}, 8, make([]float32, 4), make([]float32, 4))
	if got := s.Bin(100000); got != 3 {
		t.Errorf("Bin(huge) = %d, want 3 (clamped to half-1)", got)
	}
}

func TestInstantaneousFrequencyIdentityCase(t *testing.T) {
	s, _ := NewLinearSpectrum(10, AudioFormat{SampleRate: 8000}, 8, []float32{1, 2, 3, 4}, []float32{0, 0, 0, 0})
	same, _ := NewLinearSpectrum(10, AudioFormat{SampleRate: 8000}, 8, []float32{1, 2, 3, 4}, []float32{0, 0, 0, 0})
	out, err := NewInstantaneousFrequencySpectrum(s, same)
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range out.Frequencies_ {
		if f != 0 {
			t.Errorf("Frequencies_[%d] = %v, want 0 for two identical frames", i, f)
		}
	}
}

func TestInstantaneousFrequencyRejectsShapeMismatch(t *testing.T) {
	cur, _ := NewLinearSpectrum(0, AudioFormat{SampleRate: 8000}, 8, make([]float32, 4), make([]float32, 4))
	prev, _ := NewLinearSpectrum(0, AudioFormat{SampleRate: 8000}, 4, make([]float32, 2), make([]float32, 2))
	if _, err := NewInstantaneousFrequencySpectrum(cur, prev); err == nil {
		t.Fatal("expected a FormatError for mismatched cur/prev shapes")
	}
}

func TestMultiBandSpectrumValidation(t *testing.T) {
	if _, err := NewMultiBandSpectrum(0, AudioFormat{}, []float32{0, 100, 50}, []float32{1, 2}); err == nil {
		t.Fatal("expected a FormatError for non-increasing boundaries")
	}
	m, err := NewMultiBandSpectrum(0, AudioFormat{}, []float32{0, 100, 200}, []float32{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Bin(150); got != 1 {
		t.Errorf("Bin(150) = %d, want 1", got)
	}
	if got := m.Bin(500); got != -1 {
		t.Errorf("Bin(500) = %d, want -1 (out of range)", got)
	}
}

func TestMatrixAtAndRow(t *testing.T) {
	m, err := NewMatrix(0, AudioFormat{}, 2, 3, []float32{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if m.At(1, 2) != 6 {
		t.Errorf("At(1,2) = %v, want 6", m.At(1, 2))
	}
	row := m.Row(0)
	if len(row) != 3 || row[0] != 1 {
		t.Errorf("Row(0) = %v, want [1 2 3]", row)
	}
	if _, err := NewMatrix(0, AudioFormat{}, 2, 3, []float32{1, 2, 3}); err == nil {
		t.Fatal("expected a FormatError when values length doesn't match rows*cols")
	}
}

func TestLogFrequencySpectrumShift(t *testing.T) {
	s, err := NewLogFrequencySpectrum(0, AudioFormat{}, 1, []float32{100, 200, 300}, []float32{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	up := s.Shift(1)
	if want := []float32{0, 1, 2}; !AlmostEqual(up.Magnitudes_, want, DefaultTolerance) {
		t.Errorf("Shift(1) = %v, want %v", up.Magnitudes_, want)
	}
	down := s.Shift(-1)
	if want := []float32{2, 3, 0}; !AlmostEqual(down.Magnitudes_, want, DefaultTolerance) {
		t.Errorf("Shift(-1) = %v, want %v", down.Magnitudes_, want)
	}
}

func TestAlmostEqual(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1.00001, 2.00001, 3.00001}
	if !AlmostEqual(a, b, DefaultTolerance) {
		t.Error("expected near-identical arrays to compare almost-equal")
	}
	if AlmostEqual(a, []float32{1, 2}, DefaultTolerance) {
		t.Error("expected arrays of different lengths to never be almost-equal")
	}
}
