package analysis

import (
	"math"
	"testing"

	"github.com/austinkregel/jipes/frame"
)

func almostEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestCosineDistanceOfIdenticalVectorsIsOne(t *testing.T) {
	a := frame.NewReal(0, frame.AudioFormat{}, []float32{1, 2, 3})
	b := frame.NewReal(0, frame.AudioFormat{}, []float32{1, 2, 3})
	if d := CosineDistance(a, b); !almostEqual(d, 1, 1e-4) {
		t.Errorf("CosineDistance(identical) = %v, want 1", d)
	}
}

func TestCosineDistanceOfOrthogonalVectorsIsZero(t *testing.T) {
	a := frame.NewReal(0, frame.AudioFormat{}, []float32{1, 0})
	b := frame.NewReal(0, frame.AudioFormat{}, []float32{0, 1})
	if d := CosineDistance(a, b); !almostEqual(d, 0, 1e-4) {
		t.Errorf("CosineDistance(orthogonal) = %v, want 0", d)
	}
}

func TestCosineDistanceMatchesScenarioFixture(t *testing.T) {
	// spec.md §8 scenario 7: alternating [0..15]/[15..0] frames. Same-type
	// pairs are identical vectors (similarity 1.0); cross-type pairs have
	// dot=560, ||a||^2=||b||^2=1240, cos=560/1240=0.4516129.
	up := make([]float32, 16)
	down := make([]float32, 16)
	for i := range up {
		up[i] = float32(i)
		down[i] = float32(15 - i)
	}
	a := frame.NewReal(0, frame.AudioFormat{}, up)
	b := frame.NewReal(1, frame.AudioFormat{}, down)
	if d := CosineDistance(a, a); !almostEqual(d, 1.0, 1e-6) {
		t.Errorf("CosineDistance(up, up) = %v, want 1.0", d)
	}
	if d := CosineDistance(a, b); !almostEqual(d, 0.4516129, 1e-6) {
		t.Errorf("CosineDistance(up, down) = %v, want 0.4516129", d)
	}
}

func TestCosineDistanceOfZeroVectorIsOne(t *testing.T) {
	a := frame.NewReal(0, frame.AudioFormat{}, []float32{0, 0})
	b := frame.NewReal(0, frame.AudioFormat{}, []float32{1, 2})
	if d := CosineDistance(a, b); d != 1 {
		t.Errorf("CosineDistance(zero vector) = %v, want 1", d)
	}
}

func TestNewSelfSimilarityRejectsNilDistance(t *testing.T) {
	if _, err := NewSelfSimilarity("ss", nil, 0); err == nil {
		t.Fatal("expected a ConfigError for a nil distance function")
	}
}

func TestSelfSimilarityMatrixDiagonalIsOne(t *testing.T) {
	ss, err := NewSelfSimilarity("ss", CosineDistance, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		f := frame.NewReal(int64(i), frame.AudioFormat{SampleRate: 8000}, []float32{float32(i + 1), float32(i + 2)})
		if err := ss.Process(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := ss.Flush(); err != nil {
		t.Fatal(err)
	}
	m := ss.Output().(frame.Matrix)
	if m.Rows != 3 || m.Cols != 3 {
		t.Fatalf("expected a 3x3 matrix, got %dx%d", m.Rows, m.Cols)
	}
	for i := 0; i < 3; i++ {
		if !almostEqual(m.At(i, i), 1, 1e-4) {
			t.Errorf("diagonal entry (%d,%d) = %v, want 1 (a frame's cosine similarity to itself)", i, i, m.At(i, i))
		}
	}
}

func TestSelfSimilarityBandwidthZerosEntriesOutsideBand(t *testing.T) {
	ss, err := NewSelfSimilarity("ss", CosineDistance, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		f := frame.NewReal(int64(i), frame.AudioFormat{SampleRate: 8000}, []float32{float32(i + 1), 1})
		if err := ss.Process(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := ss.Flush(); err != nil {
		t.Fatal(err)
	}
	m := ss.Output().(frame.Matrix)
	if m.At(0, 4) != 0 {
		t.Errorf("expected entries outside the bandwidth to be 0, got %v at (0,4)", m.At(0, 4))
	}
}

func TestGaussianCheckerboardKernelDim4(t *testing.T) {
	k := GaussianCheckerboardKernel(4)
	if !almostEqual(k[0][0], 0.011108996, 1e-6) {
		t.Errorf("k[0][0] = %v, want 0.011108996", k[0][0])
	}
	if !almostEqual(k[0][1], 0.082085, 1e-5) {
		t.Errorf("k[0][1] = %v, want 0.082085", k[0][1])
	}
	if !almostEqual(k[1][1], 0.60653067, 1e-6) {
		t.Errorf("k[1][1] = %v, want 0.60653067", k[1][1])
	}
	// The kernel is antisymmetric across its centre: the corner opposite
	// in sign to (0,0) carries the same magnitude but negated.
	if !almostEqual(k[0][3], -k[0][0], 1e-6) {
		t.Errorf("k[0][3] = %v, want %v (antisymmetric to k[0][0])", k[0][3], -k[0][0])
	}
}

func TestNewNoveltyValidation(t *testing.T) {
	if _, err := NewNovelty("n", nil, 4, false); err == nil {
		t.Fatal("expected a ConfigError for a nil distance function")
	}
	if _, err := NewNovelty("n", CosineDistance, 0, false); err == nil {
		t.Fatal("expected a ConfigError for kernelDim < 1")
	}
}

func TestNoveltyZeroDistanceYieldsZeroCurve(t *testing.T) {
	n, err := NewNovelty("n", func(a, b frame.Frame) float32 { return 0 }, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		f := frame.NewReal(int64(i), frame.AudioFormat{SampleRate: 8000}, []float32{float32(i)})
		if err := n.Process(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := n.Flush(); err != nil {
		t.Fatal(err)
	}
	out := n.Output().(frame.Real)
	for i, v := range out.Samples {
		if v != 0 {
			t.Errorf("curve[%d] = %v, want 0 when every pairwise distance is 0", i, v)
		}
	}
}

func TestOnsetStrengthValidation(t *testing.T) {
	if _, err := NewOnsetStrength("o", 0, 100, 0); err == nil {
		t.Fatal("expected a ConfigError for hop <= 0")
	}
	if _, err := NewOnsetStrength("o", 200, 100, 512); err == nil {
		t.Fatal("expected a ConfigError for low > high")
	}
}

func TestOnsetStrengthFirstFrameContributesNothing(t *testing.T) {
	o, err := NewOnsetStrength("o", 0, 4000, 512)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := frame.NewLinearSpectrum(0, frame.AudioFormat{SampleRate: 8000}, 8, []float32{1, 1, 1, 1}, []float32{0, 0, 0, 0})
	if err := o.Process(s); err != nil {
		t.Fatal(err)
	}
	if err := o.Flush(); err != nil {
		t.Fatal(err)
	}
	out := o.Output().(frame.Real)
	if out.Samples[0] != 0 {
		t.Errorf("curve[0] = %v, want 0 (no prior frame to diff against)", out.Samples[0])
	}
}

func TestOnsetStrengthRectifiesOnlyPositiveFlux(t *testing.T) {
	o, err := NewOnsetStrength("o", 0, 10000, 512)
	if err != nil {
		t.Fatal(err)
	}
	quiet, _ := frame.NewLinearSpectrum(0, frame.AudioFormat{SampleRate: 8000}, 8, []float32{1, 1, 1, 1}, []float32{0, 0, 0, 0})
	loud, _ := frame.NewLinearSpectrum(1, frame.AudioFormat{SampleRate: 8000}, 8, []float32{10, 10, 10, 10}, []float32{0, 0, 0, 0})
	if err := o.Process(quiet); err != nil {
		t.Fatal(err)
	}
	if err := o.Process(loud); err != nil {
		t.Fatal(err)
	}
	if err := o.Process(quiet); err != nil {
		t.Fatal(err)
	}
	if err := o.Flush(); err != nil {
		t.Fatal(err)
	}
	out := o.Output().(frame.Real)
	if out.Samples[1] <= 0 {
		t.Errorf("curve[1] (quiet->loud) = %v, want > 0", out.Samples[1])
	}
	if out.Samples[2] != 0 {
		t.Errorf("curve[2] (loud->quiet, a decrease) = %v, want 0 (rectified away)", out.Samples[2])
	}
	if out.Format.SampleRate != 8000/512 {
		t.Errorf("output sample rate = %d, want %d", out.Format.SampleRate, 8000/512)
	}
}

func TestMatrixCollectorZeroPadsRaggedRows(t *testing.T) {
	mc := NewMatrixCollector("mc")
	if err := mc.Process(frame.NewReal(0, frame.AudioFormat{}, []float32{1, 2})); err != nil {
		t.Fatal(err)
	}
	if err := mc.Process(frame.NewReal(1, frame.AudioFormat{}, []float32{1, 2, 3})); err != nil {
		t.Fatal(err)
	}
	if err := mc.Flush(); err != nil {
		t.Fatal(err)
	}
	m := mc.Output().(frame.Matrix)
	if m.Cols != 3 {
		t.Fatalf("expected width to widen to the widest row (3), got %d", m.Cols)
	}
	if m.At(0, 2) != 0 {
		t.Errorf("expected the short row to be zero-padded, got %v at (0,2)", m.At(0, 2))
	}
}

func TestLogMagMonotonic(t *testing.T) {
	if !(logMag(10) > logMag(1)) {
		t.Error("expected logMag to be monotonically increasing in its input")
	}
	if math.IsInf(float64(logMag(0)), -1) {
		t.Error("expected the log floor to keep logMag(0) finite")
	}
}
