package framing

import (
	"testing"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// collector is a minimal downstream sink that records every frame pushed
// to it, used across this package's tests.
type collector struct {
	*graph.BaseProcessor
	frames []frame.Frame
}

func newCollector() *collector {
	c := &collector{}
	next := func(in frame.Frame) (frame.Frame, bool, error) {
		c.frames = append(c.frames, in)
		return in, true, nil
	}
	c.BaseProcessor = graph.NewBaseProcessor(nil, next, func(graph.Processor) bool { return false }, func() string { return "collector" })
	return c
}

func realFrame(idx int64, rate, channels int, samples []float32) frame.Real {
	return frame.NewReal(idx, frame.AudioFormat{SampleRate: rate, Channels: channels}, samples)
}

func TestMonoDownmixesStereo(t *testing.T) {
	m := NewMono("mono")
	c := newCollector()
	m.ConnectTo(c)

	in := realFrame(0, 44100, 2, []float32{10, 20, 10, 20})
	if err := m.Process(in); err != nil {
		t.Fatal(err)
	}
	out := c.frames[0].(frame.Real)
	want := []float32{15, 15}
	if !frame.AlmostEqual(out.Samples, want, frame.DefaultTolerance) {
		t.Errorf("Mono output = %v, want %v", out.Samples, want)
	}
	if out.Format.Channels != 1 {
		t.Errorf("Mono output channels = %d, want 1", out.Format.Channels)
	}
}

func TestMonoPassesThroughAlreadyMono(t *testing.T) {
	m := NewMono("mono")
	c := newCollector()
	m.ConnectTo(c)

	in := realFrame(0, 44100, 1, []float32{1, 2, 3})
	if err := m.Process(in); err != nil {
		t.Fatal(err)
	}
	out := c.frames[0].(frame.Real)
	if !frame.AlmostEqual(out.Samples, []float32{1, 2, 3}, frame.DefaultTolerance) {
		t.Errorf("Mono passthrough = %v, want [1 2 3]", out.Samples)
	}
}

func TestDownsampleHalvesRateAndKeepsEveryOtherFrame(t *testing.T) {
	d, err := NewDownsample("down", 2)
	if err != nil {
		t.Fatal(err)
	}
	c := newCollector()
	d.ConnectTo(c)

	for i := int64(0); i < 4; i++ {
		in := realFrame(i, 8000, 1, make([]float32, 100))
		if err := d.Process(in); err != nil {
			t.Fatal(err)
		}
	}
	if len(c.frames) != 2 {
		t.Fatalf("expected 2 kept frames out of 4, got %d", len(c.frames))
	}
	for _, f := range c.frames {
		if f.Head().Format.SampleRate != 4000 {
			t.Errorf("downsampled frame sample rate = %d, want 4000", f.Head().Format.SampleRate)
		}
	}
}

func TestFrameNumberFilter(t *testing.T) {
	f, err := NewFrameNumberFilter("filter", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	c := newCollector()
	f.ConnectTo(c)

	for i := int64(0); i < 5; i++ {
		in := realFrame(i, 8000, 1, []float32{float32(i)})
		if err := f.Process(in); err != nil {
			t.Fatal(err)
		}
	}
	if len(c.frames) != 2 {
		t.Fatalf("expected frames 2 and 3 to pass, got %d frames", len(c.frames))
	}
	if c.frames[0].Head().FrameIndex != 2 || c.frames[1].Head().FrameIndex != 3 {
		t.Errorf("unexpected frame indices: %d, %d", c.frames[0].Head().FrameIndex, c.frames[1].Head().FrameIndex)
	}
}

func TestNewResampleRejectsUpsampling(t *testing.T) {
	if _, err := NewResample("r", 2, 1); err == nil {
		t.Fatal("expected a ConfigError for numerator != 1")
	}
	r, err := NewResample("r", 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if r.Denominator != 3 {
		t.Errorf("Denominator = %d, want 3", r.Denominator)
	}
}

func TestNewResampleRejectsNonPositiveDenominator(t *testing.T) {
	if _, err := NewResample("r", 1, 0); err == nil {
		t.Fatal("expected a ConfigError for a denominator of 0 rather than a later modulo-by-zero panic")
	}
}

func TestNewDownsampleRejectsNonPositiveNth(t *testing.T) {
	if _, err := NewDownsample("d", 0); err == nil {
		t.Fatal("expected a ConfigError for nthFrameToKeep == 0 rather than a later modulo-by-zero panic")
	}
	if _, err := NewDownsample("d", -1); err == nil {
		t.Fatal("expected a ConfigError for a negative nthFrameToKeep")
	}
}

func TestNewFrameNumberFilterRejectsDecreasingBounds(t *testing.T) {
	if _, err := NewFrameNumberFilter("f", 5, 2); err == nil {
		t.Fatal("expected a ConfigError for min > max")
	}
}

func TestSlidingWindowRampAndFlushPadsTail(t *testing.T) {
	sw := NewSlidingWindow("sw", 4, 2)
	c := newCollector()
	sw.ConnectTo(c)

	ramp := realFrame(0, 8000, 1, []float32{1, 2, 3, 4, 5, 6, 7})
	if err := sw.Process(ramp); err != nil {
		t.Fatal(err)
	}
	if err := sw.Flush(); err != nil {
		t.Fatal(err)
	}

	want := [][]float32{
		{1, 2, 3, 4},
		{3, 4, 5, 6},
		{5, 6, 7, 0},
	}
	if len(c.frames) != len(want) {
		t.Fatalf("got %d slices, want %d", len(c.frames), len(want))
	}
	for i, f := range c.frames {
		got := f.(frame.Real).Samples
		if !frame.AlmostEqual(got, want[i], frame.DefaultTolerance) {
			t.Errorf("slice %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestSlidingWindowFlushEmitsNothingWhenBufferEmpty(t *testing.T) {
	sw := NewSlidingWindow("sw", 4, 4)
	c := newCollector()
	sw.ConnectTo(c)

	in := realFrame(0, 8000, 1, []float32{1, 2, 3, 4})
	if err := sw.Process(in); err != nil {
		t.Fatal(err)
	}
	if err := sw.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(c.frames) != 1 {
		t.Fatalf("expected no trailing slice when input divides evenly, got %d frames", len(c.frames))
	}
}

func TestOLAPreservesSampleSum(t *testing.T) {
	ola := NewOLA("ola", 4, 2)
	c := newCollector()
	ola.ConnectTo(c)

	slices := [][]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	}
	var inputSum float32
	for i, s := range slices {
		for _, v := range s {
			inputSum += v
		}
		in := realFrame(int64(i*2), 8000, 1, s)
		if err := ola.Process(in); err != nil {
			t.Fatal(err)
		}
	}
	if err := ola.Flush(); err != nil {
		t.Fatal(err)
	}

	var outputSum float32
	for _, f := range c.frames {
		for _, v := range f.(frame.Real).Samples {
			outputSum += v
		}
	}
	if !almostEqualScalarTest(inputSum, outputSum, 1e-3) {
		t.Errorf("OLA did not preserve sample sum: input=%v output=%v", inputSum, outputSum)
	}
}

func almostEqualScalarTest(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestZeropadModes(t *testing.T) {
	in := realFrame(0, 8000, 1, []float32{1, 2})
	tests := []struct {
		name string
		mode ZeropadMode
		want []float32
	}{
		{"prepend", Prepend, []float32{0, 0, 1, 2}},
		{"append", Append, []float32{1, 2, 0, 0}},
		{"both", Both, []float32{0, 1, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewZeropad("z", tt.mode, 4)
			c := newCollector()
			z.ConnectTo(c)
			if err := z.Process(in); err != nil {
				t.Fatal(err)
			}
			got := c.frames[0].(frame.Real).Samples
			if !frame.AlmostEqual(got, tt.want, frame.DefaultTolerance) {
				t.Errorf("Zeropad(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestZeropadRejectsOversizedInput(t *testing.T) {
	z := NewZeropad("z", Append, 2)
	err := z.Process(realFrame(0, 8000, 1, []float32{1, 2, 3}))
	if err == nil {
		t.Fatal("expected a FormatError for input longer than sizeAfterPadding")
	}
}

func TestInterleavedSplitThenJoinRoundTrips(t *testing.T) {
	split := NewInterleavedChannelSplit("split", 2)
	join := NewInterleavedChannelJoin("join", 2)
	c := newCollector()
	split.ConnectToChannel(0, join)
	split.ConnectToChannel(1, join)
	join.ConnectTo(c)

	in := realFrame(0, 8000, 2, []float32{1, 10, 2, 20, 3, 30})
	if err := split.Process(in); err != nil {
		t.Fatal(err)
	}
	if len(c.frames) != 1 {
		t.Fatalf("expected one rejoined frame, got %d", len(c.frames))
	}
	got := c.frames[0].(frame.Real).Samples
	if !frame.AlmostEqual(got, in.Samples, frame.DefaultTolerance) {
		t.Errorf("split-then-join = %v, want round trip to %v", got, in.Samples)
	}
}

func TestInterleavedChannelJoinFlushDropsPartialSlot(t *testing.T) {
	join := NewInterleavedChannelJoin("join", 2)
	c := newCollector()
	join.ConnectTo(c)

	if err := join.ProcessChannel(0, realFrame(0, 8000, 1, []float32{1, 2})); err != nil {
		t.Fatal(err)
	}
	if err := join.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(c.frames) != 0 {
		t.Errorf("expected a partial slot to be dropped on Flush, got %d frames", len(c.frames))
	}
}

func TestJoinByAggregationSumsParts(t *testing.T) {
	sum := func(parts []frame.Frame) (frame.Frame, error) {
		a := parts[0].(frame.Real)
		b := parts[1].(frame.Real)
		out := make([]float32, len(a.Samples))
		for i := range out {
			out[i] = a.Samples[i] + b.Samples[i]
		}
		return a.Derive(a.FrameIndex, out), nil
	}
	j, err := NewJoinByAggregation("agg", 2, sum)
	if err != nil {
		t.Fatal(err)
	}
	c := newCollector()
	j.ConnectTo(c)

	if err := j.ProcessChannel(0, realFrame(0, 8000, 1, []float32{1, 2})); err != nil {
		t.Fatal(err)
	}
	if err := j.ProcessChannel(1, realFrame(0, 8000, 1, []float32{10, 20})); err != nil {
		t.Fatal(err)
	}
	if len(c.frames) != 1 {
		t.Fatalf("expected one aggregated tick, got %d", len(c.frames))
	}
	got := c.frames[0].(frame.Real).Samples
	if !frame.AlmostEqual(got, []float32{11, 22}, frame.DefaultTolerance) {
		t.Errorf("aggregated = %v, want [11 22]", got)
	}
}

func TestJoinByAggregationRejectsInvalidConstruction(t *testing.T) {
	if _, err := NewJoinByAggregation("j", 0, func([]frame.Frame) (frame.Frame, error) { return nil, nil }); err == nil {
		t.Fatal("expected a ConfigError for parts < 1")
	}
	if _, err := NewJoinByAggregation("j", 1, nil); err == nil {
		t.Fatal("expected a ConfigError for a nil aggregate function")
	}
}

func TestBandSplitEmitsOneTilePerBandOnceWindowFull(t *testing.T) {
	bs := NewBandSplit("bs", 2)
	band0, band1 := newCollector(), newCollector()
	bs.ConnectToChannel(0, band0)
	bs.ConnectToChannel(1, band1)

	boundaries := []float32{0, 100, 200}
	for i := 0; i < 2; i++ {
		m, err := frame.NewMultiBandSpectrum(int64(i), frame.AudioFormat{SampleRate: 8000}, boundaries, []float32{float32(i), float32(i + 10)})
		if err != nil {
			t.Fatal(err)
		}
		if err := bs.Process(m); err != nil {
			t.Fatal(err)
		}
	}
	if len(band0.frames) != 1 || len(band1.frames) != 1 {
		t.Fatalf("expected one tile per band after WindowLength frames, got band0=%d band1=%d", len(band0.frames), len(band1.frames))
	}
	tile0 := band0.frames[0].(frame.Matrix)
	if !frame.AlmostEqual(tile0.Row(0), []float32{0, 1}, frame.DefaultTolerance) {
		t.Errorf("band 0 tile = %v, want [0 1]", tile0.Row(0))
	}
}

func TestWindowAppliesCoefficientsAndRecomputesOnLengthChange(t *testing.T) {
	w := NewHamming("w")
	c := newCollector()
	w.ConnectTo(c)

	in := realFrame(0, 8000, 1, []float32{1, 1, 1, 1})
	if err := w.Process(in); err != nil {
		t.Fatal(err)
	}
	out := c.frames[0].(frame.Real).Samples
	// Hamming's endpoints are 0.54-0.46=0.08, its centre approaches 1.
	if out[0] > out[1] {
		t.Errorf("expected Hamming window to taper up from the edge: got %v", out)
	}

	// A different input length should recompute the coefficient array
	// rather than reuse the stale one.
	in2 := realFrame(1, 8000, 1, []float32{1, 1})
	if err := w.Process(in2); err != nil {
		t.Fatal(err)
	}
	if len(c.frames[1].(frame.Real).Samples) != 2 {
		t.Fatalf("expected output length to track input length after a resize")
	}
}
