package analysis

import (
	"fmt"
	"math"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// OnsetStrength accumulates a stream of frame.LinearSpectrum frames and, on
// Flush, computes a half-wave-rectified log-magnitude flux curve over
// [Low, High] Hz, per spec.md §4.13. Hop is the number of source samples
// between successive input spectra (e.g. a SlidingWindow's Hop upstream);
// it's used only to label the output curve's sample rate as
// source_sample_rate / Hop.
type OnsetStrength struct {
	*graph.BaseProcessor
	Low, High float32
	Hop       int

	frames []frame.LinearSpectrum
}

// NewOnsetStrength constructs an OnsetStrength accumulator. Hop must be
// positive and Low must be <= High, else a *graph.ConfigError is returned.
func NewOnsetStrength(id graph.ID, low, high float32, hop int) (*OnsetStrength, error) {
	if hop <= 0 {
		return nil, &graph.ConfigError{Component: "OnsetStrength", Reason: "hop must be positive"}
	}
	if low > high {
		return nil, &graph.ConfigError{Component: "OnsetStrength", Reason: "low must be <= high"}
	}
	o := &OnsetStrength{Low: low, High: high, Hop: hop}
	o.BaseProcessor = graph.NewBaseProcessor(id, nil, o.equalSelf, o.string)
	return o, nil
}

func (o *OnsetStrength) equalSelf(other graph.Processor) bool {
	oo, ok := other.(*OnsetStrength)
	return ok && o.Low == oo.Low && o.High == oo.High && o.Hop == oo.Hop
}

func (o *OnsetStrength) string() string {
	return fmt.Sprintf("OnsetStrength{%slow=%g, high=%g, hop=%d}", idPrefix(o.ID()), o.Low, o.High, o.Hop)
}

// Process accumulates a clone of in.
func (o *OnsetStrength) Process(in frame.Frame) error {
	s, ok := in.(frame.LinearSpectrum)
	if !ok {
		return &frame.FormatError{Op: "OnsetStrength.Process", Reason: "expected frame.LinearSpectrum input"}
	}
	o.frames = append(o.frames, s.Clone())
	return nil
}

// ProcessChannel treats every channel as channel 0.
func (o *OnsetStrength) ProcessChannel(channel int, in frame.Frame) error { return o.Process(in) }

// Read is unsupported; OnsetStrength only emits at flush.
func (o *OnsetStrength) Read() (frame.Frame, error) {
	return nil, fmt.Errorf("analysis: OnsetStrength does not support pull mode")
}

const onsetLogFloor = 1e-6

// Flush computes the onset-strength curve and forwards it, then forwards
// flush downstream.
func (o *OnsetStrength) Flush() error {
	n := len(o.frames)
	curve := make([]float32, n)
	var sampleRate int
	if n > 0 {
		sampleRate = o.frames[0].Format.SampleRate
	}
	for i := 1; i < n; i++ {
		cur, prev := o.frames[i], o.frames[i-1]
		curMags, prevMags := cur.Magnitudes(), prev.Magnitudes()
		var sum float32
		for k := range curMags {
			f := cur.Frequency(k)
			if f < o.Low || f > o.High {
				continue
			}
			diff := logMag(curMags[k]) - logMag(prevMags[k])
			if diff > 0 {
				sum += diff
			}
		}
		curve[i] = sum
	}
	outRate := 0
	if o.Hop > 0 {
		outRate = sampleRate / o.Hop
	}
	format := frame.AudioFormat{SampleRate: outRate, Channels: 1}
	out := frame.NewReal(0, format, curve)
	o.SetOutput(out)
	if err := o.FanOut().Process(out); err != nil {
		return err
	}
	return o.FanOut().Flush()
}

func logMag(m float32) float32 {
	return float32(math.Log(float64(m) + onsetLogFloor))
}
