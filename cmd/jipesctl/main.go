// Command jipesctl wires a small jipes signal graph end to end over a WAV
// file, in the style of the pack repos that pair spf13/cobra for command
// structure with charmbracelet/log for output (rayboyd-audio-engine,
// tphakala-birdnet-go, doismellburning-samoyed), per SPEC_FULL.md §1.2.
package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/austinkregel/jipes/analysis"
	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/framing"
	"github.com/austinkregel/jipes/graph"
	"github.com/austinkregel/jipes/kernel/gonumfft"
	"github.com/austinkregel/jipes/sink/otosink"
	"github.com/austinkregel/jipes/source/wavsource"
	"github.com/austinkregel/jipes/transform"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "jipesctl"})

func main() {
	opts := DefaultOptions()

	root := &cobra.Command{
		Use:   "jipesctl",
		Short: "Run a jipes signal graph over a WAV file",
	}
	root.PersistentFlags().StringVar(&opts.Input, "input", "", "path to a WAV file")
	root.PersistentFlags().IntVar(&opts.SliceLength, "slice-length", opts.SliceLength, "sliding window slice length, in samples")
	root.PersistentFlags().IntVar(&opts.Hop, "hop", opts.Hop, "sliding window hop, in samples")
	root.PersistentFlags().IntVar(&opts.Bands, "bands", opts.Bands, "number of multi-band transform output bands")

	root.AddCommand(analyzeCmd(opts), playCmd(opts))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func requireInput(opts *Options) error {
	if opts.Input == "" {
		return fmt.Errorf("--input is required")
	}
	return nil
}

// analyzeCmd pumps Mono -> SlidingWindow -> Hanning -> LinearSpectrumTransform
// -> MultiBandTransform into a MatrixCollector, then logs the pump's
// deduplicated graph description and the harvested matrix frame.
func analyzeCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Run a spectral analysis graph over --input and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInput(opts); err != nil {
				return err
			}
			src, err := wavsource.Open(opts.Input, opts.SliceLength)
			if err != nil {
				return err
			}
			defer src.Close()

			fft := gonumfft.New(opts.SliceLength)
			mono := framing.NewMono("mono")
			slices := framing.NewSlidingWindow("slices", opts.SliceLength, opts.Hop)
			window := framing.NewHanning("window")
			lin := transform.NewLinearSpectrumTransform("spectrum", fft)

			nyquist := float32(src.Format().SampleRate) / 2
			boundaries := make([]float32, opts.Bands+1)
			for i := range boundaries {
				boundaries[i] = float32(i) * nyquist / float32(opts.Bands)
			}
			bands, err := transform.NewMultiBandTransform("bands", boundaries)
			if err != nil {
				return err
			}
			collector := analysis.NewMatrixCollector("matrix")

			mono.ConnectTo(slices)
			slices.ConnectTo(window)
			window.ConnectTo(lin)
			lin.ConnectTo(bands)
			bands.ConnectTo(collector)

			pump := graph.NewPump()
			pump.SetSignalSource(src)
			pump.Add(mono)

			logger.Info("running analysis graph", "input", opts.Input, "sliceLength", opts.SliceLength, "bands", opts.Bands)
			result, err := pump.Pump()
			if err != nil {
				return err
			}
			logger.Info("graph description", "tree", pump.GetDescription())
			matrix := result["matrix"]
			logger.Info("analysis complete", "matrix", fmt.Sprintf("%v", matrix))
			return nil
		},
	}
}

// playCmd pumps a WAV file's mono downmix through an otosink.Sink for
// audible playback.
func playCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play back --input through the default audio output",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInput(opts); err != nil {
				return err
			}
			src, err := wavsource.Open(opts.Input, opts.SliceLength)
			if err != nil {
				return err
			}
			defer src.Close()

			mono := framing.NewMono("mono")
			sink, err := otosink.New("sink", frame.AudioFormat{
				SampleRate: src.Format().SampleRate,
				Channels:   1,
				Signed:     true,
			})
			if err != nil {
				return err
			}
			defer sink.Close()
			mono.ConnectTo(sink)

			pump := graph.NewPump()
			pump.SetSignalSource(src)
			pump.Add(mono)

			logger.Info("playing", "input", opts.Input)
			_, err = pump.Pump()
			return err
		},
	}
}
