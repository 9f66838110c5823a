package framing

import (
	"fmt"

	"github.com/austinkregel/jipes/frame"
	"github.com/austinkregel/jipes/graph"
)

// BandSplit accumulates WindowLength consecutive frame.MultiBandSpectrum
// frames and, once a full window has been collected, emits one
// frame.Matrix tile per band to the downstream processors connected on
// that band's channel, per spec.md §4.9. A MultiBandSpectrum whose band
// count doesn't match the first frame seen is a format error.
type BandSplit struct {
	*graph.BaseProcessor
	WindowLength int

	bands      int
	buffers    [][]float32
	tileIndex  int64
	format     frame.AudioFormat
	seen       bool
}

// NewBandSplit constructs a BandSplit accumulating windowLength frames per
// tile.
func NewBandSplit(id graph.ID, windowLength int) *BandSplit {
	b := &BandSplit{WindowLength: windowLength}
	b.BaseProcessor = graph.NewBaseProcessor(id, nil, b.equalSelf, b.string)
	return b
}

func (b *BandSplit) equalSelf(other graph.Processor) bool {
	o, ok := other.(*BandSplit)
	return ok && b.WindowLength == o.WindowLength
}

func (b *BandSplit) string() string {
	return fmt.Sprintf("BandSplit{%swindowLength=%d}", idPrefix(b.ID()), b.WindowLength)
}

// Process accumulates in's per-band values and emits a tile per band once
// WindowLength frames have been collected.
func (b *BandSplit) Process(in frame.Frame) error {
	m, ok := in.(frame.MultiBandSpectrum)
	if !ok {
		return &frame.FormatError{Op: "BandSplit.Process", Reason: "expected frame.MultiBandSpectrum input"}
	}
	if !b.seen {
		b.bands = len(m.Values)
		b.buffers = make([][]float32, b.bands)
		b.format = m.Format
		b.seen = true
	}
	if len(m.Values) != b.bands {
		return &frame.FormatError{Op: "BandSplit.Process", Reason: "band split: wrong channel count"}
	}
	for i, v := range m.Values {
		b.buffers[i] = append(b.buffers[i], v)
	}
	if len(b.buffers[0]) < b.WindowLength {
		return nil
	}
	return b.emitTiles(b.WindowLength)
}

// ProcessChannel treats every channel as channel 0.
func (b *BandSplit) ProcessChannel(channel int, in frame.Frame) error { return b.Process(in) }

func (b *BandSplit) emitTiles(length int) error {
	for i := 0; i < b.bands; i++ {
		row := make([]float32, length)
		copy(row, b.buffers[i])
		tile, err := frame.NewMatrix(b.tileIndex, b.format, 1, length, row)
		if err != nil {
			return err
		}
		b.SetOutput(tile)
		if err := b.FanOut().ProcessChannel(i, tile); err != nil {
			return err
		}
		b.buffers[i] = nil
	}
	b.tileIndex++
	return nil
}

// Flush emits one zero-padded trailing tile per band if any residue
// remains, then forwards flush downstream.
func (b *BandSplit) Flush() error {
	if b.seen && len(b.buffers) > 0 && len(b.buffers[0]) > 0 {
		if err := b.emitTiles(b.WindowLength); err != nil {
			return err
		}
	}
	return b.FanOut().Flush()
}
