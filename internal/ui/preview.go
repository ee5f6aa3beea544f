// ABOUTME: Sample preview playback for the bank browser
// ABOUTME: Decodes a wave table, resamples it to the device rate and plays it
package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/marijnvdwerf/pokemonsnap-splat/internal/extract"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio/output"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio/resample"
)

// volumeControl is implemented by outputs with software volume
type volumeControl interface {
	SetVolume(volume int)
	SetMuted(muted bool)
}

// chunkSamples is how much audio is written between volume updates.
const chunkSamples = 4096

// Preview plays wave tables from a sample file. The output is opened on
// first use and stays open until Close. Volume changes are picked up
// between chunks, so the output is only touched by the playing goroutine.
type Preview struct {
	graph      *albank.Graph
	tbl        io.ReaderAt
	sampleRate int
	out        output.Output

	volume atomic.Int32
	muted  atomic.Bool

	mu     sync.Mutex
	opened bool
}

// NewPreview creates a preview player. sampleRate is the rate the samples
// were recorded at; out is usually output.NewOto().
func NewPreview(graph *albank.Graph, tbl io.ReaderAt, sampleRate int, out output.Output) *Preview {
	p := &Preview{
		graph:      graph,
		tbl:        tbl,
		sampleRate: sampleRate,
		out:        out,
	}
	p.volume.Store(100)
	return p
}

// Samples decodes a wave table at the device rate.
func (p *Preview) Samples(ref albank.Ref) ([]int32, error) {
	wt := p.graph.WaveTable(ref)
	if wt == nil {
		return nil, fmt.Errorf("no wave table at 0x%X", ref.Offset)
	}
	book := p.graph.Book(wt.Book)
	if book == nil {
		return nil, extract.ErrNoCodebook
	}
	if wt.Len < 0 {
		return nil, fmt.Errorf("negative sample length %d", wt.Len)
	}

	payload := make([]byte, wt.Len)
	if _, err := p.tbl.ReadAt(payload, int64(wt.Base)); err != nil {
		return nil, fmt.Errorf("reading sample: %w", err)
	}

	buf, err := extract.DecodeSamples(p.sampleRate, payload, book)
	if err != nil {
		return nil, err
	}
	return resample.Convert(buf.Samples, p.sampleRate, output.DeviceSampleRate, buf.Format.Channels), nil
}

// Play decodes and plays one wave table, blocking until it is written.
func (p *Preview) Play(ref albank.Ref) error {
	samples, err := p.Samples(ref)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.opened {
		if err := p.out.Open(output.DeviceSampleRate, 1); err != nil {
			return err
		}
		p.opened = true
	}

	vc, _ := p.out.(volumeControl)
	for len(samples) > 0 {
		n := min(chunkSamples, len(samples))
		if vc != nil {
			vc.SetVolume(int(p.volume.Load()))
			vc.SetMuted(p.muted.Load())
		}
		if err := p.out.Write(samples[:n]); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

// SetVolume sets the volume (0-100) for the current and later previews
func (p *Preview) SetVolume(volume int) {
	p.volume.Store(int32(volume))
}

// SetMuted sets the mute state for the current and later previews
func (p *Preview) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Close releases the output
func (p *Preview) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.opened {
		return nil
	}
	p.opened = false
	return p.out.Close()
}
