// ABOUTME: Converts every wave table of a bank into AIFC and AIFF files
// ABOUTME: Samples are converted in parallel; failures are kept for inspection
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marijnvdwerf/pokemonsnap-splat/internal/config"
	"github.com/marijnvdwerf/pokemonsnap-splat/internal/version"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/aifc"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
)

// ErrNoCodebook means an ADPCM wave table has no book to decode it with.
var ErrNoCodebook = errors.New("wave table has no codebook")

// Options controls how samples are written
type Options struct {
	SampleRate     float64
	Workers        int
	KeepContainers bool
	Decoder        config.DecoderConfig
}

// OptionsFromConfig takes the run-wide settings of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SampleRate:     cfg.SampleRate,
		Workers:        cfg.Workers,
		KeepContainers: cfg.Output.KeepContainers,
		Decoder:        cfg.Decoder,
	}
}

// Extractor converts the samples of bank/sample file pairs.
type Extractor struct {
	opts Options
}

// New creates an extractor
func New(opts Options) *Extractor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = config.DefaultSampleRate
	}
	return &Extractor{opts: opts}
}

// job is the state shared by the workers of one Run
type job struct {
	graph  *albank.Graph
	tbl    io.ReaderAt
	outDir string
}

// Run extracts every wave table of job into outDir and writes the manifest.
// A sample that fails to convert is recorded in the manifest rather than
// failing the run; errors are returned for unreadable inputs, output I/O and
// cancellation.
func (e *Extractor) Run(ctx context.Context, j config.Job, outDir string) (*Manifest, error) {
	ctl, err := os.ReadFile(j.CTL)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank: %w", err)
	}
	graph, err := albank.Load(ctl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", j.CTL, err)
	}

	tbl, err := os.Open(j.TBL)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer tbl.Close()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}

	manifest := &Manifest{
		RunID:      uuid.New().String(),
		Tool:       version.String(),
		Job:        j.Name,
		CTL:        j.CTL,
		TBL:        j.TBL,
		SampleRate: e.opts.SampleRate,
		Decoder:    e.decoderName(),
	}

	state := &job{graph: graph, tbl: tbl, outDir: outDir}
	refs := graph.WaveTableRefs()
	manifest.Samples = make([]Sample, len(refs))

	log.Printf("Extracting %d samples from %s", len(refs), filepath.Base(j.CTL))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := e.convert(ctx, state, ref)
			manifest.Samples[i] = sample
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := writeYAML(filepath.Join(outDir, ManifestName), manifest); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	log.Printf("Extracted %d/%d samples to %s", len(refs)-manifest.Failed(), len(refs), outDir)
	return manifest, nil
}

func (e *Extractor) decoderName() string {
	if len(e.opts.Decoder.Command) == 0 {
		return "builtin"
	}
	return strings.Join(e.opts.Decoder.Command, " ")
}

// convert writes one sample. The returned error is only set for failures
// that should stop the whole run.
func (e *Extractor) convert(ctx context.Context, j *job, ref albank.Ref) (Sample, error) {
	wt := j.graph.WaveTable(ref)
	name := fmt.Sprintf("sound-%X", wt.Base)
	sample := Sample{
		Name:   name,
		Base:   wt.Base,
		Len:    wt.Len,
		Frames: aifc.FrameCount(int(wt.Len)),
		Status: StatusOK,
	}

	aifcName := name + ".aifc"
	aiffName := name + ".aiff"

	convErr := e.writeSample(ctx, j, wt, aifcName, aiffName)
	if ctx.Err() != nil {
		return sample, ctx.Err()
	}

	if convErr != nil {
		log.Printf("Failed to convert %s: %v", name, convErr)
		sample.Status = StatusFailed
		sample.Error = convErr.Error()

		if err := os.Remove(filepath.Join(j.outDir, aiffName)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return sample, err
		}

		diagName := name + ".yaml"
		diag := diagnostic{
			Sample:    name,
			Error:     convErr.Error(),
			Offset:    ref.Offset,
			WaveTable: wt,
			Book:      j.graph.Book(wt.Book),
			Loop:      j.graph.Loop(wt.Loop),
		}
		if err := writeYAML(filepath.Join(j.outDir, diagName), diag); err != nil {
			return sample, err
		}
		return e.describe(j.outDir, sample, aifcName, diagName)
	}

	if !e.opts.KeepContainers {
		if err := os.Remove(filepath.Join(j.outDir, aifcName)); err != nil {
			return sample, err
		}
	}
	return e.describe(j.outDir, sample, aifcName, aiffName)
}

// describe lists whichever of names exist on disk.
func (e *Extractor) describe(dir string, sample Sample, names ...string) (Sample, error) {
	for _, n := range names {
		f, err := describeFile(dir, n)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return sample, err
		}
		sample.Files = append(sample.Files, f)
	}
	return sample, nil
}

func (e *Extractor) writeSample(ctx context.Context, j *job, wt *albank.WaveTable, aifcName, aiffName string) error {
	book := j.graph.Book(wt.Book)
	if book == nil {
		return ErrNoCodebook
	}

	if wt.Len < 0 {
		return fmt.Errorf("negative sample length %d", wt.Len)
	}
	payload := make([]byte, wt.Len)
	if _, err := j.tbl.ReadAt(payload, int64(wt.Base)); err != nil {
		return fmt.Errorf("reading 0x%X bytes at 0x%X: %w", wt.Len, wt.Base, err)
	}

	codebook, err := codebookOf(book)
	if err != nil {
		return err
	}
	container, err := aifc.Encode(e.opts.SampleRate, payload, codebook)
	if err != nil {
		return err
	}

	aifcPath := filepath.Join(j.outDir, aifcName)
	aiffPath := filepath.Join(j.outDir, aiffName)
	if err := os.WriteFile(aifcPath, container, 0644); err != nil {
		return err
	}

	if args := e.opts.Decoder.Args(aifcPath, aiffPath); args != nil {
		return runDecoder(ctx, args)
	}

	aiff, err := DecodeAIFF(e.opts.SampleRate, payload, book)
	if err != nil {
		return err
	}
	return os.WriteFile(aiffPath, aiff, 0644)
}

func runDecoder(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(args[0]), err, msg)
		}
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}
	return nil
}
