// ABOUTME: Extraction manifest and per-sample diagnostics
// ABOUTME: Records what each run produced, with BLAKE3 digests of outputs
package extract

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file written into every job output directory.
const ManifestName = "manifest.yaml"

// Status is the outcome of converting one sample
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Manifest describes one extraction run.
type Manifest struct {
	RunID      string   `yaml:"run_id"`
	Tool       string   `yaml:"tool"`
	Job        string   `yaml:"job"`
	CTL        string   `yaml:"ctl"`
	TBL        string   `yaml:"tbl"`
	SampleRate float64  `yaml:"sample_rate"`
	Decoder    string   `yaml:"decoder"`
	Samples    []Sample `yaml:"samples"`
}

// Sample is the result for one wave table.
type Sample struct {
	Name   string `yaml:"name"`
	Base   uint32 `yaml:"base"`
	Len    int32  `yaml:"len"`
	Frames uint32 `yaml:"frames"`
	Status Status `yaml:"status"`
	Error  string `yaml:"error,omitempty"`
	Files  []File `yaml:"files,omitempty"`
}

// File is an output file left on disk.
type File struct {
	Name   string `yaml:"name"`
	Size   int64  `yaml:"size"`
	BLAKE3 string `yaml:"blake3"`
}

// Failed returns the number of samples that did not convert
func (m *Manifest) Failed() int {
	n := 0
	for _, s := range m.Samples {
		if s.Status != StatusOK {
			n++
		}
	}
	return n
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

func writeYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// describeFile hashes a file in dir for the manifest.
func describeFile(dir, name string) (File, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return File{}, err
	}
	defer f.Close()

	hasher := blake3.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		return File{}, fmt.Errorf("hashing %s: %w", name, err)
	}
	return File{
		Name:   name,
		Size:   size,
		BLAKE3: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// diagnostic is dumped next to a sample that failed to convert.
type diagnostic struct {
	Sample    string            `yaml:"sample"`
	Error     string            `yaml:"error"`
	Offset    uint32            `yaml:"offset"`
	WaveTable *albank.WaveTable `yaml:"wave_table"`
	Book      *albank.Book      `yaml:"book,omitempty"`
	Loop      *albank.Loop      `yaml:"loop,omitempty"`
}
