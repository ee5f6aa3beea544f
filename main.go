// ABOUTME: Entry point for the harmony sample extractor
// ABOUTME: Parses CLI flags, loads the job config and extracts every bank
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/marijnvdwerf/pokemonsnap-splat/internal/config"
	"github.com/marijnvdwerf/pokemonsnap-splat/internal/extract"
	"github.com/marijnvdwerf/pokemonsnap-splat/internal/version"
)

var (
	configFile     = pflag.StringP("config", "c", "", "Job config file (YAML)")
	ctlFile        = pflag.String("ctl", "", "Bank file for a single job (instead of --config)")
	tblFile        = pflag.String("tbl", "", "Sample file for --ctl")
	name           = pflag.String("name", "", "Output directory name for --ctl (default: bank file name)")
	outRoot        = pflag.StringP("out", "o", "", "Output root directory")
	workers        = pflag.IntP("workers", "j", 0, "Samples converted at once (default: number of CPUs)")
	sampleRate     = pflag.Float64("sample-rate", 0, "Sample rate written into containers (default: 22050)")
	keepContainers = pflag.Bool("keep-containers", false, "Keep .aifc files after decoding")
	decoder        = pflag.String("decoder", "", `External decoder command, e.g. "./aifc_decode {in} {out}" (default: built-in)`)
	logFile        = pflag.String("log-file", "", "Log file path (default: stderr)")
	showVersion    = pflag.Bool("version", false, "Print version and exit")
)

func main() {
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ex := extract.New(extract.OptionsFromConfig(cfg))

	var failed int
	var errs []error
	for _, job := range cfg.Jobs {
		manifest, err := ex.Run(ctx, job, cfg.OutDir(job))
		if err != nil {
			log.Printf("Job %s failed: %v", job.Name, err)
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		failed += manifest.Failed()
	}

	if err := errors.Join(errs...); err != nil {
		os.Exit(1)
	}
	if failed > 0 {
		log.Printf("%d samples failed to convert; see the .yaml files next to their containers", failed)
		os.Exit(2)
	}
}

// loadConfig builds the run config from --config and the override flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFile(*configFile); err != nil {
			return nil, err
		}
	}

	if *ctlFile != "" {
		jobName := *name
		if jobName == "" {
			jobName = strings.TrimSuffix(filepath.Base(*ctlFile), filepath.Ext(*ctlFile))
		}
		cfg.Jobs = []config.Job{{Name: jobName, CTL: *ctlFile, TBL: *tblFile}}
	}

	if pflag.CommandLine.Changed("out") {
		cfg.Output.Root = *outRoot
	}
	if pflag.CommandLine.Changed("workers") {
		cfg.Workers = *workers
	}
	if pflag.CommandLine.Changed("sample-rate") {
		cfg.SampleRate = *sampleRate
	}
	if pflag.CommandLine.Changed("keep-containers") {
		cfg.Output.KeepContainers = *keepContainers
	}
	if pflag.CommandLine.Changed("decoder") {
		cfg.Decoder.Command = strings.Fields(*decoder)
	}

	return cfg, cfg.Validate()
}
