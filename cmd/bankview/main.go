// ABOUTME: Entry point for the interactive bank browser
// ABOUTME: Loads a bank and its sample file and starts the TUI
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/marijnvdwerf/pokemonsnap-splat/internal/config"
	"github.com/marijnvdwerf/pokemonsnap-splat/internal/ui"
	"github.com/marijnvdwerf/pokemonsnap-splat/internal/version"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio/output"
)

var (
	tblFile     = pflag.String("tbl", "", "Sample file; enables preview playback")
	sampleRate  = pflag.Int("sample-rate", config.DefaultSampleRate, "Rate the samples were recorded at")
	logFile     = pflag.String("log-file", "bankview.log", "Log file path")
	showVersion = pflag.Bool("version", false, "Print version and exit")
)

func main() {
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: bankview [flags] <bank.ctl>\n\n")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	// TUI mode: log only to file
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()
	log.SetOutput(f)

	ctlPath := pflag.Arg(0)
	buf, err := os.ReadFile(ctlPath)
	if err != nil {
		log.Fatalf("Failed to read bank: %v", err)
	}
	graph, err := albank.Load(buf)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", ctlPath, err)
	}

	var player ui.Player
	if *tblFile != "" {
		tbl, err := os.Open(*tblFile)
		if err != nil {
			log.Fatalf("Failed to open sample file: %v", err)
		}
		defer tbl.Close()

		preview := ui.NewPreview(graph, tbl, *sampleRate, output.NewOto())
		defer preview.Close()
		player = preview
	}

	prog, err := ui.Run(filepath.Base(ctlPath), graph, player)
	if err != nil {
		log.Fatalf("Failed to start TUI: %v", err)
	}
	if _, err := prog.Run(); err != nil {
		log.Printf("TUI error: %v", err)
	}
}
