// ABOUTME: Entry point for the bank layout dumper
// ABOUTME: Prints a bank's records, per-kind alignment or a graph snapshot
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/marijnvdwerf/pokemonsnap-splat/internal/codec"
	"github.com/marijnvdwerf/pokemonsnap-splat/internal/version"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var format string
	var alignments, showVersion bool

	flagSet := pflag.NewFlagSet("bankdump", pflag.ContinueOnError)
	flagSet.StringVarP(&format, "format", "f", "text", "output format: text, yaml, cbor or cbor-diag")
	flagSet.BoolVarP(&alignments, "alignments", "a", false, "print the alignment of each record kind instead")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bankdump [flags] <bank.ctl>\n\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Println(version.String())
		return nil
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return fmt.Errorf("expected one bank file, got %d arguments", flagSet.NArg())
	}

	buf, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		return err
	}
	graph, err := albank.Load(buf)
	if err != nil {
		return err
	}

	if alignments {
		for _, a := range graph.Alignments() {
			fmt.Fprintf(stdout, "%-14s %d\n", a.Kind, 1<<a.Bits)
		}
		return nil
	}

	switch format {
	case "text":
		return graph.Dump(stdout)
	case "yaml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(graph.Snapshot()); err != nil {
			return err
		}
		return enc.Close()
	case "cbor":
		return codec.NewEncoder(stdout).Encode(graph.Snapshot())
	case "cbor-diag":
		data, err := codec.Marshal(graph.Snapshot())
		if err != nil {
			return err
		}
		diag, err := codec.Diagnose(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, diag)
		return err
	}
	return fmt.Errorf("unknown format %q (want text, yaml, cbor or cbor-diag)", format)
}
