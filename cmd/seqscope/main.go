// Command seqscope is an interactive terminal viewer for biological
// sequences with smooth semantic zoom.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/seqscope/internal/app"
	"github.com/dshills/seqscope/internal/config"
	"github.com/dshills/seqscope/internal/fasta"
)

var version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "write logs to this file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("seqscope %s\n", version)
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	if err := run(*configPath, *logLevel, *logFile, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "seqscope: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: seqscope [flags] <sequences.fasta>\n\n")
	flag.PrintDefaults()
}

func run(configPath, logLevel, logFile, fastaPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	// The terminal belongs to the UI; without a log file, logs go
	// nowhere rather than corrupting the screen.
	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := app.NewLogger(app.ParseLogLevel(cfg.Log.Level), out)

	records, err := fasta.ParseFile(fastaPath)
	if err != nil {
		return err
	}

	viewer, err := app.New(cfg, log, records)
	if err != nil {
		return err
	}
	return viewer.Run()
}
