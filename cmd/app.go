// Package cmd implements the CLI application to manage equity grants.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// Commands lists the subcommands in the order they are registered.
// A main package iterates over it to Register() each one.
var Commands = []subcommands.Command{
	&scheduleCmd{},
	&summaryCmd{},
	&esppCmd{},
	&addRSUCmd{},
	&addOptionsCmd{},
	&addESPPCmd{},
	&priceCmd{},
	&fxCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application the lifecycle is very short lived, so it is ok to use global variables.

var grantsFile = flag.String("grants-file", "grants.jsonl", "Path to the grants file (JSONL format)")
var marketDir = flag.String("market-dir", ".market", "Path to the market data folder")

// DecodeBook reads the app grants file. A missing file is an empty book.
func DecodeBook() (*equity.Book, error) {
	f, err := os.Open(*grantsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return equity.NewBook(), nil
		}
		return nil, fmt.Errorf("could not open grants file %q: %w", *grantsFile, err)
	}
	defer f.Close()

	book, err := equity.DecodeGrants(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode grants file %q: %w", *grantsFile, err)
	}
	return book, nil
}

// LoadSnapshot reads the market folder into a snapshot on the given day.
// Missing files yield an empty snapshot, never an error.
func LoadSnapshot(on equity.Date) (*equity.Snapshot, error) {
	prices, err := openOrEmpty(pricesFile())
	if err != nil {
		return nil, err
	}
	defer prices.Close()

	rates, err := openOrEmpty(ratesFile())
	if err != nil {
		return nil, err
	}
	defer rates.Close()

	snap, err := equity.DecodeSnapshot(on, prices, rates)
	if err != nil {
		return nil, fmt.Errorf("could not decode market folder %q: %w", *marketDir, err)
	}
	return snap, nil
}

func pricesFile() string { return filepath.Join(*marketDir, "prices.jsonl") }
func ratesFile() string  { return filepath.Join(*marketDir, "rates.jsonl") }

func openOrEmpty(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return os.Open(os.DevNull)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return f, nil
}

// EncodeGrant appends a single grant to the app grants file.
func EncodeGrant(g equity.Grant) subcommands.ExitStatus {
	if err := g.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid grant: %v\n", err)
		return subcommands.ExitUsageError
	}

	f, err := os.OpenFile(*grantsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening grants file %q: %v\n", *grantsFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := equity.EncodeGrant(f, g); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to grants file %q: %v\n", *grantsFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s grant for %s to %s\n", g.Kind(), g.Ticker(), *grantsFile)
	return subcommands.ExitSuccess
}

// appendMarket appends one market data line (price or rate) to a file in
// the market folder, creating the folder on first use.
func appendMarket(path string, write func(f *os.File) error) error {
	if err := os.MkdirAll(*marketDir, 0755); err != nil {
		return fmt.Errorf("could not create market folder %q: %w", *marketDir, err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	return write(f)
}
