package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mpalani/payflow/internal/csvio"
	"github.com/mpalani/payflow/internal/engine"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transactions.csv>\n", os.Args[0])
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1], logger); err != nil {
		logger.Error("processing failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	eng := engine.New()
	reader := csvio.NewReader(f)

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		// Rejected transactions are logged and skipped; the stream continues.
		if err := eng.Process(rec); err != nil {
			logger.Warn("skipping transaction",
				zap.String("type", string(rec.Type)),
				zap.Uint16("client", rec.Client),
				zap.Uint32("tx", rec.Tx),
				zap.Error(err))
		}
	}

	return csvio.WriteAccounts(os.Stdout, eng.Ledger().Accounts())
}
