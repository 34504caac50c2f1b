package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theflywheel/chash"
)

// loadPairs inserts key=value lines from r. Blank lines and lines starting
// with '#' are skipped.
func loadPairs(tbl *chash.Table[string], r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo, inserted := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return inserted, fmt.Errorf("line %d: expected key=value", lineNo)
		}
		if _, err := tbl.Insert([]byte(key), value); err != nil {
			return inserted, fmt.Errorf("line %d: %w", lineNo, err)
		}
		inserted++
	}
	if err := scanner.Err(); err != nil {
		return inserted, fmt.Errorf("failed to read input: %w", err)
	}
	return inserted, nil
}

func loadCommand(e *env) *cobra.Command {
	var (
		dump bool
		gets []string
	)

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load key=value lines from a file (or - for stdin) and report table stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open file: %w", err)
				}
				defer f.Close()
				r = f
			}

			tbl, err := e.newTable()
			if err != nil {
				return err
			}
			defer tbl.Destroy()

			n, err := loadPairs(tbl, r)
			if err != nil {
				return err
			}

			s := tbl.Stats()
			e.logger.Debug("file loaded", zap.String("path", args[0]), zap.Int("lines", n))
			fmt.Fprintf(out, "loaded %d pairs: %d keys, %d buckets (%d used), longest chain %d, %d rehashes, %d skipped growths\n",
				n, s.Entries, s.Buckets, s.UsedBuckets, s.LongestChain, s.Rehashes, s.SkippedGrowths)

			if dump {
				if err := tbl.Dump(out); err != nil {
					return err
				}
			}
			for _, key := range gets {
				printSearch(out, tbl, key)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print every bucket after loading")
	cmd.Flags().StringArrayVar(&gets, "get", nil, "look up a key after loading (repeatable)")
	return cmd
}
