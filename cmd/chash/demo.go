package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// demoPairs is inserted in order; "12" collides with "3" in an 8-bucket table
var demoPairs = [][2]string{
	{"1", "red"},
	{"2", "blue"},
	{"3", "white"},
	{"4", "black"},
	{"5", "yellow"},
	{"6", "orange"},
	{"12", "white"},
}

func demoCommand(e *env) *cobra.Command {
	var dumpAfter bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Insert a fixed set of colors, dump the table, search and delete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			tbl, err := e.newTable()
			if err != nil {
				return err
			}
			defer tbl.Destroy()

			for _, p := range demoPairs {
				if _, err := tbl.Insert([]byte(p[0]), p[1]); err != nil {
					return fmt.Errorf("insert %q: %w", p[0], err)
				}
			}
			e.logger.Info("demo table filled",
				zap.Int("entries", tbl.Len()),
				zap.Int("buckets", tbl.Buckets()))

			if err := tbl.Dump(out); err != nil {
				return err
			}
			printSearch(out, tbl, "2")
			tbl.Delete([]byte("4"))
			printSearch(out, tbl, "4")

			if dumpAfter {
				return tbl.Dump(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dumpAfter, "dump-after", false, "dump the table again after the delete")
	return cmd
}
