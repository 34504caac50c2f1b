package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func hashCommand(e *env) *cobra.Command {
	var buckets int

	cmd := &cobra.Command{
		Use:   "hash <key>...",
		Short: "Print the hash of each key and its bucket for a directory size",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if buckets <= 0 {
				buckets = e.cfg.Table.InitialSize
			}
			h, err := e.cfg.Table.HashFunc()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tHASH\tBUCKET")
			for _, key := range args {
				sum := h([]byte(key))
				fmt.Fprintf(tw, "%s\t%d\t%d\n", key, sum, sum%uint64(buckets))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&buckets, "buckets", 0, "directory size (defaults to table.initial-size)")
	return cmd
}
