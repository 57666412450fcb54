package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pahanaedu/bookstore/pkg/tender"
)

func newChangeCmd() *cobra.Command {
	var total, cash string

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Compute change for a cash payment",
		Long:  "Validates the cash given against the bill total and prints the change. A cash amount of 0 means not entered yet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := tender.Parse(total)
			if err != nil {
				return err
			}
			c, err := tender.Parse(cash)
			if err != nil {
				return err
			}
			if err := tender.Validate(t, c); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:  %s\n", t)
			fmt.Fprintf(out, "Cash:   %s\n", c)
			fmt.Fprintf(out, "Change: %s\n", tender.Change(t, c))
			return nil
		},
	}

	cmd.Flags().StringVar(&total, "total", "", "bill total, e.g. 1250.50")
	cmd.Flags().StringVar(&cash, "cash", "0", "cash given by the customer")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}
