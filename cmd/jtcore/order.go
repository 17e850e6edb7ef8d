package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crillab/jtcore/cnf"
)

func newOrderCmd(o *rootOptions) *cobra.Command {
	var heuristic int

	cmd := &cobra.Command{
		Use:   "order <file>",
		Short: "Print the variable order chosen by a Cnf-level heuristic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(o.debug)
			c, err := parseFile(logger, args[0], o)
			if err != nil {
				return err
			}
			order, err := c.VarOrder(cnf.Heuristic(heuristic))
			if err != nil {
				return err
			}
			for _, v := range order {
				fmt.Println(v)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&heuristic, "heuristic", int(cnf.Mcs),
		"1 random, 2 declared, 3 most-clauses, 4 minfill, 5 mcs, 6 lexp, 7 lexm (negate to reverse)")
	return cmd
}
