package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/crillab/jtcore/cnf"
	"github.com/crillab/jtcore/jointree"
)

func newJointreeCmd(o *rootOptions) *cobra.Command {
	var heuristic int
	var startWord string

	cmd := &cobra.Command{
		Use:   "jointree <file>",
		Short: "Build a bucket-elimination join tree and print it",
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
			root, err := jointree.BuildBucketList(c, order)
			if err != nil {
				return err
			}
			logger.Debugf("built join tree with %d nodes under %q order", root.Index+1, order)
			root.PrintSubtree(os.Stdout, startWord)
			return nil
		},
	}
	cmd.Flags().IntVar(&heuristic, "heuristic", int(cnf.Mcs), "Cnf-level heuristic driving bucket assignment")
	cmd.Flags().StringVar(&startWord, "start-word", "n", "prefix word for printed nonterminal lines")
	return cmd
}
