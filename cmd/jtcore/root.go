package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crillab/jtcore/cnf"
	"github.com/crillab/jtcore/number"
)

// rootOptions holds every persistent flag shared by the subcommands, the
// way cmd/catalog/start.go's options struct threads its flags through one
// value instead of a pile of globals.
type rootOptions struct {
	mode              string
	weightedCounting  bool
	projectedCounting bool
	maxsatSolving     bool
	logCounting       bool
	randomSeed        int64
	debug             bool
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "jtcore",
		Short:        "Parse extended-DIMACS/WBO formulas and build join-tree elimination orders",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.mode, "mode", "rational", "number representation: rational or log10")
	flags.BoolVar(&o.weightedCounting, "weighted", false, "parse literal weights (w / c p weight lines)")
	flags.BoolVar(&o.projectedCounting, "projected", false, "parse projected/additive vars (vp / c p show lines)")
	flags.BoolVar(&o.maxsatSolving, "maxsat", false, "parse as (partial) weighted MaxSAT")
	flags.BoolVar(&o.logCounting, "log-counting", false, "set the LogCounting parse option (no subcommand reads it)")
	flags.Int64Var(&o.randomSeed, "seed", 0, "seed for the random variable-order heuristic")
	flags.BoolVar(&o.debug, "debug", false, "enable debug-level logging")

	cmd.AddCommand(newParseCmd(o))
	cmd.AddCommand(newOrderCmd(o))
	cmd.AddCommand(newJointreeCmd(o))

	return cmd
}

func (o *rootOptions) parseOptions() (cnf.ParseOptions, error) {
	mode, err := parseMode(o.mode)
	if err != nil {
		return cnf.ParseOptions{}, err
	}
	return cnf.ParseOptions{
		Mode:              mode,
		WeightedCounting:  o.weightedCounting,
		ProjectedCounting: o.projectedCounting,
		MaxsatSolving:     o.maxsatSolving,
		LogCounting:       o.logCounting,
		RandomSeed:        o.randomSeed,
	}, nil
}

func parseMode(s string) (number.Mode, error) {
	switch s {
	case "rational":
		return number.Rational, nil
	case "log10":
		return number.LogFloat, nil
	default:
		return 0, fmt.Errorf("unknown --mode %q (want rational or log10)", s)
	}
}

func newLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
