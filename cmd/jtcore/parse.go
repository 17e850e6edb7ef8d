package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crillab/jtcore/cnf"
)

func newParseCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.cnf|file.wcnf|file.opb>",
		Short: "Parse an extended-DIMACS/WBO formula and report its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(o.debug)
			c, err := parseFile(logger, args[0], o)
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"vars":     c.DeclaredVarCount,
				"clauses":  len(c.Clauses),
				"additive": len(c.AdditiveVars),
				"apparent": len(c.ApparentVars),
			}).Info("parsed formula")
			fmt.Printf("c vars %d clauses %d additive %d apparent %d\n",
				c.DeclaredVarCount, len(c.Clauses), len(c.AdditiveVars), len(c.ApparentVars))
			return nil
		},
	}
}

// parseFile opens path, logs which extended-DIMACS dialect its suffix
// suggests, and parses it. cnf.Parse dispatches on the problem line
// itself, so the extension check here is diagnostic rather than
// load-bearing.
func parseFile(logger logrus.FieldLogger, path string, o *rootOptions) (*cnf.Cnf, error) {
	logger.Debugf("dispatching %q as %s", path, extensionHint(path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	opts, err := o.parseOptions()
	if err != nil {
		return nil, err
	}

	c, errs := cnf.Parse(f, opts)
	if c == nil {
		return nil, fmt.Errorf("could not parse %q: %v", path, errs)
	}
	for _, e := range errs {
		logger.Warn(e)
	}
	return c, nil
}

func extensionHint(path string) string {
	switch {
	case strings.HasSuffix(path, ".wcnf"):
		return "wcnf"
	case strings.HasSuffix(path, ".opb"), strings.HasSuffix(path, ".wbo"):
		return "pseudo-Boolean"
	case strings.HasSuffix(path, ".cnf"):
		return "cnf"
	default:
		return "unrecognized extension"
	}
}
