package cnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crillab/jtcore/number"
)

// ParseOptions carries the process-wide configuration flags as an explicit
// value rather than ambient process state: which counting/solving mode is
// active, and the Number universe to build literal weights in.
type ParseOptions struct {
	Mode              number.Mode
	WeightedCounting  bool
	ProjectedCounting bool
	MaxsatSolving     bool
	LogCounting       bool
	RandomSeed        int64
}

// ParseError is a fatal, line-anchored parse failure.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func parseErrorf(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// EmptyClauseWarning reports a non-fatal empty clause: semantically ⊥, the
// parser records it and continues.
type EmptyClauseWarning struct {
	Line int
	Text string
}

func (w *EmptyClauseWarning) Error() string {
	return fmt.Sprintf("empty clause | line %d: %s", w.Line, w.Text)
}

const noLine = -1

// Parse reads an extended-DIMACS/WBO formula from r. It returns the parsed
// Cnf and a slice of any non-fatal warnings (EmptyClauseWarning) observed
// along the way. A fatal problem aborts parsing: the returned Cnf is then
// nil, and the last entry of the returned slice is the fatal error (a
// *ParseError, or an error reading r).
func Parse(r io.Reader, opts ParseOptions) (*Cnf, []error) {
	p := &parser{
		opts:             opts,
		c:                newCnf(opts.Mode),
		problemLineIndex: noLine,
	}
	p.c.RandomSeed = opts.RandomSeed
	return p.run(r)
}

type parser struct {
	opts ParseOptions
	c    *Cnf

	problemLineIndex   int
	declaredClauseCnt  int
	processedClauseCnt int
	wcnfFlag           bool
	hwcnfFlag          bool
	trivialBoundMaxSAT int

	warnings []error
}

func (p *parser) run(r io.Reader) (*Cnf, []error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineIndex := 0
	for scanner.Scan() {
		lineIndex++
		line := scanner.Text()
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		if err := p.dispatch(lineIndex, line, words); err != nil {
			if pe, ok := err.(*ParseError); ok {
				return nil, append(p.warnings, pe)
			}
			return nil, append(p.warnings, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, append(p.warnings, fmt.Errorf("cnf: reading input: %w", err))
	}

	if p.problemLineIndex == noLine {
		return nil, append(p.warnings, parseErrorf(lineIndex, "no problem line before cnf file ends"))
	}

	p.c.setApparentVars()
	p.finalizeVars()
	p.finalizeWeights()

	return p.c, p.warnings
}

func (p *parser) dispatch(lineIndex int, line string, words []string) error {
	switch {
	case words[0] == "p":
		return p.parseProblemLine(lineIndex, words)
	case words[0] == "*" && len(words) > 1 && words[1] == "#variable=":
		return p.parseWBOHeader(lineIndex, words)
	case words[0] == "w" || words[0] == "vp" || words[0] == "c" || words[0] == "vm":
		return p.parseWeightOrShowLine(lineIndex, line, words)
	case words[0] == "s" || words[0] == "INDETERMINATE":
		return parseErrorf(lineIndex, "unexpected output from preprocessor pmc: %s", line)
	case !strings.HasPrefix(words[0], "c") && !strings.HasPrefix(words[0], "*") && !strings.HasPrefix(words[0], "soft"):
		return p.parseClauseLine(lineIndex, line, words)
	default:
		return nil // comment
	}
}

func (p *parser) parseProblemLine(lineIndex int, words []string) error {
	if p.problemLineIndex != noLine {
		return parseErrorf(lineIndex, "multiple problem lines: %d and %d", p.problemLineIndex, lineIndex)
	}
	p.problemLineIndex = lineIndex

	if len(words) < 4 {
		return parseErrorf(lineIndex, "problem line has %d words (should be at least 4)", len(words))
	}

	n, err := strconv.Atoi(words[2])
	if err != nil {
		return parseErrorf(lineIndex, "declared var count %q is not an int", words[2])
	}
	m, err := strconv.Atoi(words[3])
	if err != nil {
		return parseErrorf(lineIndex, "declared clause count %q is not an int", words[3])
	}
	p.c.DeclaredVarCount = n
	p.declaredClauseCnt = m

	p.wcnfFlag = words[1] == "wcnf"
	p.hwcnfFlag = words[1] == "hwcnf"
	if p.hwcnfFlag {
		p.wcnfFlag = true
	}
	if p.wcnfFlag && len(words) == 5 {
		top, err := strconv.Atoi(words[4])
		if err != nil {
			return parseErrorf(lineIndex, "trivial bound %q is not an int", words[4])
		}
		p.trivialBoundMaxSAT = top
		p.c.TrivialBoundPartialMaxSAT = top
	}
	return nil
}

func (p *parser) parseWBOHeader(lineIndex int, words []string) error {
	if p.problemLineIndex != noLine {
		return parseErrorf(lineIndex, "multiple problem lines: %d and %d", p.problemLineIndex, lineIndex)
	}
	if len(words) <= 12 {
		return parseErrorf(lineIndex, "WBO header has %d words, expected at least 13", len(words))
	}
	n, err := strconv.Atoi(words[2])
	if err != nil {
		return parseErrorf(lineIndex, "declared var count %q is not an int", words[2])
	}
	m, err := strconv.Atoi(words[4])
	if err != nil {
		return parseErrorf(lineIndex, "declared constraint count %q is not an int", words[4])
	}
	top, err := strconv.Atoi(words[12])
	if err != nil {
		return parseErrorf(lineIndex, "trivial bound %q is not an int", words[12])
	}
	p.c.DeclaredVarCount = n
	p.declaredClauseCnt = m
	p.trivialBoundMaxSAT = top
	p.c.TrivialBoundPartialMaxSAT = top
	p.problemLineIndex = lineIndex
	return nil
}

func (p *parser) parseWeightOrShowLine(lineIndex int, line string, words []string) error {
	isWeightLine := words[0] == "w" || (len(words) > 4 && words[1] == "p" && words[2] == "weight")
	isShowLine := words[0] == "vp" || words[0] == "vm" || (len(words) > 3 && words[1] == "p" && words[2] == "show")

	if p.opts.WeightedCounting && isWeightLine {
		if p.problemLineIndex == noLine {
			return parseErrorf(lineIndex, "no problem line before weighted literal | %s", line)
		}
		litIdx, weightIdx := 1, 2
		if words[0] != "w" {
			litIdx, weightIdx = 3, 4
		}
		lit, err := strconv.Atoi(words[litIdx])
		if err != nil {
			return parseErrorf(lineIndex, "literal %q is not an int", words[litIdx])
		}
		if lit > p.c.DeclaredVarCount || lit < -p.c.DeclaredVarCount {
			return parseErrorf(lineIndex, "literal '%d' inconsistent with declared var count '%d'", lit, p.c.DeclaredVarCount)
		}
		weight, err := number.FromString(p.opts.Mode, words[weightIdx])
		if err != nil {
			return parseErrorf(lineIndex, "invalid weight %q: %v", words[weightIdx], err)
		}
		zero := number.Zero(p.opts.Mode)
		if less, _ := weight.Less(zero); less {
			return parseErrorf(lineIndex, "weight must be non-negative")
		}
		p.c.LiteralWeights[lit] = weight
		return nil
	}

	if (p.opts.ProjectedCounting || p.opts.MaxsatSolving) && isShowLine {
		if p.problemLineIndex == noLine {
			return parseErrorf(lineIndex, "no problem line before projected var | %s", line)
		}
		isVM := words[0] == "vm"
		start := 1
		if words[0] != "vp" && words[0] != "vm" {
			start = 3
		}
		for i := start; i < len(words); i++ {
			if isVM {
				p.c.MinMaxsatSolving = p.opts.MaxsatSolving
			}
			n, err := strconv.Atoi(words[i])
			if err != nil {
				return parseErrorf(lineIndex, "var %q is not an int", words[i])
			}
			if n == 0 {
				if i != len(words)-1 {
					return parseErrorf(lineIndex, "additive vars terminated prematurely by '0'")
				}
				continue
			}
			if n < 0 || n > p.c.DeclaredVarCount {
				return parseErrorf(lineIndex, "var '%d' inconsistent with declared var count '%d'", n, p.c.DeclaredVarCount)
			}
			p.c.AdditiveVars[n] = struct{}{}
			if isVM {
				p.c.MinAdditiveVars[n] = struct{}{}
			}
		}
	}
	return nil
}

func (p *parser) parseClauseLine(lineIndex int, line string, words []string) error {
	if p.problemLineIndex == noLine {
		return parseErrorf(lineIndex, "no problem line before clause")
	}

	weight := number.One(p.opts.Mode)

	if p.hwcnfFlag {
		if len(words) == 0 || !strings.HasPrefix(words[0], "[") {
			return parseErrorf(lineIndex, "hwcnf clause missing bracketed weight: %s", line)
		}
		w, err := bracketWeight(words[0])
		if err != nil {
			return parseErrorf(lineIndex, "%v", err)
		}
		weight, err = number.FromString(p.opts.Mode, w)
		if err != nil {
			return parseErrorf(lineIndex, "invalid weight %q: %v", w, err)
		}
		words = words[1:]
		if len(words) > 1 && isPBVarToken(words[1]) {
			return p.parsePBLine(lineIndex, line, words, weight)
		}
		return p.parseClauseOrXORLine(lineIndex, line, words, weight, true)
	}

	if len(words) > 1 && (strings.HasPrefix(words[0], "[") || isPBVarToken(words[1])) {
		if strings.HasPrefix(words[0], "[") {
			w, err := bracketWeight(words[0])
			if err != nil {
				return parseErrorf(lineIndex, "%v", err)
			}
			var errW error
			weight, errW = number.FromString(p.opts.Mode, w)
			if errW != nil {
				return parseErrorf(lineIndex, "invalid weight %q: %v", w, errW)
			}
			words = words[1:]
		} else {
			var errW error
			weight, errW = number.FromString(p.opts.Mode, fmt.Sprintf("%d", p.trivialBoundMaxSAT+1))
			if errW != nil {
				return parseErrorf(lineIndex, "invalid hard-constraint weight: %v", errW)
			}
		}
		return p.parsePBLine(lineIndex, line, words, weight)
	}

	return p.parseClauseOrXORLine(lineIndex, line, words, weight, false)
}

// isPBVarToken reports whether tok names a pseudo-Boolean variable, e.g.
// "x1", as opposed to the bare XOR marker token "x".
func isPBVarToken(tok string) bool {
	return len(tok) > 1 && tok[0] == 'x'
}

func bracketWeight(tok string) (string, error) {
	if len(tok) < 2 || tok[0] != '[' || tok[len(tok)-1] != ']' {
		return "", fmt.Errorf("malformed bracketed weight %q", tok)
	}
	return tok[1 : len(tok)-1], nil
}

// parseClauseOrXORLine parses a CNF clause or, if an "x" token is present,
// an XOR constraint. hybridWeightAlreadyKnown is true when called from the
// hwcnf branch (where the leading bracket already supplied the weight and
// no inline weight token should be consumed).
func (p *parser) parseClauseOrXORLine(lineIndex int, line string, words []string, weight number.Number, hybridWeightAlreadyKnown bool) error {
	kind := ClauseKind
	var lits []int
	seen := make(map[int]bool)

	for i := 0; i < len(words); i++ {
		w := words[i]
		if w == "x" {
			kind = XORKind
			continue
		}
		if !hybridWeightAlreadyKnown && p.wcnfFlag && kind == ClauseKind && i == 0 {
			f, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return parseErrorf(lineIndex, "invalid weight %q", w)
			}
			weight = floatNumber(p.opts.Mode, f)
			continue
		}
		if !hybridWeightAlreadyKnown && p.wcnfFlag && kind == XORKind && i == 1 {
			f, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return parseErrorf(lineIndex, "invalid weight %q", w)
			}
			weight = floatNumber(p.opts.Mode, f)
			continue
		}

		num, err := strconv.Atoi(w)
		if err != nil {
			return parseErrorf(lineIndex, "invalid literal %q", w)
		}
		if num > p.c.DeclaredVarCount || num < -p.c.DeclaredVarCount {
			return parseErrorf(lineIndex, "literal '%d' inconsistent with declared var count '%d'", num, p.c.DeclaredVarCount)
		}
		if num == 0 {
			if i != len(words)-1 {
				return parseErrorf(lineIndex, "clause terminated prematurely by '0'")
			}
			if len(lits) == 0 {
				p.warnings = append(p.warnings, &EmptyClauseWarning{Line: lineIndex, Text: line})
				p.c.addClause(Constraint{Kind: kind, Lits: nil, Weight: weight})
				p.processedClauseCnt++
				return nil
			}
			p.c.addClause(Constraint{Kind: kind, Lits: lits, Weight: weight})
			p.processedClauseCnt++
			return nil
		}
		if i == len(words)-1 {
			return parseErrorf(lineIndex, "missing end-of-clause indicator '0'")
		}
		if !seen[num] {
			seen[num] = true
			lits = append(lits, num)
		}
	}
	return parseErrorf(lineIndex, "clause line missing terminating '0': %s", line)
}

// parsePBLine parses the remaining tokens of a PB constraint line:
// "c1 xV1 c2 xV2 ... cmp k 0".
func (p *parser) parsePBLine(lineIndex int, line string, words []string, weight number.Number) error {
	if len(words) < 4 {
		return parseErrorf(lineIndex, "malformed PB constraint: %s", line)
	}
	// Trailing terminator "0" is optional in this grammar; strip it if present.
	if words[len(words)-1] == "0" {
		words = words[:len(words)-1]
	}
	if len(words) < 3 {
		return parseErrorf(lineIndex, "malformed PB constraint: %s", line)
	}

	cmpTok := words[len(words)-2]
	kTok := words[len(words)-1]
	k, err := strconv.Atoi(kTok)
	if err != nil {
		return parseErrorf(lineIndex, "invalid PB rhs %q", kTok)
	}
	var cmp Comparator
	switch cmpTok {
	case ">=":
		cmp = GtEq
	case "=":
		cmp = Eq
	case "<=":
		cmp = LtEq
	default:
		return parseErrorf(lineIndex, "invalid PB comparator %q", cmpTok)
	}

	terms := words[:len(words)-2]
	if len(terms)%2 != 0 {
		return parseErrorf(lineIndex, "PB constraint has an odd number of coefficient/variable tokens: %s", line)
	}

	var vars []int
	coeffs := make(map[int]int, len(terms)/2)
	for i := 0; i+1 < len(terms); i += 2 {
		coef, err := strconv.Atoi(terms[i])
		if err != nil {
			return parseErrorf(lineIndex, "invalid PB coefficient %q", terms[i])
		}
		vtok := terms[i+1]
		if !strings.HasPrefix(vtok, "x") {
			return parseErrorf(lineIndex, "invalid PB variable token %q (expected \"x<id>\")", vtok)
		}
		v, err := strconv.Atoi(vtok[1:])
		if err != nil {
			return parseErrorf(lineIndex, "invalid PB variable id %q", vtok[1:])
		}
		vars = append(vars, v)
		coeffs[v] = coef
	}

	constr := Constraint{
		Kind:       PBKind,
		Vars:       vars,
		Coeffs:     coeffs,
		Comparator: cmp,
		RHS:        k,
		Weight:     weight,
	}.Canonicalize()

	p.c.addClause(constr)
	p.processedClauseCnt++
	return nil
}

func floatNumber(mode number.Mode, f float64) number.Number {
	n, err := number.FromString(mode, strconv.FormatFloat(f, 'g', -1, 64))
	if err != nil {
		return number.One(mode)
	}
	return n
}

// finalizeVars applies the default "all variables are additive" rule for
// plain (unprojected, non-MaxSAT) counting.
func (p *parser) finalizeVars() {
	if !p.opts.ProjectedCounting && !p.opts.MaxsatSolving {
		for v := 1; v <= p.c.DeclaredVarCount; v++ {
			p.c.AdditiveVars[v] = struct{}{}
		}
	}
}

// finalizeWeights populates LiteralWeights with 1s (unweighted) or
// completes the partition identity w(v)+w(-v)=1 (weighted).
func (p *parser) finalizeWeights() {
	one := number.One(p.opts.Mode)
	if !p.opts.WeightedCounting {
		for v := 1; v <= p.c.DeclaredVarCount; v++ {
			p.c.LiteralWeights[v] = one
			p.c.LiteralWeights[-v] = one
		}
		return
	}
	for v := 1; v <= p.c.DeclaredVarCount; v++ {
		_, hasPos := p.c.LiteralWeights[v]
		_, hasNeg := p.c.LiteralWeights[-v]
		switch {
		case !hasPos && !hasNeg:
			p.c.LiteralWeights[v] = one
			p.c.LiteralWeights[-v] = one
		case !hasPos:
			p.c.LiteralWeights[v], _ = one.Sub(p.c.LiteralWeights[-v])
		case !hasNeg:
			p.c.LiteralWeights[-v], _ = one.Sub(p.c.LiteralWeights[v])
		}
	}
}
