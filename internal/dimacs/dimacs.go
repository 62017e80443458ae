// Package dimacs loads DIMACS CNF problem files into a sat.Solver and reads
// DIMACS-shaped model files used as test fixtures, merging the external
// github.com/rhartert/dimacs parser with the variable/clause wiring the
// solver needs.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/satcore/cdcl/internal/sat"
)

// SolverTarget is the subset of *sat.Solver a DIMACS load needs.
type SolverTarget interface {
	NewVariable() int
	AddClause([]sat.Literal) (bool, error)
}

func open(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// Load parses the DIMACS CNF file at filename and adds its variables and
// clauses to target, in file order. gzipped indicates the file is
// gzip-compressed on disk (as competition instance archives commonly are).
func Load(filename string, gzipped bool, target SolverTarget) error {
	r, err := open(filename, gzipped)
	if err != nil {
		return fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{target: target}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return fmt.Errorf("dimacs: parsing %q: %w", filename, err)
	}
	return b.err
}

// builder adapts a SolverTarget to the external parser's Builder interface.
// The parser reports Clause/Problem errors through its own return value;
// AddClause errors are stashed in b.err and checked once at the end, since
// Builder methods here don't return them directly (AddClause failure means
// a malformed instance, not a parse error).
type builder struct {
	target SolverTarget
	lits   []sat.Literal
	err    error
}

func (b *builder) Problem(format string, numVars, numClauses int) error {
	if format != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem format %q", format)
	}
	for i := 0; i < numVars; i++ {
		b.target.NewVariable()
	}
	b.lits = make([]sat.Literal, 0, 32)
	return nil
}

func (b *builder) Clause(rawLits []int) error {
	b.lits = b.lits[:0]
	for _, l := range rawLits {
		switch {
		case l > 0:
			b.lits = append(b.lits, sat.PositiveLiteral(l))
		case l < 0:
			b.lits = append(b.lits, sat.NegativeLiteral(-l))
		}
	}
	if _, err := b.target.AddClause(b.lits); err != nil && b.err == nil {
		b.err = fmt.Errorf("dimacs: clause %v: %w", rawLits, err)
	}
	return nil
}

func (b *builder) Comment(string) error {
	return nil
}

// Model is one satisfying assignment read from a model fixture file, one
// literal per assigned variable in variable-index order.
type Model []bool

// ReadModels reads a DIMACS-shaped model fixture file: one "clause" line
// per model, where a positive entry means the corresponding variable is
// true. Used by tests to check search results against known-good models.
func ReadModels(filename string) ([]Model, error) {
	r, err := open(filename, false)
	if err != nil {
		return nil, fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacs: parsing %q: %w", filename, err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models []Model
}

func (b *modelBuilder) Problem(format string, numVars, numClauses int) error {
	return fmt.Errorf("dimacs: model files must not contain a problem line")
}

func (b *modelBuilder) Comment(string) error {
	return nil
}

func (b *modelBuilder) Clause(rawLits []int) error {
	model := make(Model, len(rawLits))
	for i, l := range rawLits {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
