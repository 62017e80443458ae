package sat

import "fmt"

// Literal is a variable together with a sign, packed into a single 32-bit
// word: the low bit carries the sign (1 = negated) and the remaining bits
// carry the variable index. Variable 0 is reserved as "undefined", so the
// smallest real variable is 1 and its literals are 2 (positive) and 3
// (negative).
//
// The dense 0..2*(N+1) index space this encoding produces is what lets watch
// lists be keyed directly by literal value instead of going through a map.
type Literal int32

// LitUndef is returned where "no literal" needs to be represented, e.g. by
// analysis when it has not yet resolved a conflict literal.
const LitUndef Literal = -1

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// Lit returns the literal of variable v with the given sign (true = negated).
func Lit(v int, negated bool) Literal {
	if negated {
		return NegativeLiteral(v)
	}
	return PositiveLiteral(v)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Sign returns true if the literal is negated.
func (l Literal) Sign() bool {
	return l&1 != 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Neg is an alias of Opposite matching the glossary's neg(l) operation.
func (l Literal) Neg() Literal {
	return l.Opposite()
}

// ValueUnder returns the literal's truth value under the given per-literal
// assignment table (indexed the same way watch lists are, i.e. one entry per
// literal rather than per variable).
func (l Literal) ValueUnder(assigns []LBool) LBool {
	return assigns[l]
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
