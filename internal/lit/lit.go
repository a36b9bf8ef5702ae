// Package lit implements the variable/literal algebra the rest of the
// solver is built on: variables are non-negative integers, a literal packs
// (variable, sign) into a single integer so complement is a bit flip and
// both polarities index adjacent slots, and Bool is the ternary value used
// throughout propagation and assignment.
package lit

import "fmt"

// Var is a 0-based problem variable.
type Var int32

// VarUndef marks the absence of a variable (e.g. an empty branching decision).
const VarUndef Var = -1

// Lit is a packed (variable, sign) literal: 2*v + sign, sign 0 = positive.
type Lit int32

// Undef is the literal equivalent of VarUndef.
const Undef Lit = -2

// New returns the literal for variable v with the given sign (true = negated).
func New(v Var, sign bool) Lit {
	if sign {
		return Lit(2*v + 1)
	}
	return Lit(2 * v)
}

// Var returns the variable l is built on.
func (l Lit) Var() Var { return Var(l >> 1) }

// Sign reports whether l is the negative polarity.
func (l Lit) Sign() bool { return l&1 == 1 }

// Neg returns the complement of l. Complement is XOR 1 by construction.
func (l Lit) Neg() Lit { return l ^ 1 }

func (l Lit) String() string {
	if l.Sign() {
		return fmt.Sprintf("-%d", l.Var()+1)
	}
	return fmt.Sprintf("%d", l.Var()+1)
}

// Index returns l as a dense array index, suitable for watch-list /
// generator-watch tables sized 2*nVars.
func (l Lit) Index() int { return int(l) }

// Bool is a ternary truth value: True, False, or Undef.
type Bool int8

const (
	True     Bool = 0
	False    Bool = 1
	BoolUndef Bool = 2
)

func (b Bool) String() string {
	switch b {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undef"
	}
}

// Xor returns True^sign as a Bool, mirroring MiniSat's lbool(!sign(p)) idiom:
// a variable assigned "not-sign" is True, assigned "sign" is False.
func Xor(sign bool) Bool {
	if sign {
		return False
	}
	return True
}
