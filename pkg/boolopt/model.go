// Package boolopt is a small integer-linear optimization front end over
// boolean decision variables. Callers declare booleans, bounded integers and
// linear constraints, set a linear objective, and solve within a time budget.
// The solver backend is an implementation detail; the current one is the
// gophersat pseudo-boolean engine.
package boolopt

// Var is a boolean decision variable. Variables are numbered from 1.
type Var int

// Term is a weighted variable inside a linear expression.
type Term struct {
	Var  Var
	Coef int
}

// LinExpr is a linear expression over boolean variables plus a constant.
// The zero value is the empty expression.
type LinExpr struct {
	Terms []Term
	Const int
}

// Sum returns the expression v1 + v2 + ... + vn.
func Sum(vars ...Var) LinExpr {
	var e LinExpr
	for _, v := range vars {
		e = e.Add(v, 1)
	}
	return e
}

// Add returns the expression with coef*v appended.
func (e LinExpr) Add(v Var, coef int) LinExpr {
	e.Terms = append(e.Terms[:len(e.Terms):len(e.Terms)], Term{Var: v, Coef: coef})
	return e
}

// AddExpr returns the sum of both expressions.
func (e LinExpr) AddExpr(o LinExpr) LinExpr {
	sum := LinExpr{
		Terms: append(e.Terms[:len(e.Terms):len(e.Terms)], o.Terms...),
		Const: e.Const + o.Const,
	}
	return sum
}

// Plus returns the expression with the constant shifted by k.
func (e LinExpr) Plus(k int) LinExpr {
	e.Const += k
	return e
}

// Negate returns the expression multiplied by -1.
func (e LinExpr) Negate() LinExpr {
	neg := LinExpr{Terms: make([]Term, len(e.Terms)), Const: -e.Const}
	for i, t := range e.Terms {
		neg.Terms[i] = Term{Var: t.Var, Coef: -t.Coef}
	}
	return neg
}

// IntVar is a non-negative bounded integer, binary-encoded over boolean
// variables. Its value is the weighted sum of its bits.
type IntVar struct {
	bits []Var
	max  int
}

// Expr returns the integer's value as a linear expression.
func (iv IntVar) Expr() LinExpr {
	var e LinExpr
	coef := 1
	for _, bit := range iv.bits {
		e = e.Add(bit, coef)
		coef *= 2
	}
	return e
}

// Max returns the integer's upper bound.
func (iv IntVar) Max() int { return iv.max }

// constr is a normalized pseudo-boolean constraint:
// sum of weights over literals >= atLeast, all weights positive.
// A positive literal is the variable, a negative one its negation.
type constr struct {
	lits    []int
	weights []int
	atLeast int
}

// Model is a set of boolean variables, linear constraints and an objective.
type Model struct {
	numVars      int
	constrs      []constr
	objective    LinExpr
	hasObjective bool

	// set when a constraint normalizes to an unsatisfiable constant
	triviallyUnsat bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBool declares a fresh boolean variable.
func (m *Model) NewBool() Var {
	m.numVars++
	return Var(m.numVars)
}

// NewIntVar declares a fresh integer in [0, hi].
func (m *Model) NewIntVar(hi int) IntVar {
	if hi < 0 {
		hi = 0
	}
	iv := IntVar{max: hi}
	for span := 1; span-1 < hi; span *= 2 {
		iv.bits = append(iv.bits, m.NewBool())
	}
	// Binary encoding reaches 2^bits-1; tighten when hi is not on a boundary.
	if encodedMax := (1 << len(iv.bits)) - 1; encodedMax > hi {
		m.AddLE(iv.Expr(), hi)
	}
	return iv
}

// AddGE adds the constraint e >= bound.
func (m *Model) AddGE(e LinExpr, bound int) {
	m.addNormalized(e, bound)
}

// AddLE adds the constraint e <= bound.
func (m *Model) AddLE(e LinExpr, bound int) {
	m.addNormalized(e.Negate(), -bound)
}

// AddEQ adds the constraint e == bound.
func (m *Model) AddEQ(e LinExpr, bound int) {
	m.AddGE(e, bound)
	m.AddLE(e, bound)
}

// AddAbsBound constrains iv >= |e| via the two standard inequalities
// iv >= e and iv >= -e. When iv is minimized, this pins iv to |e| exactly.
func (m *Model) AddAbsBound(iv IntVar, e LinExpr) {
	m.AddGE(iv.Expr().AddExpr(e.Negate()), 0)
	m.AddGE(iv.Expr().AddExpr(e), 0)
}

// Minimize sets the objective. All term coefficients must be non-negative;
// the constant part is carried through to the reported objective value.
func (m *Model) Minimize(e LinExpr) {
	m.objective = e
	m.hasObjective = true
}

// addNormalized rewrites e >= bound into positive-weight literal form:
// a negative term c*x becomes |c|*(not x) with the bound raised by |c|.
func (m *Model) addNormalized(e LinExpr, bound int) {
	atLeast := bound - e.Const
	var lits, weights []int
	for _, t := range e.Terms {
		switch {
		case t.Coef > 0:
			lits = append(lits, int(t.Var))
			weights = append(weights, t.Coef)
		case t.Coef < 0:
			lits = append(lits, -int(t.Var))
			weights = append(weights, -t.Coef)
			atLeast += -t.Coef
		}
	}
	if len(lits) == 0 {
		if atLeast > 0 {
			m.triviallyUnsat = true
		}
		return
	}
	if atLeast <= 0 {
		// Always satisfied.
		return
	}
	m.constrs = append(m.constrs, constr{lits: lits, weights: weights, atLeast: atLeast})
}
