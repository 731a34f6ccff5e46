package boolopt

import (
	"context"
	"errors"
	"fmt"
	"time"

	gsat "github.com/crillab/gophersat/solver"
)

// DefaultBudget bounds a solve when the caller does not set one.
const DefaultBudget = 2 * time.Minute

// Status reports the quality of a returned solution.
type Status int

const (
	// StatusOptimal means the solution is provably optimal.
	StatusOptimal Status = iota

	// StatusFeasible means the solution satisfies all constraints but
	// optimality was not proven within the budget.
	StatusFeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var (
	// ErrInfeasible means no assignment satisfies the constraints.
	ErrInfeasible = errors.New("boolopt: problem is infeasible")

	// ErrTimeout means the budget elapsed before any solution was found.
	ErrTimeout = errors.New("boolopt: no solution within time budget")
)

// Solution is a satisfying assignment for a solved model.
type Solution struct {
	Status    Status
	Objective int

	values []bool
}

// Value returns the boolean variable's assigned value.
func (s *Solution) Value(v Var) bool {
	idx := int(v) - 1
	if idx < 0 || idx >= len(s.values) {
		return false
	}
	return s.values[idx]
}

// IntValue returns the integer variable's assigned value.
func (s *Solution) IntValue(iv IntVar) int {
	value := 0
	coef := 1
	for _, bit := range iv.bits {
		if s.Value(bit) {
			value += coef
		}
		coef *= 2
	}
	return value
}

// Solver runs a single bounded solve attempt against a model.
// The search itself is deterministic: identical models yield identical
// solutions whenever the search finishes within the budget. Only a
// budget-expiry incumbent can vary with machine speed.
type Solver struct {
	// Budget bounds the wall-clock time of one Solve call.
	// Zero means DefaultBudget.
	Budget time.Duration
}

// Solve returns the best assignment found within the budget: a proven
// optimum when the search finishes in time, the best incumbent so far when
// the budget (or context) expires first, ErrInfeasible when the constraints
// admit none, and ErrTimeout when the budget elapses before any incumbent.
// It never returns an assignment violating a constraint.
func (s *Solver) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if m.triviallyUnsat {
		return nil, ErrInfeasible
	}
	if !m.hasObjective {
		return nil, errors.New("boolopt: model has no objective")
	}

	budget := s.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	constrs := make([]gsat.PBConstr, 0, len(m.constrs))
	for _, c := range m.constrs {
		constrs = append(constrs, gsat.GtEq(c.lits, c.weights, c.atLeast))
	}
	problem := gsat.ParsePBConstrs(constrs)

	costLits, costWeights, err := costFunc(m.objective)
	if err != nil {
		return nil, err
	}
	problem.SetCostFunc(costLits, costWeights)

	engine := gsat.New(problem)

	// Optimal streams every improving assignment it finds and closes the
	// stream once optimality or unsatisfiability is proven.
	results := make(chan gsat.Result)
	stop := make(chan struct{})
	go func() { engine.Optimal(results, stop) }()

	return collectIncumbents(ctx, results, stop, budget, m.objective.Const)
}

// collectIncumbents tracks the best assignment on the stream. A closed
// stream proves the last incumbent optimal; a budget or context expiry
// returns the incumbent, if any, as feasible.
func collectIncumbents(ctx context.Context, results <-chan gsat.Result, stop chan<- struct{}, budget time.Duration, objShift int) (*Solution, error) {
	timer := time.NewTimer(budget)
	defer timer.Stop()

	var incumbent *Solution
	for {
		select {
		case res, open := <-results:
			if !open {
				if incumbent == nil {
					return nil, ErrInfeasible
				}
				incumbent.Status = StatusOptimal
				return incumbent, nil
			}
			if res.Status != gsat.Sat {
				continue
			}
			incumbent = &Solution{
				Status:    StatusFeasible,
				Objective: res.Weight + objShift,
				values:    res.Model,
			}
		case <-timer.C:
			abandon(results, stop)
			if incumbent == nil {
				return nil, ErrTimeout
			}
			return incumbent, nil
		case <-ctx.Done():
			abandon(results, stop)
			if incumbent == nil {
				return nil, ctx.Err()
			}
			return incumbent, nil
		}
	}
}

// abandon detaches from a search that outlived its budget. The engine does
// not interrupt an in-flight solve, so the search goroutine keeps running
// and ends with the process; draining the stream keeps it from blocking on
// a send nobody will read.
func abandon(results <-chan gsat.Result, stop chan<- struct{}) {
	close(stop)
	go func() {
		for range results {
		}
	}()
}

// costFunc converts the objective into the backend's literal/weight form.
func costFunc(e LinExpr) ([]gsat.Lit, []int, error) {
	var lits []gsat.Lit
	var weights []int
	for _, t := range e.Terms {
		if t.Coef < 0 {
			return nil, nil, fmt.Errorf("boolopt: negative objective coefficient %d on variable %d", t.Coef, t.Var)
		}
		if t.Coef == 0 {
			continue
		}
		lits = append(lits, gsat.IntToLit(int32(t.Var)))
		weights = append(weights, t.Coef)
	}
	return lits, weights, nil
}
