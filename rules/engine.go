package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Gate evaluates a fixed set of compiled rules against one environment type.
// Rules run in priority order and evaluation stops at the first rule that
// does not hold, so cheap, decisive checks should carry the highest priority.
type Gate struct {
	name  string
	rules []*Rule
}

// NewGate compiles every rule against the shape of env (a zero value of the
// environment struct) and sorts them by descending priority. Ties keep
// declaration order.
func NewGate(name string, env any, rules []*Rule) (*Gate, error) {
	compiled, err := compileRules(rules, env)
	if err != nil {
		return nil, fmt.Errorf("gate %s: %w", name, err)
	}
	return &Gate{name: name, rules: compiled}, nil
}

// Allow runs the rules against env. It returns the name of the first rule
// that blocked, or "" when every rule held. A rule that fails at run time
// counts as not holding.
func (g *Gate) Allow(env any) (bool, string) {
	for _, r := range g.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "gate", g.name, "rule", r.Name, "error", err)
			return false, r.Name
		}
		match, ok := result.(bool)
		if !ok || !match {
			return false, r.Name
		}
	}
	return true, ""
}

// Names lists the rules in evaluation order.
func (g *Gate) Names() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.Name
	}
	return names
}

func (g *Gate) Len() int { return len(g.rules) }

func compileRules(rules []*Rule, env any) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
