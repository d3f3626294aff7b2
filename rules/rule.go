package rules

import "github.com/expr-lang/expr/vm"

// Rule is a named guard condition. A gate passes only when every one of
// its rules evaluates to true.
type Rule struct {
	Name         string      // human-readable identifier, reported when the rule blocks
	Priority     int         // higher = evaluated first
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
}
