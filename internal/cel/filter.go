// Package cel filters extracted menu items with CEL expressions.
package cel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/menusheet/internal/menu"
)

// Variables bound for every item.
const (
	VarModifier    = "modifier"
	VarKey         = "key"
	VarPath        = "path"
	VarDepth       = "depth"
	VarLabel       = "label"
	VarShortcut    = "shortcut"
	VarHasShortcut = "has_shortcut"
)

// evalCostLimit bounds a single evaluation so a pathological expression cannot
// stall a run.
const evalCostLimit = 100_000

// Filter is a compiled boolean expression over a menu item.
type Filter struct {
	expr string
	prg  cel.Program
}

// newItemEnv creates the CEL environment with the item variables and the
// common extension libraries.
func newItemEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 11+len(opts))
	allOpts = append(allOpts,
		cel.Variable(VarModifier, cel.StringType),
		cel.Variable(VarKey, cel.StringType),
		cel.Variable(VarPath, cel.ListType(cel.StringType)),
		cel.Variable(VarDepth, cel.IntType),
		cel.Variable(VarLabel, cel.StringType),
		cel.Variable(VarShortcut, cel.StringType),
		cel.Variable(VarHasShortcut, cel.BoolType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Compile parses and type-checks expr. An empty expression yields a nil
// Filter, which keeps every item.
func Compile(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	env, err := newItemEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast, cel.CostLimit(evalCostLimit))
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Match reports whether item satisfies the expression.
func (f *Filter) Match(item menu.Item) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, _, err := f.prg.Eval(activation(item))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %s, not bool", f.expr, out.Type())
	}
	return b, nil
}

// Apply returns the items that satisfy the expression, in their original
// order. The input slice is not modified.
func (f *Filter) Apply(items []menu.Item) ([]menu.Item, error) {
	if f == nil {
		return items, nil
	}
	out := make([]menu.Item, 0, len(items))
	for i, it := range items {
		ok, err := f.Match(it)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, it.String(), err)
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func activation(item menu.Item) map[string]any {
	path := item.Path
	if path == nil {
		path = []string{}
	}
	return map[string]any{
		VarModifier:    item.Modifier,
		VarKey:         item.Key,
		VarPath:        path,
		VarDepth:       int64(item.Depth()),
		VarLabel:       item.Label(),
		VarShortcut:    item.Shortcut(),
		VarHasShortcut: item.HasShortcut(),
	}
}

// Functions lists the non-operator functions and macros available in filter
// expressions, sorted by name.
func Functions() []string {
	env, err := newItemEnv()
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, fn := range env.Functions() {
		if !isOperator(fn.Name()) {
			seen[fn.Name()] = true
		}
	}
	for _, m := range env.Macros() {
		if !isOperator(m.Function()) {
			seen[m.Function()] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isOperator filters out internal operator-style declarations.
func isOperator(name string) bool {
	if strings.HasPrefix(name, "@") {
		return true
	}
	if strings.HasPrefix(name, "_") && strings.HasSuffix(name, "_") {
		return true
	}
	return name == "!_" || name == "-_" || name == "_[_]" || name == "_?_:_"
}
