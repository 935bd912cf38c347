package features

import (
	"errors"
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

var ErrMissingFeature = errors.New("feature referenced by filter is missing")

// Filter is a boolean expression over the feature values of one entity,
// e.g. `Amount > 100 && V1 < 0`.
type Filter struct {
	code      string
	variables []string
	program   *vm.Program
}

// CompileFilter compiles code. Every variable must be one of allowed.
func CompileFilter(code string, allowed []string) (*Filter, error) {
	variables, err := ExtractVariables(code)
	if err != nil {
		return nil, err
	}

	env := make(map[string]interface{}, len(allowed))
	for _, name := range allowed {
		env[name] = float64(0)
	}
	for _, v := range variables {
		if _, ok := env[v]; !ok {
			return nil, fmt.Errorf("filter references unknown feature: %s", v)
		}
	}

	program, err := expr.Compile(code, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", code, err)
	}

	return &Filter{code: code, variables: variables, program: program}, nil
}

func (f *Filter) String() string {
	return f.code
}

// Variables returns the sorted feature names the filter reads.
func (f *Filter) Variables() []string {
	return f.variables
}

// Match evaluates the filter against values. A referenced feature absent from values
// yields ErrMissingFeature.
func (f *Filter) Match(values map[string]float64) (bool, error) {
	env := make(map[string]interface{}, len(values))
	for k, v := range values {
		env[k] = v
	}
	for _, v := range f.variables {
		if _, ok := env[v]; !ok {
			return false, fmt.Errorf("%w: %s", ErrMissingFeature, v)
		}
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, err
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.code, out)
	}

	return matched, nil
}

// ExtractVariables parses code and returns every variable name it references, sorted.
func ExtractVariables(code string) ([]string, error) {
	tree, err := parser.Parse(code)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expression: %w", err)
	}

	variables := make(map[string]struct{})
	walk(tree.Node, variables)

	result := make([]string, 0, len(variables))
	for v := range variables {
		result = append(result, v)
	}
	sort.Strings(result)

	return result, nil
}

func walk(node ast.Node, variables map[string]struct{}) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.IdentifierNode:
		variables[n.Value] = struct{}{}
	case *ast.BinaryNode:
		walk(n.Left, variables)
		walk(n.Right, variables)
	case *ast.UnaryNode:
		walk(n.Node, variables)
	case *ast.MemberNode:
		walk(n.Node, variables)
	case *ast.ChainNode:
		walk(n.Node, variables)
	case *ast.CallNode:
		for _, arg := range n.Arguments {
			walk(arg, variables)
		}
	case *ast.BuiltinNode:
		for _, arg := range n.Arguments {
			walk(arg, variables)
		}
	case *ast.ConditionalNode:
		walk(n.Cond, variables)
		walk(n.Exp1, variables)
		walk(n.Exp2, variables)
	case *ast.ArrayNode:
		for _, elem := range n.Nodes {
			walk(elem, variables)
		}
	}
}
