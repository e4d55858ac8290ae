// Package scope resolves expressions to static values using the bindings
// recorded while walking a component.
package scope

import "github.com/webfansplz/vuedoc-parser/internal/syntax"

// Kind is the syntactic category of a resolved value.
type Kind string

const (
	String     Kind = "string"
	Number     Kind = "number"
	Boolean    Kind = "boolean"
	Null       Kind = "null"
	Undefined  Kind = "undefined"
	Array      Kind = "array"
	Object     Kind = "object"
	Function   Kind = "function"
	Expression Kind = "expression"

	// Identifier is a reference to a known declaration that has no static
	// value, such as a field declared without an initializer.
	Identifier Kind = "identifier"

	// Unresolved is a reference to a name with no binding, or a missing
	// value.
	Unresolved Kind = "unresolved"
)

// Value describes a resolved expression. Raw reproduces the source text
// of the value and is empty when the value could not be resolved.
type Value struct {
	Kind Kind
	Raw  string
}

// Resolved reports whether v carries source text.
func (v Value) Resolved() bool {
	return v.Raw != ""
}

// Type returns the type name inferred from the value kind.
func (v Value) Type() string {
	switch v.Kind {
	case String, Number, Boolean, Null, Undefined, Array, Object, Function:
		return string(v.Kind)
	}
	return "unknown"
}

// Binding is a recorded name.
type Binding struct {
	Name  string
	Node  syntax.Expr
	Value Value
}

// Scope holds bindings for one lexical level. Each run owns its scopes;
// they are not safe for concurrent use.
type Scope struct {
	parent    *Scope
	component *Scope
	bindings  map[string]Binding
}

// New returns a root scope, typically for a module.
func New() *Scope {
	s := &Scope{bindings: make(map[string]Binding)}
	s.component = s
	return s
}

// Component returns a scope for one component nested in s. Global
// bindings made anywhere below it are stored in it.
func (s *Scope) Component() *Scope {
	c := &Scope{parent: s, bindings: make(map[string]Binding)}
	c.component = c
	return c
}

// Child returns a local scope nested in s, such as a method body.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, component: s.component, bindings: make(map[string]Binding)}
}

// Set records name. A global binding is stored in the enclosing component
// scope so later sibling declarations can see it; a local one in s. A later
// declaration of the same name replaces the earlier one.
func (s *Scope) Set(name string, node syntax.Expr, v Value, global bool) {
	target := s
	if global {
		target = s.component
	}
	target.bindings[name] = Binding{Name: name, Node: node, Value: v}
}

// Lookup returns the nearest binding of name.
func (s *Scope) Lookup(name string) (Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Resolve returns the static value of e. Literals resolve to themselves,
// identifiers and this.<name> members to their nearest binding, and any
// other expression to its source text without evaluating it.
func (s *Scope) Resolve(e syntax.Expr) Value {
	switch e := e.(type) {
	case nil:
		return Value{Kind: Unresolved}
	case *syntax.StringLiteral:
		return Value{Kind: String, Raw: e.Raw}
	case *syntax.NumberLiteral:
		return Value{Kind: Number, Raw: e.Raw}
	case *syntax.BooleanLiteral:
		return Value{Kind: Boolean, Raw: e.Source()}
	case *syntax.NullLiteral:
		return Value{Kind: Null, Raw: e.Source()}
	case *syntax.UndefinedLiteral:
		return Value{Kind: Undefined, Raw: e.Source()}
	case *syntax.ArrayExpression:
		return Value{Kind: Array, Raw: e.Raw}
	case *syntax.ObjectExpression:
		return Value{Kind: Object, Raw: e.Raw}
	case *syntax.FunctionExpression:
		return Value{Kind: Function, Raw: e.Raw}
	case *syntax.UnaryExpression:
		if e.Operator == "-" || e.Operator == "+" {
			if s.Resolve(e.Argument).Kind == Number {
				return Value{Kind: Number, Raw: e.Raw}
			}
		}
		if e.Operator == "void" {
			return Value{Kind: Undefined, Raw: e.Raw}
		}
		return Value{Kind: Expression, Raw: e.Raw}
	case *syntax.Identifier:
		return s.resolveName(e.Name)
	case *syntax.MemberExpression:
		if _, ok := e.Object.(*syntax.This); ok {
			return s.resolveName(e.Property)
		}
		return Value{Kind: Expression, Raw: e.Raw}
	default:
		return Value{Kind: Expression, Raw: e.Source()}
	}
}

func (s *Scope) resolveName(name string) Value {
	b, ok := s.Lookup(name)
	if !ok {
		return Value{Kind: Unresolved}
	}
	if b.Value.Kind == Unresolved {
		return Value{Kind: Identifier}
	}
	return b.Value
}
