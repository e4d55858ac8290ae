package syntax

// Identifier is a bare name reference.
type Identifier struct {
	Name string
}

// This is the "this" receiver.
type This struct{}

// StringLiteral is a quoted string or a template without substitutions.
// Raw keeps the quotes; Value does not.
type StringLiteral struct {
	Raw   string
	Value string
}

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	Raw string
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is null.
type NullLiteral struct{}

// UndefinedLiteral is undefined.
type UndefinedLiteral struct{}

// ArrayExpression is an array literal.
type ArrayExpression struct {
	Raw      string
	Elements []Expr
}

// Property is one key of an object literal.
type Property struct {
	Key      string
	Value    Expr
	Doc      string
	Position Position
}

// ObjectExpression is an object literal.
type ObjectExpression struct {
	Raw        string
	Properties []Property
}

// Get returns the value of the property named key.
func (o *ObjectExpression) Get(key string) (Expr, bool) {
	for _, p := range o.Properties {
		if p.Key == key {
			return p.Value, p.Value != nil
		}
	}
	return nil, false
}

// FunctionExpression is an arrow function or function expression.
type FunctionExpression struct {
	Raw   string
	Arrow bool
}

// MemberExpression is "object.property".
type MemberExpression struct {
	Raw      string
	Object   Expr
	Property string
}

// AssignmentExpression is "left op right".
type AssignmentExpression struct {
	Raw      string
	Operator string
	Left     Expr
	Right    Expr
}

// CallExpression is "callee(args)".
type CallExpression struct {
	Raw    string
	Callee Expr
	Args   []Expr
}

// UnaryExpression is "op argument".
type UnaryExpression struct {
	Raw      string
	Operator string
	Argument Expr
}

// OtherExpression is any expression outside the recognized shapes.
type OtherExpression struct {
	Type string
	Raw  string
}

func (e *Identifier) Source() string           { return e.Name }
func (e *This) Source() string                 { return "this" }
func (e *StringLiteral) Source() string        { return e.Raw }
func (e *NumberLiteral) Source() string        { return e.Raw }
func (e *NullLiteral) Source() string          { return "null" }
func (e *UndefinedLiteral) Source() string     { return "undefined" }
func (e *ArrayExpression) Source() string      { return e.Raw }
func (e *ObjectExpression) Source() string     { return e.Raw }
func (e *FunctionExpression) Source() string   { return e.Raw }
func (e *MemberExpression) Source() string     { return e.Raw }
func (e *AssignmentExpression) Source() string { return e.Raw }
func (e *CallExpression) Source() string       { return e.Raw }
func (e *UnaryExpression) Source() string      { return e.Raw }
func (e *OtherExpression) Source() string      { return e.Raw }

func (e *BooleanLiteral) Source() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func (*Identifier) expr()           {}
func (*This) expr()                 {}
func (*StringLiteral) expr()        {}
func (*NumberLiteral) expr()        {}
func (*BooleanLiteral) expr()       {}
func (*NullLiteral) expr()          {}
func (*UndefinedLiteral) expr()     {}
func (*ArrayExpression) expr()      {}
func (*ObjectExpression) expr()     {}
func (*FunctionExpression) expr()   {}
func (*MemberExpression) expr()     {}
func (*AssignmentExpression) expr() {}
func (*CallExpression) expr()       {}
func (*UnaryExpression) expr()      {}
func (*OtherExpression) expr()      {}

// CalleeName returns the dotted name of a call's callee, such as "Vue.extend".
func CalleeName(e Expr) string {
	switch e := e.(type) {
	case *Identifier:
		return e.Name
	case *MemberExpression:
		if obj := CalleeName(e.Object); obj != "" {
			return obj + "." + e.Property
		}
	}
	return ""
}

// Property is also a Node so object literal keys can be documented like
// class members.
func (p *Property) Pos() Position          { return p.Position }
func (p *Property) LeadingComment() string { return p.Doc }
func (*Property) node()                    {}
