// Package syntax defines the closed set of node shapes the extraction
// parsers understand. A language adapter converts a concrete syntax tree
// into these nodes; parsers dispatch on them with type switches.
package syntax

// Position is a 1-based line and 0-based column in the source file.
type Position struct {
	Line   int
	Column int
}

// Node is a statement or class member.
type Node interface {
	Pos() Position
	// LeadingComment returns the documentation comment attached to the
	// node, or "" when there is none.
	LeadingComment() string
	node()
}

// Expr is an expression.
type Expr interface {
	// Source returns the expression as written in the source file.
	Source() string
	expr()
}

// File is a parsed module. Statements holds the top level variable
// declarations and every class, in source order.
type File struct {
	Path       string
	Statements []Node

	// HasErrors is set when the parser recovered from syntax errors; the
	// statements then describe a partial tree.
	HasErrors bool
}

// Decorator is an "@name(args)" annotation on a class or member.
type Decorator struct {
	Name string
	Args []Expr
	Call bool
}

// ClassDeclaration is a class, possibly a component.
type ClassDeclaration struct {
	Name       string
	SuperClass string
	Decorators []Decorator
	Members    []Node
	Doc        string
	Position   Position
}

// ClassProperty is a field declaration: "key: Type = value".
type ClassProperty struct {
	Key            string
	Value          Expr // nil without an initializer
	TypeAnnotation string
	Accessibility  string
	Static         bool
	Readonly       bool
	Optional       bool
	Decorators     []Decorator
	Doc            string
	Position       Position
}

// MethodKind classifies a method definition.
type MethodKind int

const (
	Method MethodKind = iota
	Getter
	Setter
	Constructor
)

// Param is a formal parameter.
type Param struct {
	Name    string
	Type    string
	Default Expr
	Rest    bool
}

// MethodDefinition is a class method, accessor or constructor.
type MethodDefinition struct {
	Name          string
	Kind          MethodKind
	Params        []Param
	ReturnType    string
	Accessibility string
	Static        bool
	Async         bool
	Decorators    []Decorator
	Body          []Node
	BodySource    string
	Doc           string
	Position      Position
}

// ExpressionStatement is an expression evaluated for its effect.
type ExpressionStatement struct {
	Expression Expr
	Doc        string
	Position   Position
}

// Declarator binds one name in a variable declaration.
type Declarator struct {
	Name  string
	Value Expr // nil without an initializer
}

// VariableDeclaration is a const, let or var statement.
type VariableDeclaration struct {
	Keyword     string
	Declarators []Declarator
	Doc         string
	Position    Position
}

// ReturnStatement returns Argument, which may be nil.
type ReturnStatement struct {
	Argument Expr
	Position Position
}

// Unknown is any node outside the recognized shapes.
type Unknown struct {
	Type     string
	Doc      string
	Position Position
}

func (n *ClassDeclaration) Pos() Position    { return n.Position }
func (n *ClassProperty) Pos() Position       { return n.Position }
func (n *MethodDefinition) Pos() Position    { return n.Position }
func (n *ExpressionStatement) Pos() Position { return n.Position }
func (n *VariableDeclaration) Pos() Position { return n.Position }
func (n *ReturnStatement) Pos() Position     { return n.Position }
func (n *Unknown) Pos() Position             { return n.Position }

func (n *ClassDeclaration) LeadingComment() string    { return n.Doc }
func (n *ClassProperty) LeadingComment() string       { return n.Doc }
func (n *MethodDefinition) LeadingComment() string    { return n.Doc }
func (n *ExpressionStatement) LeadingComment() string { return n.Doc }
func (n *VariableDeclaration) LeadingComment() string { return n.Doc }
func (n *ReturnStatement) LeadingComment() string     { return "" }
func (n *Unknown) LeadingComment() string             { return n.Doc }

func (*ClassDeclaration) node()    {}
func (*ClassProperty) node()       {}
func (*MethodDefinition) node()    {}
func (*ExpressionStatement) node() {}
func (*VariableDeclaration) node() {}
func (*ReturnStatement) node()     {}
func (*Unknown) node()             {}

// FindDecorator returns the first decorator named name.
func FindDecorator(decorators []Decorator, name string) (Decorator, bool) {
	for _, d := range decorators {
		if d.Name == name {
			return d, true
		}
	}
	return Decorator{}, false
}
