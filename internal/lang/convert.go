package lang

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/webfansplz/vuedoc-parser/internal/syntax"
)

// declarationWrappers are the nodes a class expression or declaration may
// sit in; the documentation comment precedes the outermost of them.
var declarationWrappers = map[string]bool{
	"export_statement":     true,
	"variable_declarator":  true,
	"lexical_declaration":  true,
	"variable_declaration": true,
}

// Parse parses source and converts its tree into a syntax file holding the
// top level variable declarations and every class. Positions are shifted
// by lineOffset lines so they refer to the enclosing file when source was
// cut out of it. The parser must be created for this language.
func (l *Language) Parse(ctx context.Context, parser *sitter.Parser, source []byte, lineOffset int) (*syntax.File, error) {
	query, err := l.GetClassQuery()
	if err != nil {
		return nil, err
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.Name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	c := &converter{source: source, lineOffset: lineOffset}

	type located struct {
		start uint32
		node  syntax.Node
	}
	var stmts []located

	c.siblings(root, func(child *sitter.Node, doc string) {
		decl := child
		if decl.Type() == "export_statement" {
			decl = child.ChildByFieldName("declaration")
		}
		if decl == nil {
			return
		}
		switch decl.Type() {
		case "lexical_declaration", "variable_declaration":
			v := c.variables(decl)
			v.Doc = doc
			stmts = append(stmts, located{child.StartByte(), v})
		}
	})

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, root)

	seen := make(map[uint32]bool)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, source)
		for _, capture := range match.Captures {
			n := capture.Node
			if seen[n.StartByte()] {
				continue
			}
			seen[n.StartByte()] = true
			stmts = append(stmts, located{n.StartByte(), c.class(n)})
		}
	}

	slices.SortStableFunc(stmts, func(a, b located) int {
		return int(a.start) - int(b.start)
	})

	file := &syntax.File{HasErrors: root.HasError()}
	for _, s := range stmts {
		file.Statements = append(file.Statements, s.node)
	}
	return file, nil
}

type converter struct {
	source     []byte
	lineOffset int
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return NodeText(n, c.source)
}

func (c *converter) pos(n *sitter.Node) syntax.Position {
	p := n.StartPoint()
	return syntax.Position{Line: int(p.Row) + 1 + c.lineOffset, Column: int(p.Column)}
}

// docs accumulates the comments that precede the next node of a sibling
// list. A block comment replaces what came before it; adjacent line
// comments are joined.
type docs struct {
	text string
	row  uint32
	line bool
}

func (d *docs) add(n *sitter.Node, source []byte) {
	text := NodeText(n, source)
	isLine := strings.HasPrefix(text, "//")
	if isLine && d.line && n.StartPoint().Row == d.row+1 {
		d.text += "\n" + text
	} else {
		d.text = text
	}
	d.row = n.EndPoint().Row
	d.line = isLine
}

func (d *docs) take() string {
	text := d.text
	*d = docs{}
	return text
}

// siblings calls fn for each named child of n that is not a comment, with
// the comment block preceding it. A comment on the last line of the
// previous child trails that child and is dropped.
func (c *converter) siblings(n *sitter.Node, fn func(child *sitter.Node, doc string)) {
	var (
		d       docs
		lastRow uint32
		started bool
	)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			if started && child.StartPoint().Row == lastRow {
				continue
			}
			d.add(child, c.source)
			continue
		}
		fn(child, d.take())
		lastRow = child.EndPoint().Row
		started = true
	}
}

// leadingDoc returns the comment block directly preceding a class,
// looking through export and variable declaration wrappers.
func (c *converter) leadingDoc(n *sitter.Node) string {
	for parent := n.Parent(); parent != nil && declarationWrappers[parent.Type()]; parent = n.Parent() {
		n = parent
	}
	var comments []*sitter.Node
	for p := n.PrevNamedSibling(); p != nil && p.Type() == "comment"; p = p.PrevNamedSibling() {
		comments = append(comments, p)
	}
	var d docs
	for i := len(comments) - 1; i >= 0; i-- {
		d.add(comments[i], c.source)
	}
	return d.take()
}

func (c *converter) class(n *sitter.Node) *syntax.ClassDeclaration {
	cls := &syntax.ClassDeclaration{
		Name:     c.text(n.ChildByFieldName("name")),
		Doc:      c.leadingDoc(n),
		Position: c.pos(n),
	}

	parent := n.Parent()
	if cls.Name == "" && parent != nil && parent.Type() == "variable_declarator" {
		cls.Name = c.text(parent.ChildByFieldName("name"))
	}
	if parent != nil && parent.Type() == "export_statement" {
		cls.Decorators = append(cls.Decorators, c.decorators(parent)...)
	}
	cls.Decorators = append(cls.Decorators, c.decorators(n)...)

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == "class_heritage" {
			cls.SuperClass = superClass(c.text(child))
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		cls.Members = c.members(body)
	}
	return cls
}

// superClass returns the extended expression of a heritage clause.
func superClass(heritage string) string {
	text := CollapseWhitespace(heritage)
	if !strings.HasPrefix(text, "extends") {
		return ""
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "extends"))
	if i := strings.Index(text, " implements "); i >= 0 {
		text = text[:i]
	}
	return text
}

func (c *converter) decorators(n *sitter.Node) []syntax.Decorator {
	var out []syntax.Decorator
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == "decorator" {
			out = append(out, c.decorator(child))
		}
	}
	return out
}

func (c *converter) decorator(n *sitter.Node) syntax.Decorator {
	if n.NamedChildCount() == 0 {
		return syntax.Decorator{}
	}
	target := c.expr(n.NamedChild(0))
	if call, ok := target.(*syntax.CallExpression); ok {
		return syntax.Decorator{Name: syntax.CalleeName(call.Callee), Args: call.Args, Call: true}
	}
	return syntax.Decorator{Name: syntax.CalleeName(target)}
}

// members converts a class body. In TypeScript, method decorators are
// siblings preceding the method; they are attached to it here.
func (c *converter) members(body *sitter.Node) []syntax.Node {
	var (
		members    []syntax.Node
		pending    []syntax.Decorator
		pendingDoc string
	)
	c.siblings(body, func(child *sitter.Node, doc string) {
		if child.Type() == "decorator" {
			pending = append(pending, c.decorator(child))
			if doc != "" {
				pendingDoc = doc
			}
			return
		}
		if doc == "" {
			doc = pendingDoc
		}

		switch child.Type() {
		case "public_field_definition", "field_definition":
			p := c.field(child)
			p.Decorators = append(pending, p.Decorators...)
			p.Doc = doc
			members = append(members, p)
		case "method_definition":
			m := c.method(child)
			m.Decorators = append(pending, m.Decorators...)
			m.Doc = doc
			members = append(members, m)
		default:
			members = append(members, &syntax.Unknown{Type: child.Type(), Doc: doc, Position: c.pos(child)})
		}
		pending, pendingDoc = nil, ""
	})
	return members
}

func (c *converter) field(n *sitter.Node) *syntax.ClassProperty {
	p := &syntax.ClassProperty{Position: c.pos(n)}

	name := n.ChildByFieldName("name")
	if name == nil {
		name = n.ChildByFieldName("property")
	}
	p.Key = c.propertyName(name)
	p.Value = c.expr(n.ChildByFieldName("value"))

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "decorator":
			p.Decorators = append(p.Decorators, c.decorator(child))
		case "accessibility_modifier":
			p.Accessibility = c.text(child)
		case "type_annotation":
			p.TypeAnnotation = c.typeText(child)
		case "static":
			p.Static = true
		case "readonly":
			p.Readonly = true
		case "?":
			p.Optional = true
		}
	}
	return p
}

func (c *converter) method(n *sitter.Node) *syntax.MethodDefinition {
	m := &syntax.MethodDefinition{
		Name:     c.propertyName(n.ChildByFieldName("name")),
		Position: c.pos(n),
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "decorator":
			m.Decorators = append(m.Decorators, c.decorator(child))
		case "accessibility_modifier":
			m.Accessibility = c.text(child)
		case "static":
			m.Static = true
		case "async":
			m.Async = true
		case "get":
			m.Kind = syntax.Getter
		case "set":
			m.Kind = syntax.Setter
		}
	}
	if m.Name == "constructor" {
		m.Kind = syntax.Constructor
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		m.Params = c.params(params)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		m.ReturnType = c.typeText(ret)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		m.BodySource = c.text(body)
		m.Body = c.block(body)
	}
	return m
}

func (c *converter) params(n *sitter.Node) []syntax.Param {
	var out []syntax.Param
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		var p syntax.Param
		switch child.Type() {
		case "required_parameter", "optional_parameter":
			pattern := child.ChildByFieldName("pattern")
			if pattern == nil || pattern.Type() == "this" {
				continue
			}
			c.paramPattern(pattern, &p)
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = c.typeText(t)
			}
			p.Default = c.expr(child.ChildByFieldName("value"))
		case "assignment_pattern":
			c.paramPattern(child.ChildByFieldName("left"), &p)
			p.Default = c.expr(child.ChildByFieldName("right"))
		case "identifier", "rest_pattern", "object_pattern", "array_pattern":
			c.paramPattern(child, &p)
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *converter) paramPattern(n *sitter.Node, p *syntax.Param) {
	if n == nil {
		return
	}
	if n.Type() == "rest_pattern" {
		p.Rest = true
		if n.NamedChildCount() > 0 {
			n = n.NamedChild(0)
		}
	}
	p.Name = c.text(n)
}

// block converts the statements of a function body.
func (c *converter) block(n *sitter.Node) []syntax.Node {
	var out []syntax.Node
	c.siblings(n, func(child *sitter.Node, doc string) {
		switch child.Type() {
		case "lexical_declaration", "variable_declaration":
			v := c.variables(child)
			v.Doc = doc
			out = append(out, v)
		case "expression_statement":
			st := &syntax.ExpressionStatement{Doc: doc, Position: c.pos(child)}
			if child.NamedChildCount() > 0 {
				st.Expression = c.expr(child.NamedChild(0))
			}
			out = append(out, st)
		case "return_statement":
			st := &syntax.ReturnStatement{Position: c.pos(child)}
			if arg := firstNamed(child); arg != nil {
				st.Argument = c.expr(arg)
			}
			out = append(out, st)
		default:
			out = append(out, &syntax.Unknown{Type: child.Type(), Doc: doc, Position: c.pos(child)})
		}
	})
	return out
}

func (c *converter) variables(n *sitter.Node) *syntax.VariableDeclaration {
	v := &syntax.VariableDeclaration{Position: c.pos(n)}
	if n.ChildCount() > 0 {
		v.Keyword = n.Child(0).Type()
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		var d syntax.Declarator
		if name := child.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			d.Name = c.text(name)
		}
		d.Value = c.expr(child.ChildByFieldName("value"))
		v.Declarators = append(v.Declarators, d)
	}
	return v
}

func (c *converter) propertyName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "string" {
		return unquote(c.text(n))
	}
	return c.text(n)
}

// typeText strips the colon of a type annotation.
func (c *converter) typeText(n *sitter.Node) string {
	text := c.text(n)
	text = strings.TrimPrefix(strings.TrimSpace(text), ":")
	return CollapseWhitespace(text)
}

func (c *converter) expr(n *sitter.Node) syntax.Expr {
	if n == nil {
		return nil
	}
	raw := c.text(n)

	switch n.Type() {
	case "parenthesized_expression":
		if inner := firstNamed(n); inner != nil {
			return c.expr(inner)
		}
	case "string":
		return &syntax.StringLiteral{Raw: raw, Value: unquote(raw)}
	case "template_string":
		if !hasChild(n, "template_substitution") {
			return &syntax.StringLiteral{Raw: raw, Value: unquote(raw)}
		}
	case "number":
		return &syntax.NumberLiteral{Raw: raw}
	case "true":
		return &syntax.BooleanLiteral{Value: true}
	case "false":
		return &syntax.BooleanLiteral{}
	case "null":
		return &syntax.NullLiteral{}
	case "undefined":
		return &syntax.UndefinedLiteral{}
	case "identifier":
		if raw == "undefined" {
			return &syntax.UndefinedLiteral{}
		}
		return &syntax.Identifier{Name: raw}
	case "this":
		return &syntax.This{}
	case "array":
		arr := &syntax.ArrayExpression{Raw: raw}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if el := n.NamedChild(i); el.Type() != "comment" {
				arr.Elements = append(arr.Elements, c.expr(el))
			}
		}
		return arr
	case "object":
		return c.object(n, raw)
	case "arrow_function":
		return &syntax.FunctionExpression{Raw: raw, Arrow: true}
	case "function_expression", "function", "generator_function":
		return &syntax.FunctionExpression{Raw: raw}
	case "member_expression":
		return &syntax.MemberExpression{
			Raw:      raw,
			Object:   c.expr(n.ChildByFieldName("object")),
			Property: c.text(n.ChildByFieldName("property")),
		}
	case "call_expression":
		call := &syntax.CallExpression{Raw: raw, Callee: c.expr(n.ChildByFieldName("function"))}
		if args := n.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				if arg := args.NamedChild(i); arg.Type() != "comment" {
					call.Args = append(call.Args, c.expr(arg))
				}
			}
		}
		return call
	case "unary_expression":
		return &syntax.UnaryExpression{
			Raw:      raw,
			Operator: c.text(n.ChildByFieldName("operator")),
			Argument: c.expr(n.ChildByFieldName("argument")),
		}
	case "assignment_expression":
		return &syntax.AssignmentExpression{
			Raw:      raw,
			Operator: "=",
			Left:     c.expr(n.ChildByFieldName("left")),
			Right:    c.expr(n.ChildByFieldName("right")),
		}
	case "augmented_assignment_expression":
		return &syntax.AssignmentExpression{
			Raw:      raw,
			Operator: c.text(n.ChildByFieldName("operator")),
			Left:     c.expr(n.ChildByFieldName("left")),
			Right:    c.expr(n.ChildByFieldName("right")),
		}
	}
	return &syntax.OtherExpression{Type: n.Type(), Raw: raw}
}

func (c *converter) object(n *sitter.Node, raw string) *syntax.ObjectExpression {
	obj := &syntax.ObjectExpression{Raw: raw}
	c.siblings(n, func(child *sitter.Node, doc string) {
		prop := syntax.Property{Doc: doc, Position: c.pos(child)}
		switch child.Type() {
		case "pair":
			prop.Key = c.propertyName(child.ChildByFieldName("key"))
			prop.Value = c.expr(child.ChildByFieldName("value"))
		case "shorthand_property_identifier":
			prop.Key = c.text(child)
			prop.Value = &syntax.Identifier{Name: prop.Key}
		case "method_definition":
			prop.Key = c.propertyName(child.ChildByFieldName("name"))
			prop.Value = &syntax.FunctionExpression{Raw: c.text(child)}
		default:
			return
		}
		obj.Properties = append(obj.Properties, prop)
	})
	return obj
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}
	return nil
}

func hasChild(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == typ {
			return true
		}
	}
	return false
}

// unquote strips the delimiters of a string or template literal.
func unquote(raw string) string {
	if len(raw) >= 2 {
		switch raw[0] {
		case '\'', '"', '`':
			if raw[len(raw)-1] == raw[0] {
				return raw[1 : len(raw)-1]
			}
		}
	}
	return raw
}
