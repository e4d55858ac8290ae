// Package parse turns syntax nodes of a class component into
// documentation entries.
package parse

import (
	"log/slog"
	"strings"

	"github.com/webfansplz/vuedoc-parser/internal/comment"
	"github.com/webfansplz/vuedoc-parser/internal/entry"
	"github.com/webfansplz/vuedoc-parser/internal/scope"
	"github.com/webfansplz/vuedoc-parser/internal/syntax"
)

// Sink receives every entry once, in visitation order.
type Sink func(entry.Entry)

// DataParser builds data entries. It is the construction logic shared by
// the shape specific parsers.
type DataParser struct {
	Scope *scope.Scope
	Emit  Sink
	Log   *slog.Logger
}

// ParseData resolves value, builds a data entry named name and emits it.
// The type is typ when given, else the node's type annotation, else the
// type inferred from the resolved value. The name is recorded as a global
// binding so later declarations of the component can reference it.
func (p *DataParser) ParseData(node syntax.Node, name string, value syntax.Expr, typ string) {
	ref := p.Scope.Resolve(value)
	if typ == "" {
		typ = annotation(node)
	}
	if typ == "" {
		typ = ref.Type()
	}

	e := entry.NewDataEntry(name, typ, ref.Raw)
	p.Scope.Set(e.Name, value, ref, true)
	comment.Merge(e, node.LeadingComment())

	if strings.HasPrefix(name, "#") {
		e.Visibility = entry.Private
	}
	if v, ok := accessibility(node); ok {
		e.Visibility = v
	}

	p.logger().Debug("data entry",
		"name", e.Name,
		"kind", ref.Kind,
		"line", node.Pos().Line,
	)
	p.Emit(e)
}

func (p *DataParser) logger() *slog.Logger {
	if p.Log == nil {
		return discardLogger
	}
	return p.Log
}

// ClassDataParser recognizes the two ways a class component declares a
// data field: a class property ("count = 0") and an assignment through
// this ("this.count = 0").
type ClassDataParser struct {
	DataParser
}

// Parse emits a data entry when node is a data declaration and reports
// whether it did. typ, when not empty, overrides type inference.
func (p *ClassDataParser) Parse(node syntax.Node, typ string) bool {
	switch n := node.(type) {
	case *syntax.ClassProperty:
		if n.Key == "" {
			return false
		}
		p.ParseData(n, n.Key, n.Value, typ)
		return true

	case *syntax.ExpressionStatement:
		assign, ok := n.Expression.(*syntax.AssignmentExpression)
		if !ok || assign.Operator != "=" || assign.Right == nil {
			return false
		}
		member, ok := assign.Left.(*syntax.MemberExpression)
		if !ok || member.Property == "" {
			return false
		}
		if _, ok := member.Object.(*syntax.This); !ok {
			return false
		}
		p.ParseData(n, member.Property, assign.Right, typ)
		return true
	}
	return false
}

func annotation(node syntax.Node) string {
	if n, ok := node.(*syntax.ClassProperty); ok {
		return n.TypeAnnotation
	}
	return ""
}

func accessibility(node syntax.Node) (entry.Visibility, bool) {
	var modifier string
	switch n := node.(type) {
	case *syntax.ClassProperty:
		modifier = n.Accessibility
	case *syntax.MethodDefinition:
		modifier = n.Accessibility
	}
	return entry.ParseVisibility(modifier)
}
