package parse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/webfansplz/vuedoc-parser/internal/casing"
	"github.com/webfansplz/vuedoc-parser/internal/comment"
	"github.com/webfansplz/vuedoc-parser/internal/entry"
	"github.com/webfansplz/vuedoc-parser/internal/scope"
	"github.com/webfansplz/vuedoc-parser/internal/syntax"
)

var (
	discardLogger = slog.New(slog.DiscardHandler)
	thisMemberRe  = regexp.MustCompile(`\bthis\.([A-Za-z_$][\w$]*)`)
)

// lifecycleHooks are framework callbacks, not public methods.
var lifecycleHooks = map[string]struct{}{
	"beforeCreate":    {},
	"created":         {},
	"beforeMount":     {},
	"mounted":         {},
	"beforeUpdate":    {},
	"updated":         {},
	"activated":       {},
	"deactivated":     {},
	"beforeDestroy":   {},
	"destroyed":       {},
	"beforeUnmount":   {},
	"unmounted":       {},
	"errorCaptured":   {},
	"renderTracked":   {},
	"renderTriggered": {},
	"serverPrefetch":  {},
	"render":          {},
	"renderError":     {},
	"setup":           {},
}

// injectionDecorators mark properties that are not component data.
var injectionDecorators = map[string]struct{}{
	"Inject":          {},
	"InjectReactive":  {},
	"Provide":         {},
	"ProvideReactive": {},
	"Ref":             {},
	"State":           {},
	"Getter":          {},
	"Action":          {},
	"Mutation":        {},
}

// nativeTypes maps constructor names used as prop types to type names.
var nativeTypes = map[string]string{
	"String":   "string",
	"Number":   "number",
	"Boolean":  "boolean",
	"Array":    "array",
	"Object":   "object",
	"Function": "function",
	"Symbol":   "symbol",
	"BigInt":   "bigint",
}

// Options configures a ComponentParser.
type Options struct {
	// VueVersion selects the v-model naming regime. Zero means 3.
	VueVersion int
	Logger     *slog.Logger
}

// ComponentInfo is the component level documentation.
type ComponentInfo struct {
	Name        string
	Description string
	Keywords    []entry.Keyword
	Position    syntax.Position
}

// IsComponent reports whether cls is a class component: decorated with
// @Component or @Options, or extending Vue, mixins(...) or Vue.extend(...).
func IsComponent(cls *syntax.ClassDeclaration) bool {
	for _, d := range cls.Decorators {
		if d.Name == "Component" || d.Name == "Options" {
			return true
		}
	}
	super := cls.SuperClass
	return super == "Vue" ||
		strings.HasPrefix(super, "mixins(") ||
		strings.HasPrefix(super, "Mixins(") ||
		strings.HasPrefix(super, "Vue.extend(")
}

// ComponentParser extracts the entries of one class component. Its scope
// lives for the component only.
type ComponentParser struct {
	scope *scope.Scope
	emit  Sink
	opts  Options
	log   *slog.Logger
}

// NewComponentParser returns a parser whose component scope is nested in
// file, so module level constants resolve.
func NewComponentParser(file *scope.Scope, emit Sink, opts Options) *ComponentParser {
	if opts.VueVersion == 0 {
		opts.VueVersion = 3
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger
	}
	return &ComponentParser{
		scope: file.Component(),
		emit:  emit,
		opts:  opts,
		log:   log,
	}
}

// Parse emits the entries of cls in declaration order and returns the
// component level documentation.
func (p *ComponentParser) Parse(cls *syntax.ClassDeclaration) ComponentInfo {
	info := ComponentInfo{Name: cls.Name, Position: cls.Position}
	if d, ok := componentDecorator(cls); ok && len(d.Args) > 0 {
		if opts, ok := d.Args[0].(*syntax.ObjectExpression); ok {
			if name, ok := opts.Get("name"); ok {
				if s, ok := name.(*syntax.StringLiteral); ok {
					info.Name = s.Value
				}
			}
		}
	}

	block := comment.Parse(cls.Doc)
	info.Description = block.Description
	for _, kw := range block.Keywords {
		switch kw.Name {
		case "name":
			info.Name = kw.Description
		case "slot":
			name, desc, _ := strings.Cut(kw.Description, " ")
			if name == "" {
				name = "default"
			}
			p.emit(entry.NewSlotEntry(name, strings.TrimSpace(desc)))
		default:
			info.Keywords = append(info.Keywords, kw)
		}
	}

	for _, member := range cls.Members {
		p.parseMember(member)
	}
	return info
}

func (p *ComponentParser) parseMember(member syntax.Node) {
	switch n := member.(type) {
	case *syntax.ClassProperty:
		p.parseProperty(n)
	case *syntax.MethodDefinition:
		p.parseMethod(n)
	default:
		p.skip(member, "unrecognized member")
	}
}

func (p *ComponentParser) parseProperty(n *syntax.ClassProperty) {
	if n.Static {
		p.skip(n, "static property")
		return
	}
	for _, d := range n.Decorators {
		switch d.Name {
		case "Prop":
			p.parseProp(n, n.Key, d.Args, false)
			return
		case "PropSync":
			p.parsePropSync(n, d)
			return
		case "Model":
			p.parseModel(n, d)
			return
		case "ModelSync":
			p.parseModelSync(n, d)
			return
		case "VModel":
			p.parseVModel(n, d)
			return
		}
		if _, ok := injectionDecorators[d.Name]; ok {
			p.skip(n, "injected property")
			return
		}
	}
	p.dataParser(p.scope).Parse(n, "")
}

func (p *ComponentParser) parseMethod(n *syntax.MethodDefinition) {
	if n.Static {
		p.skip(n, "static method")
		return
	}
	switch n.Kind {
	case syntax.Constructor:
		p.parseBody(n.Body)
		return
	case syntax.Getter:
		p.parseComputed(n)
		return
	case syntax.Setter:
		return
	}

	if n.Name == "data" {
		p.parseBody(n.Body)
		return
	}
	if _, ok := lifecycleHooks[n.Name]; ok {
		p.skip(n, "lifecycle hook")
		return
	}

	if d, ok := syntax.FindDecorator(n.Decorators, "Emit"); ok {
		p.parseEmit(n, d)
	}

	e := entry.NewMethodEntry(n.Name, params(n.Params), n.ReturnType)
	p.finish(e, n)
}

// parseBody walks a constructor or data() body. Variable declarations are
// local to the body; this.<name> assignments and the properties of a
// returned object literal are data.
func (p *ComponentParser) parseBody(body []syntax.Node) {
	local := p.scope.Child()
	data := p.dataParser(local)

	for _, stmt := range body {
		switch n := stmt.(type) {
		case *syntax.VariableDeclaration:
			Declare(local, n, false)
		case *syntax.ExpressionStatement:
			if !data.Parse(n, "") {
				p.skip(n, "not a data declaration")
			}
		case *syntax.ReturnStatement:
			obj, ok := n.Argument.(*syntax.ObjectExpression)
			if !ok {
				continue
			}
			for i := range obj.Properties {
				prop := &obj.Properties[i]
				if prop.Key == "" || prop.Value == nil {
					continue
				}
				data.ParseData(prop, prop.Key, prop.Value, "")
			}
		}
	}
}

func (p *ComponentParser) parseComputed(n *syntax.MethodDefinition) {
	typ := n.ReturnType
	if typ == "" {
		typ = "unknown"
	}

	var deps []string
	seen := make(map[string]struct{})
	for _, m := range thisMemberRe.FindAllStringSubmatch(n.BodySource, -1) {
		if _, ok := seen[m[1]]; ok || strings.HasPrefix(m[1], "$") {
			continue
		}
		seen[m[1]] = struct{}{}
		deps = append(deps, m[1])
	}

	p.finish(entry.NewComputedEntry(n.Name, typ, deps), n)
}

func (p *ComponentParser) parseEmit(n *syntax.MethodDefinition, d syntax.Decorator) {
	name := casing.ToKebabCase(n.Name)
	if len(d.Args) > 0 {
		if s, ok := d.Args[0].(*syntax.StringLiteral); ok && s.Value != "" {
			name = s.Value
		}
	}
	p.finish(entry.NewEventEntry(name, params(n.Params)...), n)
}

func (p *ComponentParser) parseProp(n *syntax.ClassProperty, name string, args []syntax.Expr, describeModel bool) {
	e := entry.NewPropEntry(name, "")
	e.DescribeModel = describeModel

	if len(args) > 0 {
		switch opt := args[0].(type) {
		case *syntax.ObjectExpression:
			if typ, ok := opt.Get("type"); ok {
				e.Type = propType(typ)
			}
			if def, ok := opt.Get("default"); ok {
				e.Default = p.scope.Resolve(def).Raw
			}
			if req, ok := opt.Get("required"); ok {
				if b, ok := req.(*syntax.BooleanLiteral); ok {
					e.Required = b.Value
				}
			}
		default:
			e.Type = propType(opt)
		}
	}
	if e.Type == "" {
		e.Type = n.TypeAnnotation
	}
	if e.Type == "" {
		e.Type = "any"
	}

	p.finish(e, n)
}

// parsePropSync handles @PropSync('name', opts): a prop plus its
// update:name event.
func (p *ComponentParser) parsePropSync(n *syntax.ClassProperty, d syntax.Decorator) {
	name, rest := stringArg(d.Args)
	if name == "" {
		p.skip(n, "PropSync without a prop name")
		return
	}
	p.parseProp(n, name, rest, false)
	p.finish(entry.NewEventEntry("update:"+name), n)
}

// parseModel handles @Model('event', opts) on the bound prop.
func (p *ComponentParser) parseModel(n *syntax.ClassProperty, d syntax.Decorator) {
	event, rest := stringArg(d.Args)
	if event == "" {
		_, event = entry.DefaultModel(p.opts.VueVersion)
	}
	p.finish(entry.NewModelEntry(n.Key, event), n)
	p.parseProp(n, n.Key, rest, true)
}

// parseModelSync handles @ModelSync('prop', 'event', opts).
func (p *ComponentParser) parseModelSync(n *syntax.ClassProperty, d syntax.Decorator) {
	prop, rest := stringArg(d.Args)
	event, rest := stringArg(rest)
	if prop == "" {
		p.skip(n, "ModelSync without a prop name")
		return
	}
	p.finish(entry.NewModelEntry(prop, event), n)
	p.parseProp(n, prop, rest, true)
}

// parseVModel handles @VModel(opts), which binds the default v-model
// prop of the configured framework version.
func (p *ComponentParser) parseVModel(n *syntax.ClassProperty, d syntax.Decorator) {
	prop, event := entry.DefaultModel(p.opts.VueVersion)
	p.finish(entry.NewModelEntry(prop, event), n)
	p.parseProp(n, prop, d.Args, true)
}

// finish merges the node comment, applies the accessibility modifier and
// emits e.
func (p *ComponentParser) finish(e entry.Entry, node syntax.Node) {
	comment.Merge(e, node.LeadingComment())
	m := e.Metadata()
	if strings.HasPrefix(e.Identifier(), "#") {
		m.Visibility = entry.Private
	}
	if v, ok := accessibility(node); ok {
		m.Visibility = v
	}
	p.log.Debug("entry",
		"kind", e.Kind(),
		"name", e.Identifier(),
		"line", node.Pos().Line,
	)
	p.emit(e)
}

func (p *ComponentParser) dataParser(s *scope.Scope) *ClassDataParser {
	return &ClassDataParser{DataParser{Scope: s, Emit: p.emit, Log: p.log}}
}

func (p *ComponentParser) skip(node syntax.Node, reason string) {
	p.log.Debug("skipping node", "reason", reason, "line", node.Pos().Line)
}

// Declare records the literal values of a variable declaration in s.
func Declare(s *scope.Scope, n *syntax.VariableDeclaration, global bool) {
	for _, d := range n.Declarators {
		if d.Name == "" {
			continue
		}
		s.Set(d.Name, d.Value, s.Resolve(d.Value), global)
	}
}

func componentDecorator(cls *syntax.ClassDeclaration) (syntax.Decorator, bool) {
	if d, ok := syntax.FindDecorator(cls.Decorators, "Component"); ok {
		return d, true
	}
	return syntax.FindDecorator(cls.Decorators, "Options")
}

// stringArg pops a leading string literal argument.
func stringArg(args []syntax.Expr) (string, []syntax.Expr) {
	if len(args) == 0 {
		return "", nil
	}
	if s, ok := args[0].(*syntax.StringLiteral); ok {
		return s.Value, args[1:]
	}
	return "", args
}

// propType names the type described by a prop "type" option.
func propType(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.Identifier:
		if t, ok := nativeTypes[e.Name]; ok {
			return t
		}
		return e.Name
	case *syntax.ArrayExpression:
		var types []string
		for _, el := range e.Elements {
			if t := propType(el); t != "" {
				types = append(types, t)
			}
		}
		return strings.Join(types, " | ")
	case *syntax.OtherExpression:
		if i := strings.Index(e.Raw, "PropType<"); i >= 0 {
			inner := e.Raw[i+len("PropType<"):]
			if j := strings.LastIndex(inner, ">"); j >= 0 {
				return strings.TrimSpace(inner[:j])
			}
		}
	}
	return ""
}

func params(in []syntax.Param) []entry.Param {
	if len(in) == 0 {
		return nil
	}
	out := make([]entry.Param, len(in))
	for i, p := range in {
		out[i] = entry.Param{Name: p.Name, Type: p.Type, Rest: p.Rest}
		if p.Default != nil {
			out[i].Default = p.Default.Source()
		}
	}
	return out
}
