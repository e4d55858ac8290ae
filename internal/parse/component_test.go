package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfansplz/vuedoc-parser/internal/entry"
	"github.com/webfansplz/vuedoc-parser/internal/scope"
	"github.com/webfansplz/vuedoc-parser/internal/syntax"
)

func parseComponent(t *testing.T, file *scope.Scope, cls *syntax.ClassDeclaration, opts Options) (ComponentInfo, []entry.Entry) {
	t.Helper()
	if file == nil {
		file = scope.New()
	}
	var entries []entry.Entry
	info := NewComponentParser(file, Collect(&entries), opts).Parse(cls)
	return info, entries
}

func str(v string) *syntax.StringLiteral {
	return &syntax.StringLiteral{Raw: "'" + v + "'", Value: v}
}

func ident(name string) *syntax.Identifier {
	return &syntax.Identifier{Name: name}
}

func TestIsComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cls  *syntax.ClassDeclaration
		want bool
	}{
		{"decorated", &syntax.ClassDeclaration{Decorators: []syntax.Decorator{{Name: "Component"}}}, true},
		{"options", &syntax.ClassDeclaration{Decorators: []syntax.Decorator{{Name: "Options", Call: true}}}, true},
		{"extends Vue", &syntax.ClassDeclaration{SuperClass: "Vue"}, true},
		{"mixins", &syntax.ClassDeclaration{SuperClass: "mixins(A, B)"}, true},
		{"Vue.extend", &syntax.ClassDeclaration{SuperClass: "Vue.extend({})"}, true},
		{"plain", &syntax.ClassDeclaration{Name: "Helper"}, false},
		{"other base", &syntax.ClassDeclaration{SuperClass: "Base"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsComponent(tt.cls))
		})
	}
}

func TestComponentInfo(t *testing.T) {
	t.Parallel()

	cls := &syntax.ClassDeclaration{
		Name: "MyButton",
		Decorators: []syntax.Decorator{{
			Name: "Component",
			Call: true,
			Args: []syntax.Expr{&syntax.ObjectExpression{
				Raw:        "{ name: 'my-button' }",
				Properties: []syntax.Property{{Key: "name", Value: str("my-button")}},
			}},
		}},
		Doc: "/**\n * A button.\n * @slot default Button label\n * @slot icon\n * @author me\n */",
	}

	info, entries := parseComponent(t, nil, cls, Options{})
	assert.Equal(t, "my-button", info.Name)
	assert.Equal(t, "A button.", info.Description)
	assert.Equal(t, []entry.Keyword{{Name: "author", Description: "me"}}, info.Keywords)

	require.Len(t, entries, 2)
	slot := entries[0].(*entry.SlotEntry)
	assert.Equal(t, "default", slot.Name)
	assert.Equal(t, "Button label", slot.Description)
	assert.Equal(t, "icon", entries[1].Identifier())
}

func TestComponentMembers(t *testing.T) {
	t.Parallel()

	file := scope.New()
	file.Set("DEFAULT_SIZE", nil, scope.Value{Kind: scope.Number, Raw: "12"}, false)

	cls := &syntax.ClassDeclaration{
		Name:       "Counter",
		SuperClass: "Vue",
		Members: []syntax.Node{
			&syntax.ClassProperty{
				Key:            "size",
				TypeAnnotation: "number",
				Readonly:       true,
				Decorators: []syntax.Decorator{{Name: "Prop", Call: true, Args: []syntax.Expr{
					&syntax.ObjectExpression{Properties: []syntax.Property{
						{Key: "type", Value: ident("Number")},
						{Key: "default", Value: ident("DEFAULT_SIZE")},
						{Key: "required", Value: &syntax.BooleanLiteral{Value: true}},
					}},
				}}},
			},
			&syntax.ClassProperty{Key: "count", Value: &syntax.NumberLiteral{Raw: "0"}},
			&syntax.ClassProperty{Key: "store", Decorators: []syntax.Decorator{{Name: "Inject", Call: true}}},
			&syntax.ClassProperty{Key: "instances", Static: true, Value: &syntax.NumberLiteral{Raw: "0"}},
			&syntax.MethodDefinition{
				Kind: syntax.Constructor,
				Name: "constructor",
				Body: []syntax.Node{
					&syntax.VariableDeclaration{Keyword: "const", Declarators: []syntax.Declarator{
						{Name: "start", Value: &syntax.NumberLiteral{Raw: "5"}},
					}},
					thisAssign("total", ident("start")),
					&syntax.ExpressionStatement{Expression: &syntax.CallExpression{Raw: "console.log(1)"}},
				},
			},
			&syntax.MethodDefinition{
				Kind:       syntax.Getter,
				Name:       "double",
				ReturnType: "number",
				BodySource: "{ return this.count * 2 + this.count + this.$refs.x }",
			},
			&syntax.MethodDefinition{Kind: syntax.Setter, Name: "double"},
			&syntax.MethodDefinition{Name: "mounted"},
			&syntax.MethodDefinition{
				Name:          "addToCount",
				Params:        []syntax.Param{{Name: "n", Type: "number"}},
				Decorators:    []syntax.Decorator{{Name: "Emit", Call: true}},
				Accessibility: "public",
				Doc:           "/** Adds n. */",
			},
			&syntax.MethodDefinition{
				Name:       "reset",
				Decorators: []syntax.Decorator{{Name: "Emit", Call: true, Args: []syntax.Expr{str("reset-all")}}},
			},
			&syntax.MethodDefinition{Name: "helper", Accessibility: "private"},
			&syntax.Unknown{Type: "index_signature"},
		},
	}

	_, entries := parseComponent(t, file, cls, Options{})

	var kinds []entry.Kind
	var names []string
	for _, e := range entries {
		kinds = append(kinds, e.Kind())
		names = append(names, e.Identifier())
	}
	assert.Equal(t, []entry.Kind{
		entry.KindProp,
		entry.KindData,
		entry.KindData,
		entry.KindComputed,
		entry.KindEvent,
		entry.KindMethod,
		entry.KindEvent,
		entry.KindMethod,
		entry.KindMethod,
	}, kinds)
	assert.Equal(t, []string{"size", "count", "total", "double", "add-to-count", "addToCount", "reset-all", "reset", "helper"}, names)

	prop := entries[0].(*entry.PropEntry)
	assert.Equal(t, "number", prop.Type)
	assert.Equal(t, "12", prop.Default)
	assert.True(t, prop.Required)

	total := entries[2].(*entry.DataEntry)
	assert.Equal(t, "5", total.InitialValue)

	computed := entries[3].(*entry.ComputedEntry)
	assert.Equal(t, "number", computed.Type)
	assert.Equal(t, []string{"count"}, computed.Dependencies)

	event := entries[4].(*entry.EventEntry)
	assert.Equal(t, "Adds n.", event.Description)
	assert.Equal(t, []entry.Param{{Name: "n", Type: "number"}}, event.Arguments)

	method := entries[5].(*entry.MethodEntry)
	assert.Equal(t, []string{"addToCount(n: number): void"}, method.Syntax)
	assert.Equal(t, "Adds n.", method.Description)

	assert.Equal(t, entry.Private, entries[8].Metadata().Visibility)
}

func TestComponentDataMethod(t *testing.T) {
	t.Parallel()

	cls := &syntax.ClassDeclaration{
		Name:       "Form",
		SuperClass: "Vue",
		Members: []syntax.Node{
			&syntax.MethodDefinition{
				Name: "data",
				Body: []syntax.Node{
					&syntax.VariableDeclaration{Keyword: "const", Declarators: []syntax.Declarator{
						{Name: "initial", Value: str("draft")},
					}},
					&syntax.ReturnStatement{Argument: &syntax.ObjectExpression{
						Raw: "{ state: initial, touched: false }",
						Properties: []syntax.Property{
							{Key: "state", Value: ident("initial"), Doc: "/** Form state */"},
							{Key: "touched", Value: &syntax.BooleanLiteral{}},
						},
					}},
				},
			},
		},
	}

	_, entries := parseComponent(t, nil, cls, Options{})
	require.Len(t, entries, 2)

	state := entries[0].(*entry.DataEntry)
	assert.Equal(t, "state", state.Name)
	assert.Equal(t, "'draft'", state.InitialValue)
	assert.Equal(t, "string", state.Type)
	assert.Equal(t, "Form state", state.Description)

	touched := entries[1].(*entry.DataEntry)
	assert.Equal(t, "false", touched.InitialValue)
	assert.Equal(t, "boolean", touched.Type)
}

func TestComponentModels(t *testing.T) {
	t.Parallel()

	cls := &syntax.ClassDeclaration{
		Name:       "Check",
		Decorators: []syntax.Decorator{{Name: "Component"}},
		Members: []syntax.Node{
			&syntax.ClassProperty{
				Key:            "checked",
				TypeAnnotation: "boolean",
				Doc:            "/** @category forms */",
				Decorators: []syntax.Decorator{{Name: "Model", Call: true, Args: []syntax.Expr{
					str("change"), &syntax.ObjectExpression{Properties: []syntax.Property{{Key: "type", Value: ident("Boolean")}}},
				}}},
			},
			&syntax.ClassProperty{
				Key: "localValue",
				Decorators: []syntax.Decorator{{Name: "ModelSync", Call: true, Args: []syntax.Expr{
					str("selectedItem"), str("select"), ident("String"),
				}}},
			},
			&syntax.ClassProperty{
				Key:            "text",
				TypeAnnotation: "string",
				Decorators:     []syntax.Decorator{{Name: "VModel", Call: true}},
			},
			&syntax.ClassProperty{
				Key: "syncedName",
				Decorators: []syntax.Decorator{{Name: "PropSync", Call: true, Args: []syntax.Expr{
					str("name"), &syntax.ArrayExpression{Elements: []syntax.Expr{ident("String"), ident("Number")}},
				}}},
			},
		},
	}

	_, entries := parseComponent(t, nil, cls, Options{VueVersion: 2})
	require.Len(t, entries, 8)

	model := entries[0].(*entry.ModelEntry)
	assert.Equal(t, "checked", model.Name)
	assert.Equal(t, "checked", model.Prop)
	assert.Equal(t, "change", model.Event)
	assert.Equal(t, "forms", model.Category)

	prop := entries[1].(*entry.PropEntry)
	assert.Equal(t, "checked", prop.Name)
	assert.Equal(t, "boolean", prop.Type)
	assert.True(t, prop.DescribeModel)

	sync := entries[2].(*entry.ModelEntry)
	assert.Equal(t, "selectedItem", sync.Name)
	assert.Equal(t, "selected-item", sync.Prop)
	assert.Equal(t, "select", sync.Event)
	assert.Equal(t, "string", entries[3].(*entry.PropEntry).Type)
	assert.Equal(t, "selected-item", entries[3].Identifier())

	vmodel := entries[4].(*entry.ModelEntry)
	assert.Equal(t, "value", vmodel.Prop)
	assert.Equal(t, "input", vmodel.Event)
	assert.Equal(t, "string", entries[5].(*entry.PropEntry).Type)

	synced := entries[6].(*entry.PropEntry)
	assert.Equal(t, "name", synced.Name)
	assert.Equal(t, "string | number", synced.Type)
	assert.Equal(t, "update:name", entries[7].Identifier())
}

func TestVModelVue3(t *testing.T) {
	t.Parallel()

	cls := &syntax.ClassDeclaration{
		Name:       "Input",
		SuperClass: "Vue",
		Members: []syntax.Node{
			&syntax.ClassProperty{Key: "text", Decorators: []syntax.Decorator{{Name: "VModel"}}},
		},
	}

	_, entries := parseComponent(t, nil, cls, Options{VueVersion: 3})
	require.Len(t, entries, 2)
	model := entries[0].(*entry.ModelEntry)
	assert.Equal(t, "modelValue", model.Name)
	assert.Equal(t, "model-value", model.Prop)
	assert.Equal(t, "update:modelValue", model.Event)
	assert.Equal(t, "model-value", entries[1].Identifier())
	assert.Equal(t, "any", entries[1].(*entry.PropEntry).Type)
}

func TestPropType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", propType(ident("String")))
	assert.Equal(t, "User", propType(ident("User")))
	assert.Equal(t, "boolean | array", propType(&syntax.ArrayExpression{Elements: []syntax.Expr{ident("Boolean"), ident("Array")}}))
	assert.Equal(t, "Item[]", propType(&syntax.OtherExpression{Type: "as_expression", Raw: "Array as PropType<Item[]>"}))
	assert.Empty(t, propType(&syntax.NumberLiteral{Raw: "1"}))
}
