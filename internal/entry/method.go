package entry

import "strings"

// ComputedEntry documents a computed (getter) value.
type ComputedEntry struct {
	Meta
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// NewComputedEntry returns a public computed entry.
func NewComputedEntry(name, typ string, deps []string) *ComputedEntry {
	return &ComputedEntry{
		Meta:         newMeta(),
		Name:         name,
		Type:         typ,
		Dependencies: deps,
	}
}

func (e *ComputedEntry) Kind() Kind         { return KindComputed }
func (e *ComputedEntry) Identifier() string { return e.Name }

// HandleKeyword consumes @type.
func (e *ComputedEntry) HandleKeyword(kw Keyword) bool {
	if kw.Name == "type" {
		if typ, _ := splitType(kw.Description); typ != "" {
			e.Type = typ
		}
		return true
	}
	return false
}

// Returns describes a method result.
type Returns struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// MethodEntry documents a public method of the component.
type MethodEntry struct {
	Meta
	Name    string   `json:"name"`
	Params  []Param  `json:"params,omitempty"`
	Returns Returns  `json:"returns"`
	Syntax  []string `json:"syntax"`
}

// NewMethodEntry returns a public method entry. The syntax line is derived
// from the name, params and return type.
func NewMethodEntry(name string, params []Param, returnType string) *MethodEntry {
	if returnType == "" {
		returnType = "void"
	}
	e := &MethodEntry{
		Meta:    newMeta(),
		Name:    name,
		Params:  params,
		Returns: Returns{Type: returnType},
	}
	e.Syntax = []string{e.signature()}
	return e
}

func (e *MethodEntry) Kind() Kind         { return KindMethod }
func (e *MethodEntry) Identifier() string { return e.Name }

// HandleKeyword consumes @param, @returns and @syntax.
func (e *MethodEntry) HandleKeyword(kw Keyword) bool {
	switch kw.Name {
	case "param", "arg", "argument":
		e.Params = mergeParam(e.Params, parseParam(kw.Description))
		e.Syntax = []string{e.signature()}
		return true
	case "returns", "return":
		typ, rest := splitType(kw.Description)
		if typ != "" {
			e.Returns.Type = typ
		}
		e.Returns.Description = rest
		e.Syntax = []string{e.signature()}
		return true
	case "syntax":
		e.Syntax = append(e.Syntax, kw.Description)
		return true
	}
	return false
}

func (e *MethodEntry) signature() string {
	args := make([]string, len(e.Params))
	for i, p := range e.Params {
		arg := p.Name
		if p.Rest {
			arg = "..." + arg
		}
		if p.Type != "" {
			arg += ": " + p.Type
		}
		if p.Default != "" {
			arg += " = " + p.Default
		}
		args[i] = arg
	}
	return e.Name + "(" + strings.Join(args, ", ") + "): " + e.Returns.Type
}

// splitType splits a leading "{Type}" from text.
func splitType(text string) (typ, rest string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		return "", text
	}
	depth := 0
	for i, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[1:i]), strings.TrimSpace(text[i+1:])
			}
		}
	}
	return "", text
}

// parseParam reads "{Type} name description", "{Type} [name=default]
// description" or "name - description".
func parseParam(text string) Param {
	typ, rest := splitType(text)
	p := Param{Type: typ}

	name, desc, _ := strings.Cut(rest, " ")
	desc = strings.TrimSpace(desc)
	desc = strings.TrimSpace(strings.TrimPrefix(desc, "-"))

	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		name = name[1 : len(name)-1]
		if n, def, ok := strings.Cut(name, "="); ok {
			name, p.Default = n, def
		}
	}
	if strings.HasPrefix(name, "...") {
		name = strings.TrimPrefix(name, "...")
		p.Rest = true
	}

	p.Name = name
	p.Description = desc
	return p
}

// mergeParam updates the param named like p, or appends p.
func mergeParam(params []Param, p Param) []Param {
	if p.Name == "" {
		return params
	}
	for i := range params {
		if params[i].Name != p.Name {
			continue
		}
		if p.Type != "" {
			params[i].Type = p.Type
		}
		if p.Description != "" {
			params[i].Description = p.Description
		}
		if p.Default != "" {
			params[i].Default = p.Default
		}
		params[i].Rest = params[i].Rest || p.Rest
		return params
	}
	return append(params, p)
}
