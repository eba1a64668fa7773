// Package model describes existing Java declarations in YAML descriptors.
//
// A descriptor lists compilation units. Names and types written as "$kind.Symbol"
// denote API symbols resolved against the environment, "when" holds a condition
// over the environment (see api.When), and raw bodies, initializers and values may
// contain {{fqn}} placeholders.
//
//	units:
//	  - package: com.example
//	    types:
//	      - kind: class
//	        name: EchoService
//	        modifiers: [public]
//	        annotations:
//	          - type: $jaxws.WebService
//	            values:
//	              - name: name
//	                string: Echo
package model

// File is a parsed descriptor file.
type File struct {
	// Environment is an optional environment snapshot path, relative to the file.
	Environment string `yaml:"environment,omitempty"`

	Units []*Unit `yaml:"units"`

	// Path is the file the descriptor was loaded from.
	Path string `yaml:"-"`
}

// Unit is a compilation unit.
type Unit struct {
	// Name overrides the file name; by default the main type names the file.
	Name          string   `yaml:"name,omitempty"`
	Package       string   `yaml:"package,omitempty"`
	Header        []string `yaml:"header,omitempty"`
	Imports       []string `yaml:"imports,omitempty"`
	StaticImports []string `yaml:"staticImports,omitempty"`
	Types         []*Type  `yaml:"types,omitempty"`
	Footer        []string `yaml:"footer,omitempty"`
}

// Type is a class, interface, enum, record or annotation type.
type Type struct {
	Kind           string           `yaml:"kind,omitempty"`
	Name           string           `yaml:"name"`
	Doc            []string         `yaml:"doc,omitempty"`
	Modifiers      []string         `yaml:"modifiers,omitempty"`
	Annotations    []*Annotation    `yaml:"annotations,omitempty"`
	TypeParameters []*TypeParameter `yaml:"typeParameters,omitempty"`
	Extends        string           `yaml:"extends,omitempty"`
	Implements     []string         `yaml:"implements,omitempty"`
	Constants      []*Constant      `yaml:"constants,omitempty"`
	Components     []*Parameter     `yaml:"components,omitempty"`
	Properties     []*Property      `yaml:"properties,omitempty"`
	Fields         []*Field         `yaml:"fields,omitempty"`
	Methods        []*Method        `yaml:"methods,omitempty"`
	Types          []*Type          `yaml:"types,omitempty"`
	When           string           `yaml:"when,omitempty"`
}

// TypeParameter is a generic type parameter.
type TypeParameter struct {
	Name   string   `yaml:"name"`
	Bounds []string `yaml:"bounds,omitempty"`
}

// Constant is an enum constant. Args are raw expressions.
type Constant struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

// Property is a bean property expanded into a field with accessors.
type Property struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	ReadOnly bool   `yaml:"readOnly,omitempty"`
}

// Field is a field declaration.
type Field struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type"`
	Doc         []string      `yaml:"doc,omitempty"`
	Modifiers   []string      `yaml:"modifiers,omitempty"`
	Annotations []*Annotation `yaml:"annotations,omitempty"`
	Initializer string        `yaml:"initializer,omitempty"`
	When        string        `yaml:"when,omitempty"`
}

// Method is a method or constructor declaration. A nil Body declares a method
// without body.
type Method struct {
	Name           string           `yaml:"name,omitempty"`
	Constructor    bool             `yaml:"constructor,omitempty"`
	Doc            []string         `yaml:"doc,omitempty"`
	Modifiers      []string         `yaml:"modifiers,omitempty"`
	Annotations    []*Annotation    `yaml:"annotations,omitempty"`
	TypeParameters []*TypeParameter `yaml:"typeParameters,omitempty"`
	Returns        string           `yaml:"returns,omitempty"`
	Parameters     []*Parameter     `yaml:"parameters,omitempty"`
	Throws         []string         `yaml:"throws,omitempty"`
	Default        string           `yaml:"default,omitempty"`
	Body           *string          `yaml:"body,omitempty"`
	When           string           `yaml:"when,omitempty"`
}

// Parameter is a method parameter or record component.
type Parameter struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type"`
	Final       bool          `yaml:"final,omitempty"`
	Varargs     bool          `yaml:"varargs,omitempty"`
	Annotations []*Annotation `yaml:"annotations,omitempty"`
	When        string        `yaml:"when,omitempty"`
}

// Annotation is an annotation usage.
type Annotation struct {
	Type   string   `yaml:"type"`
	Values []*Value `yaml:"values,omitempty"`
	When   string   `yaml:"when,omitempty"`
}

// Value is an annotation element value: either a raw expression or a string literal.
type Value struct {
	Name   string  `yaml:"name"`
	Expr   string  `yaml:"expr,omitempty"`
	String *string `yaml:"string,omitempty"`
}
