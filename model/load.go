package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
	"github.com/rlch/jgen/java"
)

// Parse decodes and validates a descriptor.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(ErrParse, "%v", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Load reads the descriptor at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading descriptor %s", path)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	f.Path = path

	return f, nil
}

// EnvironmentPath returns the descriptor's environment resolved against its directory.
func (f *File) EnvironmentPath() string {
	if f.Environment == "" || filepath.IsAbs(f.Environment) || f.Path == "" {
		return f.Environment
	}

	return filepath.Join(filepath.Dir(f.Path), f.Environment)
}

// Marshal encodes the descriptor.
func (f *File) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(err, "encoding descriptor")
	}

	return data, nil
}

// Validate checks names, kinds, modifiers, references and conditions.
func (f *File) Validate() error {
	v := &validator{}

	for i, u := range f.Units {
		v.unit(fmt.Sprintf("units[%d]", i), u)
	}

	return v.err
}

type validator struct {
	err error
}

func (v *validator) fail(where string, err error) {
	if v.err == nil {
		v.err = &ValidationError{Where: where, Cause: err}
	}
}

func (v *validator) unit(where string, u *Unit) {
	if u == nil {
		v.fail(where, errors.New("empty unit"))

		return
	}

	for i, t := range u.Types {
		v.typ(fmt.Sprintf("%s.types[%d]", where, i), t)
	}
}

func (v *validator) typ(where string, t *Type) {
	if t == nil {
		v.fail(where, errors.New("empty type"))

		return
	}

	v.name(where, t.Name)
	v.when(where, t.When)
	v.modifiers(where, t.Modifiers)
	v.annotations(where, t.Annotations)

	if t.Kind != "" {
		if _, err := java.ParseKind(t.Kind); err != nil {
			v.fail(where, err)
		}
	}

	if t.Extends != "" {
		v.reference(where+".extends", t.Extends)
	}

	for i, ref := range t.Implements {
		v.reference(fmt.Sprintf("%s.implements[%d]", where, i), ref)
	}

	for i, p := range t.Components {
		v.parameter(fmt.Sprintf("%s.components[%d]", where, i), p)
	}

	for i, p := range t.Properties {
		pw := fmt.Sprintf("%s.properties[%d]", where, i)
		v.name(pw, p.Name)
		v.reference(pw, p.Type)
	}

	for i, fd := range t.Fields {
		fw := fmt.Sprintf("%s.fields[%d]", where, i)
		v.name(fw, fd.Name)
		v.reference(fw, fd.Type)
		v.when(fw, fd.When)
		v.modifiers(fw, fd.Modifiers)
		v.annotations(fw, fd.Annotations)
	}

	for i, m := range t.Methods {
		v.method(fmt.Sprintf("%s.methods[%d]", where, i), m)
	}

	for i, nested := range t.Types {
		v.typ(fmt.Sprintf("%s.types[%d]", where, i), nested)
	}
}

func (v *validator) method(where string, m *Method) {
	if !m.Constructor {
		v.name(where, m.Name)
	}

	if m.Returns != "" {
		v.reference(where+".returns", m.Returns)
	}

	v.when(where, m.When)
	v.modifiers(where, m.Modifiers)
	v.annotations(where, m.Annotations)

	for i, p := range m.Parameters {
		v.parameter(fmt.Sprintf("%s.parameters[%d]", where, i), p)
	}

	for i, ref := range m.Throws {
		v.reference(fmt.Sprintf("%s.throws[%d]", where, i), ref)
	}
}

func (v *validator) parameter(where string, p *Parameter) {
	v.name(where, p.Name)
	v.reference(where, p.Type)
	v.when(where, p.When)
	v.annotations(where, p.Annotations)
}

func (v *validator) annotations(where string, anns []*Annotation) {
	for i, a := range anns {
		aw := fmt.Sprintf("%s.annotations[%d]", where, i)
		v.reference(aw, a.Type)
		v.when(aw, a.When)
	}
}

func (v *validator) name(where, name string) {
	if name == "" {
		v.fail(where, jgen.ErrMissingElementName)
	}
}

func (v *validator) modifiers(where string, mods []string) {
	if _, err := java.ParseModifiers(mods...); err != nil {
		v.fail(where, err)
	}
}

// reference checks a type reference. API symbols are checked at generation time.
func (v *validator) reference(where, ref string) {
	if _, _, ok := ParseSymbol(ref); ok {
		return
	}

	if ref == "" {
		v.fail(where, java.ErrMissingType)

		return
	}

	if _, err := jgen.ParseReference(ref); err != nil {
		v.fail(where, err)
	}
}

func (v *validator) when(where, condition string) {
	if err := api.CheckCondition(condition); err != nil {
		v.fail(where+".when", err)
	}
}
