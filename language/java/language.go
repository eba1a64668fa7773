// Package javalang renders descriptor units as Java source files.
//
// The language is registered as "java":
//
//	jgen generate --lang java --env env/jakarta.yaml ./descriptors
//
// Each unit becomes one file, <package path>/<Name>.java, where Name is the unit's
// name or its public type's name.
package javalang

import (
	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/java"
	"github.com/rlch/jgen/language"
	"github.com/rlch/jgen/output"
	"github.com/rlch/jgen/transform"
)

// Language implements language.Language for Java.
type Language struct{}

var _ language.Language = (*Language)(nil)

// New creates a Java language generator.
func New() *Language {
	return &Language{}
}

// Name returns "java".
func (l *Language) Name() string {
	return "java"
}

// Generate renders every unit. Units dropped by the transformer produce no file.
func (l *Language) Generate(ctx *language.GenerateContext) ([]*output.File, error) {
	units, err := l.units(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]*output.File, 0, len(units))

	for _, u := range units {
		jctx := jgen.NewContext(ctx.Options()...)

		src, err := java.Render(jctx, u)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering unit in package %q", u.Package())
		}

		name, err := u.FileName(jctx)
		if err != nil {
			return nil, errors.WithHintf(err, "name the unit or declare a public type in package %q", u.Package())
		}

		files = append(files, &output.File{Package: u.Package(), Name: name, Content: []byte(src)})
	}

	return files, nil
}

// UnitImports is the outcome of the import-collecting pass for one unit.
type UnitImports struct {
	Package       string
	File          string
	Imports       []string
	StaticImports []string
}

// Imports runs only the import-collecting pass of every unit.
func (l *Language) Imports(ctx *language.GenerateContext) ([]*UnitImports, error) {
	units, err := l.units(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*UnitImports, 0, len(units))

	for _, u := range units {
		jctx := jgen.NewContext(ctx.Options()...)

		imps, statics, err := u.CollectImports(jctx)
		if err != nil {
			return nil, errors.Wrapf(err, "collecting imports in package %q", u.Package())
		}

		name, _ := u.FileName(jctx)

		out = append(out, &UnitImports{
			Package:       u.Package(),
			File:          name,
			Imports:       imps,
			StaticImports: statics,
		})
	}

	return out, nil
}

func (l *Language) units(ctx *language.GenerateContext) ([]*java.CompilationUnitGenerator, error) {
	units := make([]*java.CompilationUnitGenerator, 0, len(ctx.Units))

	for _, m := range ctx.Units {
		u, err := transform.Unit(m, ctx.Transformer)
		if err != nil {
			return nil, errors.Wrapf(err, "converting unit in package %q", m.Package)
		}

		if u != nil {
			units = append(units, u)
		}
	}

	return units, nil
}

//nolint:gochecknoinits // Registration pattern requires init.
func init() {
	language.Register(New())
}
