package transform_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/env"
	"github.com/rlch/jgen/java"
	"github.com/rlch/jgen/model"
	"github.com/rlch/jgen/transform"
)

const descriptor = `
units:
  - package: com.example
    header: ["Generated."]
    types:
      - name: EchoService
        modifiers: [public]
        annotations:
          - type: $jaxws.WebService
            values:
              - name: name
                string: Echo
          - type: java.lang.Deprecated
        fields:
          - name: prefix
            type: java.lang.String
            modifiers: [private, final]
            initializer: '"> "'
        methods:
          - constructor: true
            modifiers: [public]
          - name: echo
            modifiers: [public]
            returns: java.lang.String
            parameters:
              - name: message
                type: java.lang.String
            body: |
              return prefix + message;
          - name: pingAsync
            modifiers: [public]
            returns: java.util.concurrent.Future<?>
            when: supports("jaxws", "async")
            body: return null;
`

func snapshot(t *testing.T, version string) *env.Snapshot {
	t.Helper()

	r := env.NewRegistry()
	r.MustRegister(env.Definition{
		Kind:     "jaxws",
		Versions: "< 3.0",
		Symbols:  map[string]string{"WebService": "javax.jws.WebService"},
	})
	r.MustRegister(env.Definition{
		Kind:     "jaxws",
		Versions: ">= 3.0",
		Symbols:  map[string]string{"WebService": "jakarta.jws.WebService"},
		Features: []string{"async"},
	})

	s, err := env.NewSnapshot(r, env.WithDependency("jaxws", version))
	require.NoError(t, err)

	return s
}

func parse(t *testing.T) *model.Unit {
	t.Helper()

	f, err := model.Parse([]byte(descriptor))
	require.NoError(t, err)

	return f.Units[0]
}

func render(t *testing.T, g *java.CompilationUnitGenerator, version string) string {
	t.Helper()

	got, err := java.Render(jgen.NewContext(jgen.WithEnvironment(snapshot(t, version))), g)
	require.NoError(t, err)

	return got
}

func TestUnit_Default(t *testing.T) {
	t.Parallel()

	g, err := transform.Unit(parse(t), nil)
	require.NoError(t, err)

	want := strings.Join([]string{
		"/*",
		" * Generated.",
		" */",
		"package com.example;",
		"",
		"import javax.jws.WebService;",
		"",
		"@Deprecated",
		`@WebService(name = "Echo")`,
		"public class EchoService {",
		`private final String prefix = "> ";`,
		"",
		"public EchoService() {",
		"}",
		"",
		"public String echo(String message) {",
		"return prefix + message;",
		"}",
		"}",
		"",
	}, "\n")

	if diff := cmp.Diff(want, render(t, g, "2.3.1")); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestUnit_PerEnvironment(t *testing.T) {
	t.Parallel()

	g, err := transform.Unit(parse(t), nil)
	require.NoError(t, err)

	got := render(t, g, "4.0.0")

	assert.Contains(t, got, "import jakarta.jws.WebService;")
	assert.Contains(t, got, "import java.util.concurrent.Future;")
	assert.Contains(t, got, "public Future<?> pingAsync() {")
}

func TestUnit_RoundTripIsIdempotent(t *testing.T) {
	t.Parallel()

	m := parse(t)

	viaNil, err := transform.Unit(m, nil)
	require.NoError(t, err)

	viaDefault, err := transform.Unit(m, transform.Default{})
	require.NoError(t, err)

	first := render(t, viaNil, "4.0.0")
	assert.Equal(t, first, render(t, viaDefault, "4.0.0"))
	assert.Equal(t, first, render(t, viaNil, "4.0.0"))

	again, err := transform.Unit(m, nil)
	require.NoError(t, err)
	assert.Equal(t, first, render(t, again, "4.0.0"))
}

type dropDeprecated struct {
	transform.Default
}

func (dropDeprecated) Annotation(
	in *transform.Input[*model.Annotation, *java.AnnotationGenerator],
) (*java.AnnotationGenerator, error) {
	if in.Model().Type == "java.lang.Deprecated" {
		return nil, nil
	}

	return in.RequestDefault()
}

func (dropDeprecated) Method(in *transform.Input[*model.Method, *java.MethodGenerator]) (*java.MethodGenerator, error) {
	g, err := in.RequestDefault()
	if err != nil {
		return nil, err
	}

	if in.Model().Name == "echo" {
		g.WithName("shout").WithBody(java.Return(java.Call(java.Raw("message"), "toUpperCase")))
	}

	return g, nil
}

func (dropDeprecated) Import(in *transform.Input[string, string]) (string, error) {
	if strings.HasPrefix(in.Model(), "java.awt.") {
		return "", nil
	}

	return in.RequestDefault()
}

func (dropDeprecated) StaticImport(in *transform.Input[string, string]) (string, error) {
	if strings.HasPrefix(in.Model(), "java.awt.") {
		return "", nil
	}

	return in.RequestDefault()
}

func TestUnit_Interception(t *testing.T) {
	t.Parallel()

	m := parse(t)
	m.Imports = []string{"java.awt.List", "java.util.List"}
	m.StaticImports = []string{"java.awt.Color.RED", "java.util.Objects.requireNonNull"}

	g, err := transform.Unit(m, dropDeprecated{})
	require.NoError(t, err)

	got := render(t, g, "2.3.1")

	assert.NotContains(t, got, "@Deprecated")
	assert.NotContains(t, got, "java.awt")
	assert.Contains(t, got, "import java.util.List;")
	assert.Contains(t, got, "import static java.util.Objects.requireNonNull;")
	assert.Contains(t, got, "public String shout(String message) {\nreturn message.toUpperCase();\n}")
}

type replaceTypes struct {
	transform.Default

	seen map[string]int
}

func (r *replaceTypes) Type(in *transform.Input[*model.Type, *java.TypeGenerator]) (*java.TypeGenerator, error) {
	r.seen["type"]++

	return java.InterfaceDecl(in.Model().Name).WithModifiers(java.Public), nil
}

func (r *replaceTypes) Field(in *transform.Input[*model.Field, *java.FieldGenerator]) (*java.FieldGenerator, error) {
	r.seen["field"]++

	return in.RequestDefault()
}

func TestUnit_DefaultIsLazy(t *testing.T) {
	t.Parallel()

	r := &replaceTypes{seen: map[string]int{}}

	g, err := transform.Unit(parse(t), r)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"type": 1}, r.seen)
	assert.Contains(t, render(t, g, "2.3.1"), "public interface EchoService {\n}")
}

type dropUnit struct {
	transform.Default
}

func (dropUnit) Unit(*transform.Input[*model.Unit, *java.CompilationUnitGenerator]) (*java.CompilationUnitGenerator, error) {
	return nil, nil
}

func TestUnits(t *testing.T) {
	t.Parallel()

	f, err := model.Parse([]byte(descriptor))
	require.NoError(t, err)

	units, err := transform.Units(f, nil)
	require.NoError(t, err)
	assert.Len(t, units, 1)

	units, err = transform.Units(f, dropUnit{})
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestInput_RequestDefaultOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	tr := &countingTransformer{calls: &calls}

	_, err := transform.Unit(parse(t), tr)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

type countingTransformer struct {
	transform.Default

	calls *int
}

func (c *countingTransformer) Package(in *transform.Input[string, string]) (string, error) {
	*c.calls++

	first, err := in.RequestDefault()
	if err != nil {
		return "", err
	}

	second, err := in.RequestDefault()
	if err != nil {
		return "", err
	}

	if first != second {
		return "", nil
	}

	return "renamed." + first, nil
}
