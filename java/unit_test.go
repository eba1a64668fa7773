package java_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/java"
)

func render(t *testing.T, g java.Generator, opts ...jgen.Option) string {
	t.Helper()

	got, err := java.Render(jgen.NewContext(opts...), g)
	require.NoError(t, err)

	return got
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestCompilationUnit_ImportsAndAnnotationOrder(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(
		java.ClassDecl("T").
			WithModifiers(java.Public).
			WithAnnotation(
				java.Annotation("p.BarBaz").WithValue("value", java.Literal("1")),
				java.Annotation("p.Foo"),
			).
			AddField(java.Field("java.util.List<java.lang.String>", "names").WithModifiers(java.Private)),
	)

	want := lines(
		"package p;",
		"",
		"import java.util.List;",
		"",
		"@Foo",
		"@BarBaz(1)",
		"public class T {",
		"private List<String> names;",
		"}",
		"",
	)

	assert.Equal(t, want, render(t, unit))
}

func TestCompilationUnit_NestedTypeIsSimple(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(
		java.ClassDecl("T").
			WithModifiers(java.Public).
			AddMethod(java.Method("use").
				WithParameter(java.Parameter("p.T.Helper", "h")).
				WithStatements(java.Statement(java.Call(java.Raw("h"), "run")))).
			AddType(java.ClassDecl("Helper")),
	)

	want := lines(
		"package p;",
		"",
		"public class T {",
		"void use(Helper h) {",
		"h.run();",
		"}",
		"",
		"class Helper {",
		"}",
		"}",
		"",
	)

	assert.Equal(t, want, render(t, unit))
}

func TestCompilationUnit_UnrelatedSameNameIsQualified(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(
		java.ClassDecl("T").
			WithModifiers(java.Public).
			AddField(java.Field("other.Helper", "external").WithModifiers(java.Private)).
			AddMethod(java.Method("use").
				WithParameter(java.Parameter("p.T.Helper", "h")).
				WithStatements(java.Statement(java.Call(java.Raw("h"), "run")))).
			AddType(java.ClassDecl("Helper")),
	)

	got := render(t, unit)

	assert.Contains(t, got, "private other.Helper external;")
	assert.Contains(t, got, "void use(Helper h) {")
	assert.NotContains(t, got, "import")
}

func TestCompilationUnit_UnrelatedSameNameOutsideBody(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(
		java.ClassDecl("T").
			WithModifiers(java.Public).
			WithAnnotation(java.Annotation("other.Helper")).
			AddType(java.ClassDecl("Helper")),
	)

	got := render(t, unit)

	assert.True(t, strings.HasPrefix(got, "package p;\n\n@other.Helper\n"), got)
}

func TestCompilationUnit_Deterministic(t *testing.T) {
	t.Parallel()

	calls := 0
	unit := java.CompilationUnit("p").AddType(
		java.ClassDecl("T").
			WithModifiers(java.Public).
			WithPreProcessor(func(self *java.TypeGenerator, _ *jgen.Context) error {
				calls++
				self.AddField(java.Field("java.util.Map<java.lang.String, java.util.Set<a.B>>", "index"))

				return nil
			}),
	)

	ctx := jgen.NewContext()

	first, err := java.Render(ctx, unit)
	require.NoError(t, err)

	second, err := java.Render(ctx, unit)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(second, "Map<String, Set<B>> index;"))
	assert.Contains(t, second, lines("import a.B;", "import java.util.Map;", "import java.util.Set;"))
	assert.Empty(t, unit.Types()[0].Fields(), "pre-processor output must not leak into the caller's tree")
	assert.Equal(t, 2, calls, "pre-processors run once per generation")
}

func TestCompilationUnit_PreProcessorEditsDoNotLeak(t *testing.T) {
	t.Parallel()

	field := java.Field("int", "count")
	typ := java.ClassDecl("T").
		AddField(field).
		WithPreProcessor(func(self *java.TypeGenerator, _ *jgen.Context) error {
			for _, f := range self.Fields() {
				f.AddModifiers(java.Final)
			}

			return nil
		})

	got := render(t, java.CompilationUnit("p").AddType(typ))

	assert.Contains(t, got, "final int count;")
	assert.Equal(t, java.Modifiers(0), field.Modifiers())
}

func TestCompilationUnit_StaticImports(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").
		WithStaticImport("org.junit.Assert.*").
		AddType(java.ClassDecl("T").
			AddMethod(java.Method("check").
				WithStatements(
					java.Statement(java.StaticCall("org.junit.Assert.assertTrue", java.Bool(true))),
					java.Statement(java.StaticCall("java.util.Objects.requireNonNull", java.Raw("this"))),
				)))

	want := lines(
		"package p;",
		"",
		"import static java.util.Objects.requireNonNull;",
		"import static org.junit.Assert.*;",
		"",
		"class T {",
		"void check() {",
		"assertTrue(true);",
		"requireNonNull(this);",
		"}",
		"}",
		"",
	)

	assert.Equal(t, want, render(t, unit))
}

func TestCompilationUnit_DeclaredImportsAndFooter(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("").
		WithComment(java.LineComment("generated")).
		WithImport("java.util.*").
		AddType(java.ClassDecl("T").AddField(java.Field("java.util.List", "xs"))).
		WithFooter(java.LineComment("end"))

	want := lines(
		"// generated",
		"import java.util.*;",
		"",
		"class T {",
		"List xs;",
		"}",
		"",
		"// end",
		"",
	)

	assert.Equal(t, want, render(t, unit))
}

func TestCompilationUnit_LineDelimiter(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(java.ClassDecl("T"))

	got := render(t, unit, jgen.WithLineDelimiter("\r\n"))

	assert.Equal(t, "package p;\r\n\r\nclass T {\r\n}\r\n", got)
}

func TestCompilationUnit_MultiplePublicTypes(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").
		AddType(java.ClassDecl("A").WithModifiers(java.Public)).
		AddType(java.ClassDecl("B").WithModifiers(java.Public))

	_, err := java.Render(jgen.NewContext(), unit)
	require.ErrorIs(t, err, jgen.ErrMultiplePublicTypes)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestCompilationUnit_FileNameAndMainType(t *testing.T) {
	t.Parallel()

	ctx := jgen.NewContext()

	unit := java.CompilationUnit("p").
		AddType(java.ClassDecl("Helper")).
		AddType(java.ClassDecl("Service").WithModifiers(java.Public))

	require.NotNil(t, unit.MainType())

	name, err := unit.FileName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Service.java", name)

	name, err = unit.WithName("Custom").FileName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Custom.java", name)

	_, err = java.CompilationUnit("p").FileName(ctx)
	require.ErrorIs(t, err, jgen.ErrMissingElementName)
}

func TestCompilationUnit_CollectImports(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").
		WithImport("java.io.Serializable").
		AddType(java.ClassDecl("T").
			WithInterface("java.io.Serializable").
			AddField(java.Field("java.time.Instant", "at")).
			AddMethod(java.Method("now").
				WithStatements(java.Statement(java.StaticCall("java.time.Clock.systemUTC")))))

	imps, statics, err := unit.CollectImports(jgen.NewContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"java.io.Serializable", "java.time.Instant"}, imps)
	assert.Equal(t, []string{"java.time.Clock.systemUTC"}, statics)
}

func TestCompilationUnit_RemoveType(t *testing.T) {
	t.Parallel()

	ctx := jgen.NewContext()
	helper := java.ClassDecl("Helper")
	unit := java.CompilationUnit("p").AddType(java.ClassDecl("T")).AddType(helper)

	assert.True(t, unit.RemoveType(ctx, "Helper"))
	assert.False(t, unit.RemoveType(ctx, "Helper"))
	assert.Nil(t, helper.DeclaringGenerator())
	assert.Len(t, unit.Types(), 1)
}

func TestCompilationUnit_ResolutionErrorsPropagate(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(
		java.ClassDecl("T").AddField(
			java.Field("", "x").WithTypeFunc(apiSymbol("jaxws", "Service")),
		),
	)

	_, err := java.Render(jgen.NewContext(), unit)
	require.ErrorIs(t, err, jgen.ErrNoEnvironment)
}

func TestCompilationUnit_PerEnvironment(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(
		java.ClassDecl("Echo").
			WithModifiers(java.Public).
			WithAnnotation(java.AnnotationFunc(apiSymbol("jaxws", "WebService")).WithStringValue("name", "Echo")),
	)

	legacy := render(t, unit, jgen.WithEnvironment(jaxws(t, "2.3.1")))
	current := render(t, unit, jgen.WithEnvironment(jaxws(t, "4.0.0")))

	assert.Contains(t, legacy, "import javax.jws.WebService;")
	assert.Contains(t, current, "import jakarta.jws.WebService;")
	assert.Contains(t, current, `@WebService(name = "Echo")`)
	assert.NotEqual(t, legacy, current)
}

func TestCompilationUnit_SamePackageShadowsJavaLang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields []*java.FieldGenerator
	}{
		{
			name:   "java.lang first",
			fields: []*java.FieldGenerator{java.Field("java.lang.String", "a"), java.Field("p.String", "b")},
		},
		{
			name:   "same package first",
			fields: []*java.FieldGenerator{java.Field("p.String", "b"), java.Field("java.lang.String", "a")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			typ := java.ClassDecl("T")
			for _, f := range tt.fields {
				typ.AddField(f)
			}

			got := render(t, java.CompilationUnit("p").AddType(typ))

			assert.Contains(t, got, "java.lang.String a;")
			assert.Contains(t, got, "\nString b;")
			assert.NotContains(t, got, "import ")
		})
	}
}

func TestCompilationUnit_TypeVariablesShadowImports(t *testing.T) {
	t.Parallel()

	unit := java.CompilationUnit("p").AddType(java.ClassDecl("T").
		WithTypeParameters(java.TypeParam("E")).
		AddField(java.Field("other.E", "a")).
		AddField(java.Field("E", "b")).
		AddMethod(java.Method("map").
			WithTypeParameters(java.TypeParam("R")).
			WithReturnType("R").
			WithParameter(java.Parameter("other.R", "r"))).
		AddMethod(java.Method("last").
			WithReturnType("other.R")))

	got := render(t, unit)

	assert.Contains(t, got, "class T<E> {")
	assert.Contains(t, got, "other.E a;")
	assert.Contains(t, got, "E b;")
	assert.Contains(t, got, "<R> R map(other.R r)")
	// Outside the method declaring R the name is free.
	assert.Contains(t, got, "R last()")
	assert.Contains(t, got, "import other.R;")
	assert.NotContains(t, got, "import other.E;")
}

func TestCompilationUnit_StaticImportShadowedByMember(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		typ    *java.TypeGenerator
		want   string
		static bool
	}{
		{
			name: "method of the same name",
			typ: java.ClassDecl("T").
				AddMethod(java.Method("max").WithReturnType("int").WithParameter(java.Parameter("int", "a"))),
			want: "return Math.max(1, 2);",
		},
		{
			name: "field of the same name",
			typ:  java.ClassDecl("T").AddField(java.Field("int", "max")),
			want: "return Math.max(1, 2);",
		},
		{
			name: "enum constant of the same name",
			typ:  java.EnumDecl("T").WithEnumConstant("max"),
			want: "return Math.max(1, 2);",
		},
		{
			name:   "no member of the same name",
			typ:    java.ClassDecl("T").AddField(java.Field("int", "min")),
			want:   "return max(1, 2);",
			static: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.typ.AddMethod(java.Method("use").
				WithReturnType("int").
				WithStatements(java.RawStatement("return {{static java.lang.Math.max}}(1, 2);")))

			got := render(t, java.CompilationUnit("p").AddType(tt.typ))

			assert.Contains(t, got, tt.want)

			if tt.static {
				assert.Contains(t, got, "import static java.lang.Math.max;")
			} else {
				assert.NotContains(t, got, "import static")
			}
		})
	}
}

func TestCompilationUnit_PreProcessorEditsNestedTypes(t *testing.T) {
	t.Parallel()

	var runs int

	leaf := java.ClassDecl("Leaf").
		AddField(java.Field("int", "depth")).
		WithPreProcessor(func(*java.TypeGenerator, *jgen.Context) error {
			runs++

			return nil
		})
	middle := java.ClassDecl("Middle").AddType(leaf)
	outer := java.ClassDecl("T").
		AddType(middle).
		WithPreProcessor(func(self *java.TypeGenerator, _ *jgen.Context) error {
			nested := self.Types()[0]
			nested.AddField(java.Field("int", "added"))
			nested.Types()[0].Fields()[0].AddModifiers(java.Final)

			return nil
		})
	unit := java.CompilationUnit("p").AddType(outer)

	got := render(t, unit)

	assert.Contains(t, got, "int added;")
	assert.Contains(t, got, "final int depth;")
	assert.Equal(t, 1, runs)

	// The caller's tree is untouched.
	assert.Empty(t, middle.Fields())
	assert.Equal(t, java.Modifiers(0), leaf.Fields()[0].Modifiers())

	render(t, unit)
	assert.Equal(t, 2, runs)
}
