package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
	"github.com/rlch/jgen/java"
	"github.com/rlch/jgen/model"
)

const echo = `
environment: env/jakarta.yaml
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
        fields:
          - name: prefix
            type: java.lang.String
            modifiers: [private, final]
            initializer: '"> "'
        methods:
          - name: echo
            modifiers: [public]
            returns: java.lang.String
            parameters:
              - name: message
                type: java.lang.String
            body: return prefix + message;
          - name: ping
            when: supports("jaxws", "async")
`

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := model.Parse([]byte(echo))
	require.NoError(t, err)
	require.Len(t, f.Units, 1)

	u := f.Units[0]
	assert.Equal(t, "com.example", u.Package)
	require.Len(t, u.Types, 1)

	typ := u.Types[0]
	assert.Equal(t, "EchoService", typ.Name)
	require.Len(t, typ.Annotations, 1)
	require.NotNil(t, typ.Annotations[0].Values[0].String)
	assert.Equal(t, "Echo", *typ.Annotations[0].Values[0].String)
	require.Len(t, typ.Methods, 2)
	require.NotNil(t, typ.Methods[0].Body)
	assert.Nil(t, typ.Methods[1].Body)
	assert.Equal(t, `supports("jaxws", "async")`, typ.Methods[1].When)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		where string
		cause error
	}{
		{
			name:  "missing type name",
			input: "units: [{types: [{kind: class}]}]",
			where: "units[0].types[0]",
			cause: jgen.ErrMissingElementName,
		},
		{
			name:  "unknown kind",
			input: "units: [{types: [{kind: struct, name: S}]}]",
			where: "units[0].types[0]",
			cause: java.ErrUnknownKind,
		},
		{
			name:  "unknown modifier",
			input: "units: [{types: [{name: S, fields: [{name: x, type: int, modifiers: [friend]}]}]}]",
			where: "units[0].types[0].fields[0]",
			cause: java.ErrUnknownModifier,
		},
		{
			name:  "malformed reference",
			input: "units: [{types: [{name: S, implements: ['a.<B']}]}]",
			where: "units[0].types[0].implements[0]",
			cause: jgen.ErrInvalidReference,
		},
		{
			name:  "missing field type",
			input: "units: [{types: [{name: S, fields: [{name: x}]}]}]",
			where: "units[0].types[0].fields[0]",
			cause: java.ErrMissingType,
		},
		{
			name:  "bad condition",
			input: "units: [{types: [{name: S, methods: [{name: m, when: 'version(('}]}]}]",
			where: "units[0].types[0].methods[0].when",
			cause: api.ErrInvalidCondition,
		},
		{
			name:  "nested type",
			input: "units: [{types: [{name: S, types: [{name: ''}]}]}]",
			where: "units[0].types[0].types[0]",
			cause: jgen.ErrMissingElementName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := model.Parse([]byte(tt.input))
			require.ErrorIs(t, err, model.ErrInvalid)
			require.ErrorIs(t, err, tt.cause)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.where, verr.Where)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := model.Parse([]byte("units: {"))
	require.ErrorIs(t, err, model.ErrParse)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "echo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(echo), 0o600))

	f, err := model.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Equal(t, filepath.Join(dir, "env", "jakarta.yaml"), f.EnvironmentPath())

	_, err = model.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	f, err := model.Parse([]byte(echo))
	require.NoError(t, err)

	data, err := f.Marshal()
	require.NoError(t, err)

	again, err := model.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestParseSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		kind, name string
		ok         bool
	}{
		{"$jaxws.WebService", "jaxws", "WebService", true},
		{" $jpa.Entity ", "jpa", "Entity", true},
		{"$jaxws", "", "", false},
		{"$.X", "", "", false},
		{"jaxws.WebService", "", "", false},
	}

	for _, tt := range tests {
		kind, name, ok := model.ParseSymbol(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.kind, kind, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}
