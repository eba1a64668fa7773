package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen/output"
)

func TestWriter_Path(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w := output.New(root)

	tests := []struct {
		name    string
		pkg     string
		file    string
		want    string
		wantErr error
	}{
		{name: "package", pkg: "com.example", file: "Echo.java", want: filepath.Join(root, "com", "example", "Echo.java")},
		{name: "default package", file: "Echo.java", want: filepath.Join(root, "Echo.java")},
		{name: "empty segment", pkg: "..", file: "Echo.java", wantErr: output.ErrInvalidPackage},
		{name: "escaping package", pkg: "a/../../x", file: "Echo.java", wantErr: output.ErrOutsideRoot},
		{name: "absolute package", pkg: "/etc", file: "passwd", wantErr: output.ErrOutsideRoot},
		{name: "path in name", pkg: "p", file: "../Echo.java", wantErr: output.ErrInvalidName},
		{name: "empty name", pkg: "p", wantErr: output.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := w.Path(tt.pkg, tt.file)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w := output.New(root)

	path, err := w.Write(&output.File{Package: "a.b", Name: "C.java", Content: []byte("class C {}\n")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b", "C.java"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class C {}\n", string(data))

	_, err = w.Write(&output.File{Package: "a.b", Name: "C.java", Content: []byte("class C { int x; }\n")})
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class C { int x; }\n", string(data))
}

func TestFile_Rel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("x", "y", "Z.java"), (&output.File{Package: "x.y", Name: "Z.java"}).Rel())
	assert.Equal(t, "Z.java", (&output.File{Name: "Z.java"}).Rel())
}
