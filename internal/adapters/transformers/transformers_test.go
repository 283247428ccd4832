package transformers_test

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/adapters/fs"
	"go.trai.ch/morph/internal/adapters/transformers"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	return zErr.Metadata()
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestUnzip_Transform(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "lib.zip")
	writeZip(t, archive, map[string]string{
		"classes/A.class":      "a",
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
	})
	workspace := t.TempDir()

	unzip := transformers.NewUnzip(domain.TransformSpec{Name: "Unzip", Kind: transformers.KindUnzip})
	outputs, err := unzip.Transform(context.Background(), archive, workspace)
	require.NoError(t, err)
	assert.Equal(t, []string{workspace}, outputs)

	content, err := os.ReadFile(filepath.Join(workspace, "classes", "A.class"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
	assert.FileExists(t, filepath.Join(workspace, "META-INF", "MANIFEST.MF"))
}

func TestUnzip_Transform_RejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.zip")
	writeZip(t, archive, map[string]string{"../escape.txt": "x"})
	workspace := t.TempDir()

	unzip := transformers.NewUnzip(domain.TransformSpec{Name: "Unzip", Kind: transformers.KindUnzip})
	_, err := unzip.Transform(context.Background(), archive, workspace)
	require.Error(t, err)
	assert.EqualError(t, err, domain.ErrArchiveEntryOutsideWorkspace.Error())
	assert.Equal(t, "../escape.txt", metadata(t, err)["entry"])
	assert.NoFileExists(t, filepath.Join(filepath.Dir(workspace), "escape.txt"))
}

func TestUnzip_Transform_NotAnArchive(t *testing.T) {
	input := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(input, []byte("nope"), 0o600))

	unzip := transformers.NewUnzip(domain.TransformSpec{Name: "Unzip", Kind: transformers.KindUnzip})
	_, err := unzip.Transform(context.Background(), input, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrArchiveExtractFailed.Error())
}

func TestCopy_Transform(t *testing.T) {
	src := t.TempDir()
	dir := filepath.Join(src, "res")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "a.txt"), []byte("a"), 0o600))
	workspace := t.TempDir()

	cp := transformers.NewCopy(domain.TransformSpec{Name: "Copy", Kind: transformers.KindCopy})
	outputs, err := cp.Transform(context.Background(), dir, workspace)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(workspace, "res")}, outputs)

	content, err := os.ReadFile(filepath.Join(workspace, "res", "nested", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
}

func TestCopy_Transform_MissingInput(t *testing.T) {
	cp := transformers.NewCopy(domain.TransformSpec{Name: "Copy", Kind: transformers.KindCopy})
	_, err := cp.Transform(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrCopyFailed.Error())
}

func TestRegistry_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := transformers.NewRegistry(mocks.NewMockLogger(ctrl), fs.NewWalker())

	assert.Equal(t, []string{"command", "copy", "unzip"}, registry.Kinds())

	tests := []struct {
		name string
		spec domain.TransformSpec
		want any
	}{
		{"command", domain.TransformSpec{Name: "c", Kind: "command", Command: []string{"true"}}, &transformers.Command{}},
		{"unzip", domain.TransformSpec{Name: "u", Kind: "unzip"}, &transformers.Unzip{}},
		{"copy", domain.TransformSpec{Name: "p", Kind: "copy"}, &transformers.Copy{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := registry.Build(tt.spec)
			require.NoError(t, err)
			assert.IsType(t, tt.want, tr)
			assert.Equal(t, tt.spec.Name, tr.Identity().DisplayName)
			assert.Equal(t, transformers.Fingerprint(tt.spec), tr.Identity().SecondaryInputHash)
		})
	}
}

func TestRegistry_Build_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := transformers.NewRegistry(mocks.NewMockLogger(ctrl), fs.NewWalker())

	_, err := registry.Build(domain.TransformSpec{Name: "x", Kind: "jar"})
	require.Error(t, err)
	assert.EqualError(t, err, domain.ErrUnknownTransformKind.Error())
	assert.Equal(t, "jar", metadata(t, err)["kind"])
	assert.Equal(t, "x", metadata(t, err)["transform"])
}

func TestFingerprint(t *testing.T) {
	base := domain.TransformSpec{
		Name:        "javac",
		Kind:        "command",
		Command:     []string{"javac", "{input}"},
		Environment: map[string]string{"A": "1", "B": "2"},
	}

	t.Run("ignores display name", func(t *testing.T) {
		other := base
		other.Name = "compile"
		assert.Equal(t, transformers.Fingerprint(base), transformers.Fingerprint(other))
	})

	t.Run("stable across environment order", func(t *testing.T) {
		other := base
		other.Environment = map[string]string{"B": "2", "A": "1"}
		assert.Equal(t, transformers.Fingerprint(base), transformers.Fingerprint(other))
	})

	t.Run("changes with command", func(t *testing.T) {
		other := base
		other.Command = []string{"javac", "-g", "{input}"}
		assert.NotEqual(t, transformers.Fingerprint(base), transformers.Fingerprint(other))
	})

	t.Run("fields cannot shift between lists", func(t *testing.T) {
		a := domain.TransformSpec{Kind: "command", Command: []string{"x", "y"}}
		b := domain.TransformSpec{Kind: "command", Command: []string{"x"}, Outputs: []string{"y"}}
		assert.NotEqual(t, transformers.Fingerprint(a), transformers.Fingerprint(b))
	})
}
