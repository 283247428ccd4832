package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/morph/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "b")
	writeFile(t, filepath.Join(tmpDir, "a", "c.txt"), "c")
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(tmpDir, ".morph", "store", "x.json"), "{}")
	writeFile(t, filepath.Join(tmpDir, "skip.log"), "log")

	walker := fs.NewWalker()
	files := slices.Collect(walker.WalkFiles(tmpDir, []string{"*.log"}))

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a", "c.txt"),
		filepath.Join(tmpDir, "b.txt"),
	}, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "b")

	var seen []string
	for path := range fs.NewWalker().WalkFiles(tmpDir, nil) {
		seen = append(seen, path)
		break
	}
	assert.Len(t, seen, 1)
}

func TestHasher_ComputeFileHash_File(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.bin")
	b := filepath.Join(tmpDir, "b.bin")
	writeFile(t, a, "same")
	writeFile(t, b, "same")

	hasher := fs.NewHasher(fs.NewWalker())

	hashA, err := hasher.ComputeFileHash(a)
	require.NoError(t, err)
	hashB, err := hasher.ComputeFileHash(b)
	require.NoError(t, err)
	assert.Len(t, hashA, 16)
	assert.Equal(t, hashA, hashB)

	writeFile(t, b, "different")
	hashB, err = hasher.ComputeFileHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}

func TestHasher_ComputeFileHash_Directory(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	dirA := t.TempDir()
	writeFile(t, filepath.Join(dirA, "x", "1.txt"), "one")
	writeFile(t, filepath.Join(dirA, "2.txt"), "two")

	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirB, "x", "1.txt"), "one")
	writeFile(t, filepath.Join(dirB, "2.txt"), "two")

	hashA, err := hasher.ComputeFileHash(dirA)
	require.NoError(t, err)
	hashB, err := hasher.ComputeFileHash(dirB)
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB, "directory hashes are independent of location")

	require.NoError(t, os.Rename(filepath.Join(dirB, "2.txt"), filepath.Join(dirB, "3.txt")))
	hashB, err = hasher.ComputeFileHash(dirB)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	_, err := hasher.ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat path")
}

func TestResolver_ResolveInputs(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"a.jar", "b.jar", "c.zip"} {
		writeFile(t, filepath.Join(tmpDir, f), "content")
	}

	resolver := fs.NewResolver()

	resolved, err := resolver.ResolveInputs([]string{"c.zip", "*.jar", "a.jar"}, tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "c.zip"),
		filepath.Join(tmpDir, "a.jar"),
		filepath.Join(tmpDir, "b.jar"),
	}, resolved)

	abs := filepath.Join(tmpDir, "c.zip")
	resolved, err = resolver.ResolveInputs([]string{abs}, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, resolved)
}

func TestResolver_ResolveInputs_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	resolver := fs.NewResolver()

	_, err := resolver.ResolveInputs([]string{"["}, tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve inputs")

	_, err = resolver.ResolveInputs([]string{"*.nonexistent"}, tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input not found")
}

func TestVerifier_VerifyOutputs(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	writeFile(t, filepath.Join(tmpDir, "out1.txt"), "content")
	abs := filepath.Join(tmpDir, "out2.txt")
	writeFile(t, abs, "content")

	exists, err := verifier.VerifyOutputs(tmpDir, []string{"out1.txt", abs})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = verifier.VerifyOutputs(tmpDir, []string{"out1.txt", "missing.txt"})
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = verifier.VerifyOutputs(tmpDir, nil)
	require.NoError(t, err)
	assert.True(t, exists)
}
