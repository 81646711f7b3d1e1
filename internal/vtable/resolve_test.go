package vtable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ModuleRoot(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "go.mod"), []byte("module test\n"), 0o644))

	got, err := Resolve(tmp, testLogger())
	require.NoError(t, err)
	assert.Equal(t, tmp, got)
}

func TestResolve_SubdirectoryWalksUp(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "go.mod"), []byte("module test\n"), 0o644))
	sub := filepath.Join(tmp, "internal", "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, err := Resolve(sub, testLogger())
	require.NoError(t, err)
	assert.Equal(t, tmp, got)
}

func TestResolve_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(f, []byte("package main\n"), 0o644))

	_, err := Resolve(f, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestResolve_Missing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope"), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat")
}

func TestFindModuleRoot_Nearest(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "go.mod"), []byte("module outer\n"), 0o644))
	inner := filepath.Join(tmp, "tools")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inner, "go.mod"), []byte("module inner\n"), 0o644))

	got, err := findModuleRoot(inner)
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}
