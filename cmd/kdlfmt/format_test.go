package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunFormatCanonicalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.kdl")
	require.NoError(t, os.WriteFile(path, []byte("node   1   2   k=3\n"), 0o644))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	cfg := &config{}
	err = runFormat(cfg, path)
	require.NoError(t, err)

	w.Close()
	os.Stdout = orig
	buf := make([]byte, 1024)
	n, _ := r.Read(buf)

	require.Equal(t, "node 1 2 k=3\n", string(buf[:n]))
}

func TestRunFormatCheckDetectsNonCanonical(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.kdl")
	require.NoError(t, os.WriteFile(path, []byte("node   1\n"), 0o644))

	cfg := &config{check: true}
	err := runFormat(cfg, path)
	require.ErrorIs(t, err, ErrNotCanonical)
}

func TestRunFormatCheckAcceptsCanonical(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.kdl")
	require.NoError(t, os.WriteFile(path, []byte("node 1\n"), 0o644))

	cfg := &config{check: true}
	err := runFormat(cfg, path)
	require.NoError(t, err)
}

func TestRunFormatSyntaxErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.kdl")
	require.NoError(t, os.WriteFile(path, []byte("node {"), 0o644))

	cfg := &config{}
	err := runFormat(cfg, path)
	require.Error(t, err)
}

func TestRunFormatMissingFile(t *testing.T) {
	cfg := &config{}
	err := runFormat(cfg, filepath.Join(t.TempDir(), "missing.kdl"))
	require.ErrorIs(t, err, ErrReadInput)
}

func TestNoArgsUsageError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
}
