package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFlag(t *testing.T) {
	var f regexFlag
	assert.False(t, f.Defined())
	assert.Equal(t, "", f.String())

	require.NoError(t, f.Set("^You"))
	assert.True(t, f.Defined())
	assert.True(t, f.MatchString("YouTube"))
	assert.False(t, f.MatchString("Spotify"))
	assert.Equal(t, "^You", f.String())

	require.NoError(t, f.Set(""))
	assert.False(t, f.Defined())

	assert.Error(t, f.Set("("))
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9100", baseURL())
}

func TestReadInput(t *testing.T) {
	name := filepath.Join(t.TempDir(), "chapter.html")
	require.NoError(t, os.WriteFile(name, []byte("<p>Hi</p>"), 0600))

	got, err := readInput(name)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", got)

	_, err = readInput(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
