package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlashPathModel_NormalizePath(t *testing.T) {
	var m SlashPathModel

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"absolute", "/a/b/c.txt", "/a/b/c.txt"},
		{"relative", "a/b/c.txt", "/a/b/c.txt"},
		{"trailing slash", "/a/b/", "/a/b"},
		{"double slashes", "/a//b///c", "/a/b/c"},
		{"current dir segments", "/a/./b/./c", "/a/b/c"},
		{"parent inside tree", "/a/b/../c", "/a/c"},
		{"root", "/", "/"},
		{"dot", ".", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.NormalizePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlashPathModel_NormalizePathRejects(t *testing.T) {
	var m SlashPathModel

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"escapes root", "/.."},
		{"escapes root nested", "a/../../etc/passwd"},
		{"scheme", "https://example.com/a"},
		{"nul byte", "/a\x00b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.NormalizePath(tt.input)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestSlashPathModel_Combine(t *testing.T) {
	var m SlashPathModel

	assert.Equal(t, "/a/b/c", m.Combine("/a", "b", "c"))
	assert.Equal(t, "/a/c", m.Combine("/a", "b", "..", "c"))
	assert.Equal(t, "/a", m.Combine("/a", ""))
	assert.Equal(t, "/", m.Combine("/"))
}

func TestSlashPathModel_DirectoryNameFileName(t *testing.T) {
	var m SlashPathModel

	dir, err := m.DirectoryName("/a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "/a/b", dir)

	name, err := m.FileName("/a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "c.txt", name)

	dir, err = m.DirectoryName("/top.txt")
	require.NoError(t, err)
	assert.Equal(t, "/", dir)

	_, err = m.DirectoryName("/")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = m.FileName("/")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestSlashPathModel_UniqueDirectoryPath(t *testing.T) {
	var m SlashPathModel

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p := m.UniqueDirectoryPath()
		assert.True(t, strings.HasPrefix(p, "/"), "unique path must be rooted")
		assert.False(t, seen[p], "unique path repeated: %s", p)
		seen[p] = true

		normalized, err := m.NormalizePath(p)
		require.NoError(t, err)
		assert.Equal(t, p, normalized)
	}
}
