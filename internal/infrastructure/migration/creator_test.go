package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/fintrak/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add bills index", "add_bills_index"},
		{"Add-Bills-Index", "add_bills_index"},
		{"ADD__BILLS", "add_bills"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create document fields", "document table")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)

	second, err := CreateMigration(dir, "add index", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)
	assert.Equal(t, filepath.Join(dir, "000002_add_index.up.sql"), second.UpPath)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "-- Migration: create_document_fields"))

	_, err = os.Stat(second.DownPath)
	assert.NoError(t, err)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {},
		"000002_b.down.sql": {},
		"000001_a.up.sql":   {},
		"000001_a.down.sql": {},
		"README.md":         {},
	}

	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a", "000002_b"}, names)
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	assert.Contains(t, names, "000001_create_document_fields")
}
