package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurelens/policy-parser/constants"
)

func writeOverride(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validOverride = `{
  "issuer_id": "sbi",
  "fields": [
    {
      "key": "premium_amount",
      "kind": "numeric-currency",
      "keywords": ["single premium", "premium amount"],
      "patterns": [
        {"label": "single\\s+premium", "value": "([\\d,]+(?:\\.\\d+)?)"}
      ]
    }
  ]
}`

func TestLoadOverrideFile(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	path := writeOverride(t, t.TempDir(), "sbi.json", validOverride)
	require.NoError(t, store.LoadOverrideFile(path))

	base := store.Resolve("")
	sbi := store.Resolve("sbi")
	require.Equal(t, base.Keys(), sbi.Keys())

	for _, key := range base.Keys() {
		bd, _ := base.Definition(key)
		sd, _ := sbi.Definition(key)
		if key == constants.FieldPremiumAmount {
			assert.Equal(t, []string{"single premium", "premium amount"}, sd.Keywords)
		} else {
			assert.Equal(t, bd, sd, "field %s should inherit base", key)
		}
	}
}

func TestLoadOverrideFileRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{{{`},
		{"missing issuer", `{"fields": [{"key": "premium_amount", "kind": "numeric-currency", "keywords": ["x"]}]}`},
		{"missing kind", `{"issuer_id": "sbi", "fields": [{"key": "premium_amount", "keywords": ["x"]}]}`},
		{"bad kind", `{"issuer_id": "sbi", "fields": [{"key": "premium_amount", "kind": "money", "keywords": ["x"]}]}`},
		{"empty fields", `{"issuer_id": "sbi", "fields": []}`},
		{"unknown property", `{"issuer_id": "sbi", "surprise": true, "fields": [{"key": "premium_amount", "kind": "numeric-currency", "keywords": ["x"]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(nil)
			require.NoError(t, err)
			path := writeOverride(t, t.TempDir(), "bad.json", tt.content)
			assert.Error(t, store.LoadOverrideFile(path))
		})
	}
}

func TestLoadOverrideFileRejectsUnknownFieldKey(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)
	path := writeOverride(t, t.TempDir(), "bad.json",
		`{"issuer_id": "sbi", "fields": [{"key": "shoe_size", "kind": "free-text", "keywords": ["shoe"]}]}`)
	assert.Error(t, store.LoadOverrideFile(path))
}

func TestLoadOverrideFileRejectsBadRegex(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)
	path := writeOverride(t, t.TempDir(), "bad.json",
		`{"issuer_id": "sbi", "fields": [{"key": "premium_amount", "kind": "numeric-currency", "patterns": [{"label": "([", "value": "(x)"}]}]}`)
	assert.Error(t, store.LoadOverrideFile(path))
}

func TestLoadOverrideDir(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	dir := t.TempDir()
	writeOverride(t, dir, "sbi.json", validOverride)
	writeOverride(t, dir, "notes.txt", "ignored")

	require.NoError(t, store.LoadOverrideDir(dir))
	assert.Contains(t, store.Issuers(), "sbi")
}

func TestLoadOverrideDirMissingIsFine(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)
	assert.NoError(t, store.LoadOverrideDir(filepath.Join(t.TempDir(), "nope")))
}
