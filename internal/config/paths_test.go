package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"single segment", "server", []string{"server"}, false},
		{"two segments", "server.baseUrl", []string{"server", "baseUrl"}, false},
		{"three segments", "preferences.store.kind", []string{"preferences", "store", "kind"}, false},
		{"empty", "", nil, true},
		{"empty segment", "server..baseUrl", nil, true},
		{"leading dot", ".server", nil, true},
		{"trailing dot", "server.", nil, true},
		{"blocked __proto__", "foo.__proto__.bar", nil, true},
		{"blocked prototype", "prototype.x", nil, true},
		{"blocked constructor", "constructor", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfigPath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				var ce *ConfigError
				assert.ErrorAs(t, err, &ce)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGetValueAtPath(t *testing.T) {
	root := map[string]any{
		"server": map[string]any{
			"timeoutSeconds": 30,
			"auth": map[string]any{
				"token": "abc",
			},
		},
		"simple": "value",
	}

	tests := []struct {
		name string
		path []string
		want any
		ok   bool
	}{
		{"nested value", []string{"server", "timeoutSeconds"}, 30, true},
		{"deeply nested", []string{"server", "auth", "token"}, "abc", true},
		{"top level", []string{"simple"}, "value", true},
		{"missing key", []string{"nonexistent"}, nil, false},
		{"missing nested", []string{"server", "nonexistent"}, nil, false},
		{"non-map intermediate", []string{"simple", "sub"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := GetValueAtPath(root, tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, val)
			}
		})
	}
}

func TestSetValueAtPath_Update(t *testing.T) {
	root := map[string]any{
		"server": map[string]any{"timeoutSeconds": 30},
	}

	SetValueAtPath(root, []string{"server", "timeoutSeconds"}, 5)
	val, ok := GetValueAtPath(root, []string{"server", "timeoutSeconds"})
	assert.True(t, ok)
	assert.Equal(t, 5, val)
}

func TestSetValueAtPath_CreatesIntermediates(t *testing.T) {
	root := map[string]any{}

	SetValueAtPath(root, []string{"agents", "demoFallback"}, false)
	val, ok := GetValueAtPath(root, []string{"agents", "demoFallback"})
	assert.True(t, ok)
	assert.Equal(t, false, val)
}

func TestSetValueAtPath_OverwritesNonMap(t *testing.T) {
	root := map[string]any{"server": "string-not-map"}

	SetValueAtPath(root, []string{"server", "baseUrl"}, "http://x")
	val, ok := GetValueAtPath(root, []string{"server", "baseUrl"})
	assert.True(t, ok)
	assert.Equal(t, "http://x", val)
}

func TestUnsetValueAtPath_PreserveSiblings(t *testing.T) {
	root := map[string]any{
		"server": map[string]any{
			"baseUrl": "http://x",
			"token":   "t",
		},
	}

	assert.True(t, UnsetValueAtPath(root, []string{"server", "token"}))

	_, found := GetValueAtPath(root, []string{"server", "token"})
	assert.False(t, found)

	val, found := GetValueAtPath(root, []string{"server", "baseUrl"})
	assert.True(t, found)
	assert.Equal(t, "http://x", val)
}

func TestUnsetValueAtPath_NotFound(t *testing.T) {
	assert.False(t, UnsetValueAtPath(map[string]any{}, []string{"a", "b", "c"}))
	assert.False(t, UnsetValueAtPath(map[string]any{"server": "s"}, []string{"server", "token"}))
}

func TestResolvePaths_Default(t *testing.T) {
	t.Setenv("SASAGENT_HOME", "")

	paths, err := ResolvePaths()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".sasagent"), paths.Base)
	assert.Equal(t, filepath.Join(home, ".sasagent", "config.yaml"), paths.Config)
	assert.Equal(t, filepath.Join(home, ".sasagent", "data"), paths.Data)
	assert.Equal(t, filepath.Join(home, ".sasagent", "logs"), paths.Logs)
	assert.Equal(t, filepath.Join(home, ".sasagent", "drop"), paths.Drop)
}

func TestResolvePaths_CustomHome(t *testing.T) {
	t.Setenv("SASAGENT_HOME", "/tmp/sas")

	paths, err := ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/sas", paths.Base)
	assert.Equal(t, "/tmp/sas/config.yaml", paths.Config)
	assert.Equal(t, "/tmp/sas/data/preferences.db", paths.PreferencesDB())
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	paths := Paths{
		Base: tmpDir,
		Data: filepath.Join(tmpDir, "data"),
		Logs: filepath.Join(tmpDir, "logs"),
		Drop: filepath.Join(tmpDir, "drop"),
	}

	require.NoError(t, paths.EnsureDirs())
	require.NoError(t, paths.EnsureDirs())

	for _, dir := range []string{paths.Base, paths.Data, paths.Logs, paths.Drop} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
