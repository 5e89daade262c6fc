package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesPolicy(t *testing.T) {
	path := writePolicyFile(t, "maxOps: 500\nglobals:\n  - Object\n  - Math\n")
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, p.MaxOps)
	assert.Equal(t, []string{"Object", "Math"}, p.Globals)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAllowsWithEmptyGlobalsAllowsEverything(t *testing.T) {
	p := &Policy{}
	assert.True(t, p.Allows("Object"))
	assert.True(t, p.Allows("AnythingAtAll"))
}

func TestAllowsWithNilPolicyAllowsEverything(t *testing.T) {
	var p *Policy
	assert.True(t, p.Allows("Object"))
}

func TestAllowsRestrictsToListedGlobals(t *testing.T) {
	p := &Policy{Globals: []string{"Object", "Math"}}
	assert.True(t, p.Allows("Object"))
	assert.False(t, p.Allows("Array"))
}
