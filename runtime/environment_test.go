package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentGetResolvesOuter(t *testing.T) {
	outer := NewEnvironment(nil, false)
	require.NoError(t, outer.Declare("x", "var", NewNumber(1)))
	inner := NewEnvironment(outer, true)

	v, err := inner.Get("x")
	require.NoError(t, err)
	assert.Equal(t, float64(1), v.Number)
}

func TestEnvironmentGetUnresolvedErrors(t *testing.T) {
	env := NewEnvironment(nil, false)
	_, err := env.Get("missing")
	require.Error(t, err)
}

func TestEnvironmentResolveDoesNotThrow(t *testing.T) {
	env := NewEnvironment(nil, false)
	_, ok := env.Resolve("missing")
	assert.False(t, ok)
}

func TestEnvironmentDeclareDuplicateLetErrors(t *testing.T) {
	env := NewEnvironment(nil, false)
	require.NoError(t, env.Declare("x", "let", Zero))
	err := env.Declare("x", "let", Zero)
	assert.Error(t, err)
}

// Set's fallback creates the binding in the originating frame, not the
// outermost (global) one, per the finalized Open Question decision.
func TestSetFallbackCreatesInOriginatingFrame(t *testing.T) {
	global := NewEnvironment(nil, false)
	funcFrame := NewEnvironment(global, false)
	block := NewEnvironment(funcFrame, true)

	require.NoError(t, block.Set("y", NewNumber(7)))

	_, err := global.Get("y")
	assert.Error(t, err, "y should not leak into the global frame")

	v, err := block.Get("y")
	require.NoError(t, err)
	assert.Equal(t, float64(7), v.Number)
}

func TestSetAssignsExistingBindingInOuterFrame(t *testing.T) {
	outer := NewEnvironment(nil, false)
	require.NoError(t, outer.Declare("x", "var", Zero))
	inner := NewEnvironment(outer, true)

	require.NoError(t, inner.Set("x", NewNumber(9)))

	v, err := outer.Get("x")
	require.NoError(t, err)
	assert.Equal(t, float64(9), v.Number)
}

func TestSetConstRejectsReassignment(t *testing.T) {
	env := NewEnvironment(nil, false)
	require.NoError(t, env.Declare("x", "const", Zero))
	err := env.Set("x", NewNumber(1))
	assert.Error(t, err)
}

func TestGetFunctionScopeSkipsBlockFrames(t *testing.T) {
	funcFrame := NewEnvironment(nil, false)
	block1 := NewEnvironment(funcFrame, true)
	block2 := NewEnvironment(block1, true)

	assert.Same(t, funcFrame, block2.GetFunctionScope())
}

func TestDeclareIfAbsentDoesNotClobber(t *testing.T) {
	env := NewEnvironment(nil, false)
	require.NoError(t, env.Declare("x", "var", NewNumber(5)))
	env.DeclareIfAbsent("x")

	v, err := env.Get("x")
	require.NoError(t, err)
	assert.Equal(t, float64(5), v.Number)
}
