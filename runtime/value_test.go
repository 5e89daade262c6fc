package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToStringPrimitives(t *testing.T) {
	assert.Equal(t, "undefined", Undefined.ToString())
	assert.Equal(t, "null", Null.ToString())
	assert.Equal(t, "true", True.ToString())
	assert.Equal(t, "42", NewNumber(42).ToString())
	assert.Equal(t, "NaN", NaN.ToString())
	assert.Equal(t, "hi", NewString("hi").ToString())
}

func TestStrictEqualsTypeMismatch(t *testing.T) {
	assert.False(t, StrictEquals(NewNumber(1), NewString("1")))
	assert.True(t, StrictEquals(NewNumber(1), NewNumber(1)))
	assert.False(t, StrictEquals(NaN, NaN))
}

// The finalized Open Question decision: == behaves exactly like ===.
func TestAbstractEqualsMatchesStrict(t *testing.T) {
	assert.False(t, AbstractEquals(NewNumber(1), NewString("1")))
	assert.False(t, AbstractEquals(Null, Undefined))
	assert.True(t, AbstractEquals(NewString("a"), NewString("a")))
}

// Property insertion order is preserved for for...in, fixing the
// teacher's unordered map iteration.
func TestOwnEnumerableKeysPreservesInsertionOrder(t *testing.T) {
	obj := NewOrdinaryObject(nil)
	obj.Set("z", NewNumber(1))
	obj.Set("a", NewNumber(2))
	obj.Set("m", NewNumber(3))

	assert.Equal(t, []string{"z", "a", "m"}, obj.OwnEnumerableKeys())
}

func TestOwnEnumerableKeysArrayIndicesFirst(t *testing.T) {
	arr := NewArrayObject(nil, []*Value{NewNumber(1), NewNumber(2)})
	arr.Set("label", NewString("x"))

	assert.Equal(t, []string{"0", "1", "label"}, arr.OwnEnumerableKeys())
}

func TestDeletePropertyRespectsConfigurable(t *testing.T) {
	obj := NewOrdinaryObject(nil)
	obj.DefineProperty("x", &Property{Value: Zero, Configurable: false})
	assert.False(t, obj.DeleteProperty("x"))
	assert.True(t, obj.HasOwnProperty("x"))
}

func TestArrayLengthTruncatesAndExtends(t *testing.T) {
	arr := NewArrayObject(nil, []*Value{NewNumber(1), NewNumber(2), NewNumber(3)})
	arr.Set("length", NewNumber(1))
	assert.Equal(t, 1, len(arr.ArrayData))

	arr.Set("length", NewNumber(3))
	assert.Equal(t, 3, len(arr.ArrayData))
	assert.Nil(t, arr.ArrayData[2])
}

func TestHostOpaquePassesThroughUntouched(t *testing.T) {
	data := struct{ N int }{N: 5}
	v := NewHostOpaque(data)
	assert.Equal(t, TypeHostOpaque, v.Type)
	assert.Equal(t, data, v.HostData)
	assert.True(t, v.ToBoolean())
}
