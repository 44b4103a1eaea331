package signature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAccessModifier_IsValid(t *testing.T) {
	assert.True(t, Private.IsValid())
	assert.True(t, Protected.IsValid())
	assert.True(t, Public.IsValid())
	assert.False(t, NoModifier.IsValid())
	assert.False(t, AccessModifier("Public").IsValid())
	assert.False(t, AccessModifier("internal").IsValid())
}

func TestMethodSignature_String(t *testing.T) {
	tests := []struct {
		name     string
		sig      *MethodSignature
		expected string
	}{
		{
			name: "all fields",
			sig: &MethodSignature{
				AccessModifier: Private,
				ReturnType:     "void",
				Name:           "log",
				Arguments:      []Argument{NewArgument("String", "value"), NewArgument("int", "level")},
			},
			expected: "private void log(String value, int level)",
		},
		{
			name:     "required fields only",
			sig:      NewMethodSignature("run", nil),
			expected: "run()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sig.String())
		})
	}
}

func TestMethodSignature_SettersAndEqual(t *testing.T) {
	sig := NewMethodSignature("log", nil)
	require.NotNil(t, sig.Arguments)
	assert.False(t, sig.HasAccessModifier())
	assert.False(t, sig.HasReturnType())

	sig.SetAccessModifier(Public)
	sig.SetReturnType("void")
	assert.True(t, sig.HasAccessModifier())
	assert.True(t, sig.HasReturnType())

	other := sig.Clone()
	assert.True(t, sig.Equal(other))

	other.Arguments = append(other.Arguments, NewArgument("int", "x"))
	assert.False(t, sig.Equal(other))
	assert.Empty(t, sig.Arguments)

	var missing *MethodSignature
	assert.False(t, sig.Equal(missing))
	assert.True(t, missing.Equal(nil))
}

func TestMethodSignature_Encoding(t *testing.T) {
	sig, err := Parse("Vector3 distort(int x, float magnitude)")
	require.NoError(t, err)

	data, err := json.Marshal(sig)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"return_type": "Vector3",
		"name": "distort",
		"arguments": [{"type": "int", "name": "x"}, {"type": "float", "name": "magnitude"}]
	}`, string(data))

	empty, err := Parse("public DateTime now()")
	require.NoError(t, err)
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"arguments":[]`)
	assert.Contains(t, string(data), `"access_modifier":"public"`)

	out, err := yaml.Marshal(sig)
	require.NoError(t, err)
	assert.Contains(t, string(out), "return_type: Vector3")
	assert.NotContains(t, string(out), "access_modifier")
}
