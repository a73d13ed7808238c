package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNamesRoundTrip(t *testing.T) {
	for k := Key(1); k <= KeyLast; k++ {
		name := k.String()
		if len(name) > 4 && name[:4] == "key(" {
			continue
		}
		got, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, k, got, name)
	}
}

func TestParseKey(t *testing.T) {
	for name, want := range map[string]Key{
		"Escape": KeyEscape,
		" w ":    KeyW,
		"F12":    KeyF12,
		"kp_7":   KeyKP7,
		"":       KeyInvalid,
		"none":   KeyInvalid,
	} {
		got, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, bad := range []string{"f0", "f26", "kp_10", "hyper", "fx"} {
		_, err := ParseKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestKeyText(t *testing.T) {
	var k Key
	require.NoError(t, k.UnmarshalText([]byte("space")))
	assert.Equal(t, KeySpace, k)

	text, err := KeyQ.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "q", string(text))

	assert.Error(t, k.UnmarshalText([]byte("nope")))
}
