package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyResolves(t *testing.T) {
	src, ok := ByKey(DefaultKey)
	require.True(t, ok)
	assert.Equal(t, DefaultKey, src.Key)
	assert.NotEmpty(t, src.URLTemplate)
	assert.NotEmpty(t, src.Attribution)
}

func TestLookups(t *testing.T) {
	names := Names()
	require.Equal(t, len(All()), len(names))

	for _, name := range names {
		src, ok := ByName(name)
		require.True(t, ok, "name %q", name)

		byKey, ok := ByKey(src.Key)
		require.True(t, ok)
		assert.Equal(t, src, byKey)
	}

	_, ok := ByKey("nope")
	assert.False(t, ok)
	_, ok = ByName("nope")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	All()[0].Key = "mutated"
	_, ok := ByKey("mutated")
	assert.False(t, ok)
}
