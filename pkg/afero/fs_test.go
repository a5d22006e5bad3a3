package afero

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefopt-project/prefopt/pkg/logging"
)

func TestAtomicFileUpdate(t *testing.T) {
	fs := NewMemMapFs()

	require.NoError(t, AtomicFileUpdate(fs, "out", "recipe.yaml", []byte("a: 1\n"), 0o644, logging.Discard()))

	data, err := ReadFile(fs, "out/recipe.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))

	// unchanged contents are left alone
	require.NoError(t, AtomicFileUpdate(fs, "out", "recipe.yaml", []byte("a: 1\n"), 0o644, logging.Discard()))

	// changed contents are replaced
	require.NoError(t, AtomicFileUpdate(fs, "out", "recipe.yaml", []byte("a: 2\n"), 0o644, logging.Discard()))
	data, err = ReadFile(fs, "out/recipe.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(data))
}

func TestExists(t *testing.T) {
	fs := NewMemMapFs()
	require.NoError(t, WriteFile(fs, "x/y.txt", []byte("y"), 0o644))

	ok, err := Exists(fs, "x/y.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(fs, "x/z.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}
