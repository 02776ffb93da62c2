package loam

import (
	"context"
	"testing"

	"github.com/aretw0/chainalign/pkg/adapters/file"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(t.TempDir())
	require.NoError(t, err, "Failed to open library")
	return lib
}

func TestLibrary_SaveLoad(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()

	set := &file.ChainSet{Chains: [][]string{{"gpt-4", "tts-1"}, {"claude-3-haiku", "eleven_v3"}}}
	require.NoError(t, lib.Save(ctx, "speech", set, "Two ways to speak."))

	entry, err := lib.Load(ctx, "speech")
	require.NoError(t, err)
	assert.Equal(t, "speech", entry.Name)
	assert.Equal(t, "Two ways to speak.", entry.Note)
	assert.Equal(t, set.Chains, entry.Set.Chains)
}

func TestLibrary_Overwrite(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.Save(ctx, "draft", &file.ChainSet{Chains: [][]string{{"gpt-4"}}}, ""))
	require.NoError(t, lib.Save(ctx, "draft", &file.ChainSet{Chains: [][]string{{"dall-e-3"}}}, ""))

	entry, err := lib.Load(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"dall-e-3"}}, entry.Set.Chains)
}

func TestLibrary_List(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, lib.Save(ctx, name, &file.ChainSet{Chains: [][]string{{"gpt-4"}}}, ""))
	}

	names, err := lib.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestLibrary_Errors(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()

	_, err := lib.Load(ctx, "missing")
	assert.Error(t, err)

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		err := lib.Save(ctx, name, &file.ChainSet{}, "")
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestLibrary_RoundTripThroughRegistry(t *testing.T) {
	lib := newLibrary(t)
	ctx := context.Background()
	cat, err := catalog.Builtin()
	require.NoError(t, err)

	reg := registry.New(cat)
	doc := &file.ChainSet{Chains: [][]string{{"gpt-4", "tts-1"}, {"claude-3-haiku"}}}
	require.NoError(t, doc.Apply(reg))
	require.NoError(t, lib.Save(ctx, "pair", file.Capture(reg), ""))

	entry, err := lib.Load(ctx, "pair")
	require.NoError(t, err)

	restored := registry.New(cat)
	require.NoError(t, entry.Set.Apply(restored))
	assert.Equal(t, 2, restored.Len())
	assert.Equal(t, doc.Chains, file.Capture(restored).Chains)
}
