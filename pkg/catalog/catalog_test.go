package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUnits() []domain.Unit {
	return []domain.Unit{
		{ID: "gpt-4", Name: "GPT-4", Provider: "OpenAI", InputType: domain.MediaText, OutputType: domain.MediaText, Capabilities: []string{"coding"}},
		{ID: "tts-1", Name: "TTS-1", Provider: "OpenAI", InputType: domain.MediaText, OutputType: domain.MediaAudio},
		{ID: "whisper-1", Name: "Whisper", Provider: "openai", InputType: domain.MediaAudio, OutputType: domain.MediaText},
		{ID: "haiku", Name: "Claude 3 Haiku", Provider: "Anthropic", InputType: domain.MediaText, OutputType: domain.MediaText, Capabilities: []string{"coding", "vision"}},
	}
}

func TestNew(t *testing.T) {
	cat, err := New(testUnits())
	require.NoError(t, err)
	assert.Equal(t, 4, cat.Len())

	_, err = New(append(testUnits(), domain.Unit{ID: "gpt-4", Name: "Again", InputType: domain.MediaText, OutputType: domain.MediaText}))
	assert.ErrorIs(t, err, ErrDuplicateUnit)

	_, err = New([]domain.Unit{{ID: "x", Name: "X", InputType: "smell", OutputType: domain.MediaText}})
	assert.ErrorIs(t, err, domain.ErrUnknownMediaType)

	_, err = New([]domain.Unit{{Name: "nameless", InputType: domain.MediaText, OutputType: domain.MediaText}})
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cat, err := New(testUnits())
	require.NoError(t, err)

	u, err := cat.Resolve("tts-1")
	require.NoError(t, err)
	assert.Equal(t, "TTS-1", u.Name)

	u, err = cat.Resolve("Claude 3 Haiku")
	require.NoError(t, err)
	assert.Equal(t, "haiku", u.ID)

	_, err = cat.Resolve("gpt-5")
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)

	units, err := cat.ResolveAll([]string{"gpt-4", "TTS-1", "whisper-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"GPT-4", "TTS-1", "Whisper"}, domain.Names(units))

	_, err = cat.ResolveAll([]string{"gpt-4", "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)
}

func TestQueries(t *testing.T) {
	cat, err := New(testUnits())
	require.NoError(t, err)

	assert.Len(t, cat.Filter(Query{}), 4)
	assert.Equal(t, []string{"GPT-4", "TTS-1", "Claude 3 Haiku"}, domain.Names(cat.Filter(Query{Input: domain.MediaText})))
	assert.Equal(t, []string{"TTS-1"}, domain.Names(cat.Filter(Query{Input: domain.MediaText, Output: domain.MediaAudio})))
	assert.Empty(t, cat.Filter(Query{Input: domain.MediaVideo}))

	assert.True(t, cat.HasConsumer(domain.MediaAudio))
	assert.False(t, cat.HasConsumer(domain.MediaImage))
	assert.Equal(t, []string{"Whisper"}, domain.Names(cat.Consumers(domain.MediaAudio)))

	assert.Len(t, cat.ByProvider("OPENAI"), 3)
	assert.Equal(t, []string{"GPT-4", "Claude 3 Haiku"}, domain.Names(cat.ByCapability("coding")))
}

func TestUnitsReturnsCopy(t *testing.T) {
	cat, err := New(testUnits())
	require.NoError(t, err)

	units := cat.Units()
	units[0].Name = "mutated"

	u, ok := cat.ByID("gpt-4")
	require.True(t, ok)
	assert.Equal(t, "GPT-4", u.Name)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	cat, err := Load(ctx, ports.CatalogSourceFunc(func(context.Context) ([]domain.Unit, error) {
		return testUnits(), nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 4, cat.Len())

	boom := errors.New("unreachable")
	cat, err = Load(ctx, ports.CatalogSourceFunc(func(context.Context) ([]domain.Unit, error) {
		return nil, boom
	}))
	assert.Nil(t, cat)
	assert.ErrorIs(t, err, boom)
}

func TestBuiltin(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, 26, cat.Len())

	for _, id := range []string{"gpt-4", "tts-1", "whisper-1", "dall-e-3"} {
		_, ok := cat.ByID(id)
		assert.True(t, ok, "builtin catalog should contain %s", id)
	}

	assert.False(t, cat.HasConsumer(domain.MediaImage), "image chains end at the image model")
	assert.True(t, cat.HasConsumer(domain.MediaText))
	assert.True(t, cat.HasConsumer(domain.MediaAudio))
}
