package chainalign_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/chainalign"
	"github.com/aretw0/chainalign/pkg/adapters/memory"
	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/aretw0/chainalign/pkg/ports"
	"github.com/aretw0/chainalign/pkg/registry"
	"github.com/aretw0/chainalign/pkg/session"
	"github.com/aretw0/chainalign/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BuiltinCatalog(t *testing.T) {
	c, err := chainalign.New(context.Background())
	require.NoError(t, err)

	assert.NotZero(t, c.Catalog().Len())
	assert.Equal(t, 1, c.Chains().Len())
	assert.NotEmpty(t, chainalign.Version)
}

func TestNew_CatalogSource(t *testing.T) {
	src := memory.NewSource(
		domain.Unit{ID: "a", Name: "A", InputType: domain.MediaText, OutputType: domain.MediaText},
		domain.Unit{ID: "b", Name: "B", InputType: domain.MediaText, OutputType: domain.MediaAudio},
	)

	c, err := chainalign.New(context.Background(), chainalign.WithCatalogSource(src))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Catalog().Len())

	failing := ports.CatalogSourceFunc(func(ctx context.Context) ([]domain.Unit, error) {
		return nil, errors.New("offline")
	})
	_, err = chainalign.New(context.Background(), chainalign.WithCatalogSource(failing))
	assert.ErrorContains(t, err, "offline")
}

func TestComposeAndSubmit(t *testing.T) {
	ctx := context.Background()
	svc := session.NewService(session.NewManager(memory.NewStore()), session.WithSeed(1))

	c, err := chainalign.New(ctx, chainalign.WithSessionService(svc))
	require.NoError(t, err)

	first := c.Chains().Active()
	require.NoError(t, c.Compose(first, "gpt-4", "tts-1"))
	second := c.Chains().AddChain()
	require.NoError(t, c.Compose(second, "Claude 3 Haiku"))

	report := c.Validate()
	require.False(t, report.Valid)
	assert.Contains(t, report.Messages(), "Chain 2 has inconsistent output type: expected audio but got text")

	_, err = c.Submit(ctx)
	var agg *validation.AggregateError
	require.ErrorAs(t, err, &agg)

	require.NoError(t, c.Compose(second, "Claude 3 Haiku", "eleven_v3"))
	require.True(t, c.Validate().Valid)

	resp, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.NumChains)
	assert.NotEmpty(t, resp.SessionID)
}

func TestCompose_UnknownUnit(t *testing.T) {
	c, err := chainalign.New(context.Background())
	require.NoError(t, err)

	err = c.Compose(c.Chains().Active(), "gpt-4", "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)

	require.NoError(t, c.Compose(c.Chains().Active(), "gpt-4"))
	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, registry.ErrNoService)
}
