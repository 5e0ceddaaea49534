package favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity/internal/modules/live"
	"productivity/internal/repository"
)

type recordingPublisher struct {
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, ev live.Event) {
	p.types = append(p.types, ev.Type)
}

func TestService_Events(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewService(repository.NewMemoryStore(), pub)

	_, err := svc.Add(ctx, "tip")
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, "tip"))
	// Nothing left to remove: no event.
	require.NoError(t, svc.Remove(ctx, "tip"))

	res, err := svc.Toggle(ctx, "tip")
	require.NoError(t, err)
	assert.Equal(t, ActionAdded, res.Action)
	res, err = svc.Toggle(ctx, "tip")
	require.NoError(t, err)
	assert.Equal(t, ActionRemoved, res.Action)
	assert.Nil(t, res.Favorite)

	assert.Equal(t, []string{
		live.EventFavoriteAdded,
		live.EventFavoriteRemoved,
		live.EventFavoriteAdded,
		live.EventFavoriteRemoved,
	}, pub.types)
}

func TestService_ListWithoutFilterReturnsAll(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewService(store, nil)
	_, err := svc.Add(ctx, "a")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "a")
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_ListWithEmptyFilterReturnsNone(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repository.NewMemoryStore(), nil)
	_, err := svc.Add(ctx, "a")
	require.NoError(t, err)

	none, err := svc.List(ctx, []string{})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}
