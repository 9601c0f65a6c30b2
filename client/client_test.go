package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevemurr/squirrel-server/client"
	"github.com/stevemurr/squirrel-server/handler"
	"github.com/stevemurr/squirrel-server/store"
)

func setup(t *testing.T) *client.Client {
	t.Helper()
	s, err := store.Open(store.Config{Backend: "memory"})
	require.NoError(t, err)
	ts := httptest.NewServer(handler.New(s))
	t.Cleanup(ts.Close)
	return client.New(ts.URL, ts.Client())
}

func TestClientRoundTrip(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	items, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	created, err := c.Create(ctx, "Chippy", "small")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	items, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, *created, items[0])

	require.NoError(t, c.Update(ctx, created.ID, "Chippy", "large"))
	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, store.Squirrel{ID: created.ID, Name: "Chippy", Size: "large"}, *got)

	require.NoError(t, c.Delete(ctx, created.ID))
	got, err = c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientNotFound(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.Update(ctx, "999", "Chippy", "large"), client.ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, "999"), client.ErrNotFound)
}

func TestClientCreateRejected(t *testing.T) {
	c := setup(t)
	_, err := c.Create(context.Background(), "", "small")
	require.Error(t, err)
}
