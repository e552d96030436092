package collector

import (
	"context"
	"testing"

	"github.com/qepting91/subreddit-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient(t *testing.T) {
	mc := NewMockClient()
	mc.latency = 0
	ctx := context.Background()

	assert.True(t, domain.IsStatus(mc.CheckSubreddit(ctx, "notfound")))
	require.NoError(t, mc.CheckSubreddit(ctx, "golang"))

	posts, err := mc.FetchNewPosts(ctx, "golang", 10)
	require.NoError(t, err)
	assert.Len(t, posts, 10)

	comments, err := mc.FetchComments(ctx, "golang", posts[0].ID)
	require.NoError(t, err)
	assert.Len(t, comments, 3)

	user, err := mc.FetchUser(ctx, "threat_hunter")
	require.NoError(t, err)
	assert.Equal(t, "threat_hunter", user.Username)
}

func TestMockClient_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockClient().FetchNewPosts(ctx, "golang", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
