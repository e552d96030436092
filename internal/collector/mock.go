package collector

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/qepting91/subreddit-analyzer/internal/domain"
)

// MockClient implements domain.Collector but returns fake data.
// The subreddit "notfound" answers 404 so the error path can be demoed.
type MockClient struct {
	latency time.Duration
	authors []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		latency: 200 * time.Millisecond,
		authors: []string{"simulated_user", "[deleted]", "threat_hunter", "AutoModerator", "packet_sniffer"},
	}
}

func (mc *MockClient) CheckSubreddit(ctx context.Context, sub string) error {
	if err := mc.wait(ctx); err != nil {
		return err
	}
	if sub == "notfound" {
		return &domain.StatusError{Code: http.StatusNotFound}
	}
	return nil
}

func (mc *MockClient) FetchNewPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	if err := mc.wait(ctx); err != nil {
		return nil, err
	}

	var posts []domain.Post
	for i := 0; i < limit; i++ {
		posts = append(posts, domain.Post{
			ID:     fmt.Sprintf("mock_%s_%d", sub, i),
			Title:  fmt.Sprintf("[%s] Simulated Threat Intel Report #%d", sub, i),
			Author: "simulated_user",
		})
	}
	return posts, nil
}

func (mc *MockClient) FetchComments(ctx context.Context, sub, postID string) ([]domain.Comment, error) {
	if err := mc.wait(ctx); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, 3)
	for i := 0; i < 3; i++ {
		author := mc.authors[rand.Intn(len(mc.authors))]
		comments = append(comments, domain.Comment{
			Author: author,
			Body:   fmt.Sprintf("Simulated reply %d on %s", i, postID),
		})
	}
	return comments, nil
}

func (mc *MockClient) FetchUser(ctx context.Context, username string) (domain.UserProfile, error) {
	if err := mc.wait(ctx); err != nil {
		return domain.UserProfile{}, err
	}
	return domain.NewUserProfile(username, "Simulated account used for local testing", rand.Intn(5000), ""), nil
}

// wait simulates network latency
func (mc *MockClient) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(mc.latency):
		return nil
	}
}
