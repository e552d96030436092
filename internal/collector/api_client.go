package collector

import (
	"context"
	"net/http"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/pkg/errors"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
	"github.com/qepting91/subreddit-analyzer/internal/metrics"
	"golang.org/x/time/rate"
)

// APIClient uses the authenticated OAuth API. The API does not expose the
// profile description, so every profile it returns carries the bio placeholder.
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewAPIClient(httpClient *http.Client, limiter *rate.Limiter, id, secret, user, pass, userAgent string) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent), reddit.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	return &APIClient{client: client, limiter: limiter}, nil
}

func (ac *APIClient) CheckSubreddit(ctx context.Context, sub string) error {
	if err := ac.limiter.Wait(ctx); err != nil {
		return err
	}
	_, _, err := ac.client.Subreddit.Get(ctx, sub)
	err = apiError(err, "get subreddit")
	metrics.ObserveFetch(metrics.EndpointAbout, err)
	return err
}

func (ac *APIClient) FetchNewPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.NewPosts(ctx, sub, &reddit.ListOptions{Limit: limit})
	err = apiError(err, "new posts")
	metrics.ObserveFetch(metrics.EndpointListing, err)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		result = append(result, domain.Post{ID: p.ID, Title: p.Title, Author: p.Author})
	}
	return result, nil
}

func (ac *APIClient) FetchComments(ctx context.Context, sub, postID string) ([]domain.Comment, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pc, _, err := ac.client.Post.Get(ctx, postID)
	if err == nil && pc == nil {
		err = errors.Wrapf(domain.ErrMalformed, "post %s", postID)
	}
	err = apiError(err, "get post")
	metrics.ObserveFetch(metrics.EndpointComments, err)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(pc.Comments))
	for _, c := range pc.Comments {
		comments = append(comments, domain.Comment{Author: c.Author, Body: c.Body})
	}
	return comments, nil
}

func (ac *APIClient) FetchUser(ctx context.Context, username string) (domain.UserProfile, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return domain.UserProfile{}, err
	}

	u, _, err := ac.client.User.Get(ctx, username)
	err = apiError(err, "get user")
	metrics.ObserveFetch(metrics.EndpointUser, err)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return domain.NewUserProfile(username, "", u.PostKarma, ""), nil
}

// apiError turns go-reddit's error responses into StatusError.
func apiError(err error, op string) error {
	if err == nil {
		return nil
	}
	var resp *reddit.ErrorResponse
	if errors.As(err, &resp) && resp.Response != nil {
		return &domain.StatusError{Code: resp.Response.StatusCode}
	}
	return errors.Wrap(err, op)
}
