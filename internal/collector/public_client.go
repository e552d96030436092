package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
	"github.com/qepting91/subreddit-analyzer/internal/metrics"
	"golang.org/x/time/rate"
)

// PublicClient reads the unauthenticated .json endpoints.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

type listingResponse struct {
	Data *struct {
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				ID     string `json:"id"`
				Title  string `json:"title"`
				Author string `json:"author"`
				Body   string `json:"body"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type userResponse struct {
	Data *struct {
		Name      string `json:"name"`
		LinkKarma int    `json:"link_karma"`
		IconImg   string `json:"icon_img"`
		Subreddit *struct {
			Description string `json:"description"`
		} `json:"subreddit"`
	} `json:"data"`
}

func NewPublicClient(httpClient *http.Client, limiter *rate.Limiter, baseURL, userAgent string) *PublicClient {
	return &PublicClient{
		httpClient: httpClient,
		limiter:    limiter,
		userAgent:  userAgent,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (pc *PublicClient) CheckSubreddit(ctx context.Context, sub string) error {
	resp, err := pc.get(ctx, fmt.Sprintf("/r/%s/about.json", url.PathEscape(sub)))
	if err == nil {
		resp.Body.Close()
	}
	metrics.ObserveFetch(metrics.EndpointAbout, err)
	return err
}

func (pc *PublicClient) FetchNewPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	var listing listingResponse
	err := pc.getJSON(ctx, fmt.Sprintf("/r/%s/new.json?limit=%d", url.PathEscape(sub), limit), &listing)
	if err == nil && (listing.Data == nil || listing.Data.Children == nil) {
		err = errors.Wrap(domain.ErrMalformed, "listing has no data.children")
	}
	metrics.ObserveFetch(metrics.EndpointListing, err)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, domain.Post{ID: d.ID, Title: d.Title, Author: d.Author})
	}
	return posts, nil
}

// FetchComments returns the top-level comments of a post. The endpoint
// answers with two listings: the post itself and its comment tree.
func (pc *PublicClient) FetchComments(ctx context.Context, sub, postID string) ([]domain.Comment, error) {
	var listings []listingResponse
	path := fmt.Sprintf("/r/%s/comments/%s.json", url.PathEscape(sub), url.PathEscape(postID))
	err := pc.getJSON(ctx, path, &listings)
	if err == nil && (len(listings) < 2 || listings[1].Data == nil || listings[1].Data.Children == nil) {
		err = errors.Wrapf(domain.ErrMalformed, "comment tree of %s", postID)
	}
	metrics.ObserveFetch(metrics.EndpointComments, err)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(listings[1].Data.Children))
	for _, child := range listings[1].Data.Children {
		comments = append(comments, domain.Comment{Author: child.Data.Author, Body: child.Data.Body})
	}
	return comments, nil
}

func (pc *PublicClient) FetchUser(ctx context.Context, username string) (domain.UserProfile, error) {
	var user userResponse
	err := pc.getJSON(ctx, fmt.Sprintf("/user/%s/about.json", url.PathEscape(username)), &user)
	metrics.ObserveFetch(metrics.EndpointUser, err)
	if err != nil {
		return domain.UserProfile{}, err
	}

	var bio, icon string
	var karma int
	if d := user.Data; d != nil {
		karma = d.LinkKarma
		icon = d.IconImg
		if d.Subreddit != nil {
			bio = d.Subreddit.Description
		}
	}
	return domain.NewUserProfile(username, bio, karma, icon), nil
}

func (pc *PublicClient) getJSON(ctx context.Context, path string, out any) error {
	resp, err := pc.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(domain.ErrMalformed, "decode %s: %v", path, err)
	}
	return nil
}

// get issues the request and returns the response only for a 200 answer.
// The caller closes the body.
func (pc *PublicClient) get(ctx context.Context, path string) (*http.Response, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pc.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", pc.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", path)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &domain.StatusError{Code: resp.StatusCode}
	}
	return resp, nil
}
