package domain

import (
	"context"
	"errors"
	"fmt"
)

const (
	BioPlaceholder     = "No bio available"
	CommentPlaceholder = "No comment text available"
)

// Post is a submission from a subreddit listing
type Post struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Comment is a top-level reply on a post
type Comment struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// UserProfile is the public profile of a commenter
type UserProfile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	PostKarma int    `json:"post_karma"`
	IconImage string `json:"icon_img,omitempty"`
}

// CommentRecord is a comment attributed to a resolved user
type CommentRecord struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// NewUserProfile applies the fallbacks for missing profile fields.
func NewUserProfile(username, bio string, karma int, icon string) UserProfile {
	if bio == "" {
		bio = BioPlaceholder
	}
	return UserProfile{Username: username, Bio: bio, PostKarma: karma, IconImage: icon}
}

// NewCommentRecord applies the fallback for an empty body.
func NewCommentRecord(author, body string) CommentRecord {
	if body == "" {
		body = CommentPlaceholder
	}
	return CommentRecord{Author: author, Body: body}
}

// Collector defines the interface for data fetching
type Collector interface {
	CheckSubreddit(ctx context.Context, subreddit string) error
	FetchNewPosts(ctx context.Context, subreddit string, limit int) ([]Post, error)
	FetchComments(ctx context.Context, subreddit, postID string) ([]Comment, error)
	FetchUser(ctx context.Context, username string) (UserProfile, error)
}

// ErrMalformed is returned when a response decodes but lacks the expected shape.
var ErrMalformed = errors.New("malformed response")

// StatusError reports a non-200 answer from the remote service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("reddit returned status %d", e.Code)
}

// IsStatus reports whether err carries a non-success status.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
