package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
	"github.com/qepting91/subreddit-analyzer/internal/metrics"
)

// PostLimit is the number of newest posts inspected per run.
const PostLimit = 10

// Failures that end a run. Their text is shown to the user as is.
var (
	ErrSubredditNotFound = errors.New("subreddit not found")
	ErrPostsUnavailable  = errors.New("could not fetch posts")
	ErrInvalidData       = errors.New("invalid data received")
	ErrNoUsers           = errors.New("no users found in this subreddit")
)

const unknownFailure = "an unknown error occurred"

// Authors whose comments are never attributed.
var excludedAuthors = map[string]bool{
	"[deleted]":     true,
	"AutoModerator": true,
}

// Message is the user-visible text for a failed run.
func Message(err error) string {
	if err == nil || err.Error() == "" {
		return unknownFailure
	}
	return err.Error()
}

type Pipeline struct {
	collector domain.Collector
	logger    *slog.Logger
}

func NewPipeline(collector domain.Collector, logger *slog.Logger) *Pipeline {
	return &Pipeline{collector: collector, logger: logger}
}

// Run fetches the newest posts of sub and resolves every commenter.
// Requests are issued one after another; a failing post or author is
// logged and skipped, anything else ends the run.
func (p *Pipeline) Run(ctx context.Context, sub string) (*domain.Result, error) {
	log := p.logger.With("run", uuid.NewString(), "subreddit", sub)
	start := time.Now()

	result, err := p.run(ctx, log, sub)

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Runs.WithLabelValues("failed").Inc()
		log.Error("run failed", "error", err)
		return nil, err
	}
	metrics.Runs.WithLabelValues("ok").Inc()
	log.Info("run complete", "users", result.Len(), "elapsed", time.Since(start).String())
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, sub string) (*domain.Result, error) {
	if err := p.collector.CheckSubreddit(ctx, sub); err != nil {
		if domain.IsStatus(err) {
			return nil, ErrSubredditNotFound
		}
		return nil, err
	}

	posts, err := p.collector.FetchNewPosts(ctx, sub, PostLimit)
	switch {
	case err == nil:
	case domain.IsStatus(err):
		return nil, ErrPostsUnavailable
	case errors.Is(err, domain.ErrMalformed):
		return nil, ErrInvalidData
	default:
		return nil, err
	}
	log.Debug("fetched posts", "count", len(posts))

	acc := newAccumulator()
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		acc = p.foldPost(ctx, log, sub, post, acc)
	}

	if acc.result.Len() == 0 {
		return nil, ErrNoUsers
	}
	return acc.result, nil
}

// accumulator carries the state of one run through the folds. An author
// whose profile fetch failed is not recorded, so a later comment retries it.
type accumulator struct {
	result *domain.Result
}

func newAccumulator() accumulator {
	return accumulator{result: domain.NewResult()}
}

// outcome is the per-item result consumed by the folds.
type outcome[T any] struct {
	value T
	err   error
}

func (o outcome[T]) skipped() bool { return o.err != nil }

func (p *Pipeline) foldPost(ctx context.Context, log *slog.Logger, sub string, post domain.Post, acc accumulator) accumulator {
	comments := p.fetchComments(ctx, sub, post.ID)
	if comments.skipped() {
		metrics.Skips.WithLabelValues("post").Inc()
		log.Warn("skipping post", "post", post.ID, "error", comments.err)
		return acc
	}

	for _, c := range comments.value {
		acc = p.foldComment(ctx, log, c, acc)
	}
	return acc
}

func (p *Pipeline) foldComment(ctx context.Context, log *slog.Logger, c domain.Comment, acc accumulator) accumulator {
	author := c.Author
	if author == "" || excludedAuthors[author] {
		return acc
	}

	if !acc.result.Has(author) {
		profile := p.fetchUser(ctx, author)
		if profile.skipped() {
			metrics.Skips.WithLabelValues("author").Inc()
			log.Warn("skipping author", "author", author, "error", profile.err)
			return acc
		}
		profile.value.Username = author
		acc.result.AddUser(profile.value)
	}

	acc.result.AddComment(domain.NewCommentRecord(author, c.Body))
	return acc
}

func (p *Pipeline) fetchComments(ctx context.Context, sub, postID string) outcome[[]domain.Comment] {
	comments, err := p.collector.FetchComments(ctx, sub, postID)
	return outcome[[]domain.Comment]{value: comments, err: err}
}

func (p *Pipeline) fetchUser(ctx context.Context, username string) outcome[domain.UserProfile] {
	profile, err := p.collector.FetchUser(ctx, username)
	return outcome[domain.UserProfile]{value: profile, err: err}
}
