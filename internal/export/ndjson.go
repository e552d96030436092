package export

import (
	"encoding/json"
	"io"

	"github.com/qepting91/subreddit-analyzer/internal/domain"
)

// Record is one exported line: a user and the comments attributed to them.
type Record struct {
	Subreddit string                 `json:"subreddit"`
	User      domain.UserProfile     `json:"user"`
	Comments  []domain.CommentRecord `json:"comments"`
}

// WriteNDJSON writes one JSON object per row, in row order.
func WriteNDJSON(w io.Writer, subreddit string, rows []domain.Row) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		rec := Record{Subreddit: subreddit, User: row.Profile, Comments: row.Comments}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
