package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/qepting91/subreddit-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNDJSON(t *testing.T) {
	r := domain.NewResult()
	r.AddUser(domain.NewUserProfile("alice", "", 3, ""))
	r.AddComment(domain.NewCommentRecord("alice", "one"))
	r.AddUser(domain.NewUserProfile("bob", "bio", 5, ""))
	r.AddComment(domain.NewCommentRecord("bob", "two"))

	var buf bytes.Buffer
	require.NoError(t, WriteNDJSON(&buf, "golang", r.Rows()))

	var got []Record
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		got = append(got, rec)
	}

	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].User.Username)
	assert.Equal(t, "golang", got[0].Subreddit)
	assert.Equal(t, "two", got[1].Comments[0].Body)
}

func TestWriteNDJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSON(&buf, "golang", nil))
	assert.Zero(t, buf.Len())
}
