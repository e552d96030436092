package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// LoadSuggestions reads the subreddit names offered in the input box.
// The first row is a header. Rows that do not look like a subreddit name are
// skipped; the input box itself accepts anything.
func LoadSuggestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSuggestions(f)
}

func ReadSuggestions(in io.Reader) ([]string, error) {
	r := csv.NewReader(stripBOM(in))
	r.FieldsPerRecord = -1

	var subs []string
	seen := make(map[string]bool)
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return subs, err
		}
		line++
		if line == 1 || len(record) == 0 {
			continue
		}

		sub := strings.TrimPrefix(strings.TrimSpace(record[0]), "r/")
		if !subNameRegex.MatchString(sub) || seen[strings.ToLower(sub)] {
			continue
		}
		seen[strings.ToLower(sub)] = true
		subs = append(subs, sub)
	}
	return subs, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
