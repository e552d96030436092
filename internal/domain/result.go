package domain

// Result holds the users resolved during one run and their comments.
// Both maps always share the same key set; order keeps first-resolved order.
type Result struct {
	order    []string
	profiles map[string]UserProfile
	comments map[string][]CommentRecord
}

// Row is one line of the results table
type Row struct {
	Profile  UserProfile     `json:"profile"`
	Comments []CommentRecord `json:"comments"`
}

func NewResult() *Result {
	return &Result{
		profiles: make(map[string]UserProfile),
		comments: make(map[string][]CommentRecord),
	}
}

// Has reports whether username was resolved.
func (r *Result) Has(username string) bool {
	_, ok := r.profiles[username]
	return ok
}

// AddUser inserts a profile. An existing profile is kept.
func (r *Result) AddUser(p UserProfile) {
	if r.Has(p.Username) {
		return
	}
	r.order = append(r.order, p.Username)
	r.profiles[p.Username] = p
	r.comments[p.Username] = []CommentRecord{}
}

// AddComment appends c to a resolved author. Comments of unknown authors are ignored.
func (r *Result) AddComment(c CommentRecord) bool {
	if !r.Has(c.Author) {
		return false
	}
	r.comments[c.Author] = append(r.comments[c.Author], c)
	return true
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

func (r *Result) Profile(username string) (UserProfile, bool) {
	p, ok := r.profiles[username]
	return p, ok
}

func (r *Result) Comments(username string) []CommentRecord {
	return r.comments[username]
}

// Usernames returns the keys in first-resolved order.
func (r *Result) Usernames() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Rows returns the table rows in first-resolved order.
func (r *Result) Rows() []Row {
	if r == nil {
		return nil
	}
	rows := make([]Row, 0, len(r.order))
	for _, name := range r.order {
		cs := make([]CommentRecord, len(r.comments[name]))
		copy(cs, r.comments[name])
		rows = append(rows, Row{Profile: r.profiles[name], Comments: cs})
	}
	return rows
}
