package model

// Category groups tasks. Names are unique per user, case-insensitively;
// the server enforces this, the client pre-checks for fast feedback.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
