package domain

import "time"

type ID string

// Post is immutable once created; there is no edit or delete path.
type Post struct {
	ID          ID
	Title       string
	Author      string
	Description string
	CreatedAt   time.Time
}
