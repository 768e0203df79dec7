package domain

import "time"

// Note represents a user note
type Note struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Note content limits enforced on create.
const (
	NoteTitleMaxLen   = 200
	NoteContentMaxLen = 4000
)
