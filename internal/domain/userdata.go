package domain

import "time"

// UserDataEntry is one row of the per-account key-value store. At most one
// entry exists per (AccountID, Key); writes replace the value in place.
type UserDataEntry struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Key       string    `json:"key"`
	ValueJSON string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserDataValue is the decoded API shape of a stored entry. Value is null when
// the stored JSON cannot be decoded, keeping reads available over corrupt rows.
type UserDataValue struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updated_at"`
}
