package entity

import "time"

// Result ties a measurement value to the user that produced it.
// The value itself is unique across all records.
type Result struct {
	ID     int64     `json:"id" xml:"id"`
	Result int64     `json:"result" xml:"result"`
	UserID int64     `json:"user" xml:"user"`
	Time   time.Time `json:"time" xml:"time"`
}
