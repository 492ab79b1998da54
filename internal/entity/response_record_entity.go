package entity

import (
	"time"
)

// ResponseRecord is one stored (question, answer) pair for a user, written
// once per chat turn or saved assessment answer and never updated. Ordering
// by descending Id approximates recency.
type ResponseRecord struct {
	Id           uint
	UserEmail    string
	QuestionId   *int
	QuestionText string
	Response     string
	CreatedAt    time.Time
}
