package progress

import "time"

// AnswerRecord is one answered question in the answer history.
type AnswerRecord struct {
	ID         int64 // assigned by the store
	Sequence   int64 // assigned by the store
	RunID      string
	Position   int
	QuestionID int
	Key        string
	Points     int
	AnsweredAt time.Time
}
