package models

import "time"

// PredictionRecord is one stored prediction. Probabilities and Features hold
// JSON text as written by the service layer.
type PredictionRecord struct {
	ID            string
	Model         string
	Class         int
	Label         string
	Probabilities string
	Features      string
	CreatedAt     time.Time
}
