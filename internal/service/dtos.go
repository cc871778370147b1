package service

import (
	"time"

	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/model"
)

type PredictionResult struct {
	ID            string
	Model         model.Name
	Class         int
	Label         string
	Probabilities []float64
	Features      features.FeatureVector
	Input         features.RawInput
	CreatedAt     time.Time
}

func (r PredictionResult) Satisfied() bool {
	return r.Label == model.LabelSatisfied
}

type Airline struct {
	Rank    int
	Name    string
	Country string
}

type TrendPoint struct {
	Year int
	Rate float64
}

type IssueCount struct {
	Issue     string
	Frequency int
}

type Dashboard struct {
	TopAirlines       []Airline
	SatisfactionTrend []TrendPoint
	CommonIssues      []IssueCount
}

type PredictionRecord struct {
	ID            string
	Model         string
	Class         int
	Label         string
	Probabilities []float64
	Features      features.FeatureVector
	CreatedAt     time.Time
}

type History struct {
	Records     []PredictionRecord
	LabelCounts map[string]int64
}
