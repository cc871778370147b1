package models

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
