package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/godilite/airsat-server/internal/repository/models"
)

type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// GetTopAirlines returns the ranked airline table.
func (s *DashboardRepository) GetTopAirlines(ctx context.Context) ([]models.Airline, error) {
	const query = `SELECT rank, name, country FROM airlines ORDER BY rank`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query GetTopAirlines: %w", err)
	}
	defer rows.Close()

	var results []models.Airline
	for rows.Next() {
		var a models.Airline
		if err := rows.Scan(&a.Rank, &a.Name, &a.Country); err != nil {
			return nil, fmt.Errorf("scan GetTopAirlines row: %w", err)
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetTopAirlines: %w", err)
	}
	return results, nil
}

// GetSatisfactionTrend returns the yearly satisfaction rate, oldest first.
func (s *DashboardRepository) GetSatisfactionTrend(ctx context.Context) ([]models.TrendPoint, error) {
	const query = `SELECT year, rate FROM satisfaction_trend ORDER BY year`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query GetSatisfactionTrend: %w", err)
	}
	defer rows.Close()

	var results []models.TrendPoint
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Year, &p.Rate); err != nil {
			return nil, fmt.Errorf("scan GetSatisfactionTrend row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetSatisfactionTrend: %w", err)
	}
	return results, nil
}

// GetCommonIssues returns complaint counts, most frequent first.
func (s *DashboardRepository) GetCommonIssues(ctx context.Context) ([]models.IssueCount, error) {
	const query = `SELECT issue, frequency FROM passenger_issues ORDER BY frequency DESC, issue`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query GetCommonIssues: %w", err)
	}
	defer rows.Close()

	var results []models.IssueCount
	for rows.Next() {
		var c models.IssueCount
		if err := rows.Scan(&c.Issue, &c.Frequency); err != nil {
			return nil, fmt.Errorf("scan GetCommonIssues row: %w", err)
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetCommonIssues: %w", err)
	}
	return results, nil
}
