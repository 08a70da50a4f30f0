package tracker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"grants-backend/internal/models"
)

// StatusBucket is one pipeline row: counts and monetary sums for a status.
type StatusBucket struct {
	Count          int64   `json:"count"`
	TotalRequested float64 `json:"total_requested"`
	TotalAwarded   float64 `json:"total_awarded"`
}

// PipelineSummary groups all grants by status with grand totals.
type PipelineSummary struct {
	ByStatus       map[models.GrantStatus]StatusBucket `json:"by_status"`
	TotalGrants    int64                               `json:"total_grants"`
	TotalRequested float64                             `json:"total_requested"`
	TotalAwarded   float64                             `json:"total_awarded"`
}

// ReportingEntry is one upcoming reporting obligation.
type ReportingEntry struct {
	GrantID       string   `json:"grant_id"`
	Title         string   `json:"title"`
	Funder        string   `json:"funder"`
	ReportingDate string   `json:"reporting_date"`
	AwardAmount   *float64 `json:"award_amount"`
}

// SuccessRateResult reports win rate among decided grants.
type SuccessRateResult struct {
	Funder      string  `json:"funder"`
	Submitted   int64   `json:"submitted"`
	Awarded     int64   `json:"awarded"`
	Rejected    int64   `json:"rejected"`
	SuccessRate float64 `json:"success_rate"`
}

// Pipeline summarizes every grant by status. Null award amounts count as zero;
// monetary sums are rounded to two decimals.
func (s *Service) Pipeline(ctx context.Context) (*PipelineSummary, error) {
	var rows []struct {
		Status    models.GrantStatus
		Count     int64
		Requested float64
		Awarded   float64
	}
	err := s.DB.WithContext(ctx).Model(&models.Grant{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS requested, COALESCE(SUM(COALESCE(award_amount, 0)), 0) AS awarded").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pipeline summary: %w", err)
	}

	summary := &PipelineSummary{ByStatus: make(map[models.GrantStatus]StatusBucket, len(rows))}
	var requested, awarded float64
	for _, r := range rows {
		summary.ByStatus[r.Status] = StatusBucket{
			Count:          r.Count,
			TotalRequested: round2(r.Requested),
			TotalAwarded:   round2(r.Awarded),
		}
		summary.TotalGrants += r.Count
		requested += r.Requested
		awarded += r.Awarded
	}
	summary.TotalRequested = round2(requested)
	summary.TotalAwarded = round2(awarded)
	return summary, nil
}

// ReportingCalendar flattens reporting dates of grants in reporting status
// into entries within [today, today + months*30d], sorted ascending. The
// 30-day month is a deliberate approximation.
func (s *Service) ReportingCalendar(ctx context.Context, months int) ([]ReportingEntry, error) {
	grants, err := s.List(ctx, ListFilter{Status: models.StatusReporting})
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format("2006-01-02")
	cutoff := time.Now().UTC().AddDate(0, 0, months*30).Format("2006-01-02")

	entries := make([]ReportingEntry, 0)
	for _, g := range grants {
		for _, rd := range g.ReportingDates {
			if rd >= today && rd <= cutoff {
				entries = append(entries, ReportingEntry{
					GrantID:       g.ID,
					Title:         g.Title,
					Funder:        g.Funder,
					ReportingDate: rd,
					AwardAmount:   g.AwardAmount,
				})
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ReportingDate < entries[j].ReportingDate
	})
	return entries, nil
}

// SuccessRate computes awarded / (awarded + rejected) among decided grants,
// rounded to three decimals; zero when nothing has been decided. An empty
// funder means all funders.
func (s *Service) SuccessRate(ctx context.Context, funder string) (*SuccessRateResult, error) {
	q := s.DB.WithContext(ctx).Model(&models.Grant{}).
		Where("status IN ?", []models.GrantStatus{models.StatusSubmitted, models.StatusAwarded, models.StatusRejected})
	if funder != "" {
		q = q.Where("funder = ?", funder)
	}
	var rows []struct {
		Status models.GrantStatus
		Count  int64
	}
	if err := q.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("success rate: %w", err)
	}

	result := &SuccessRateResult{Funder: funder}
	if result.Funder == "" {
		result.Funder = "all"
	}
	for _, r := range rows {
		switch r.Status {
		case models.StatusSubmitted:
			result.Submitted = r.Count
		case models.StatusAwarded:
			result.Awarded = r.Count
		case models.StatusRejected:
			result.Rejected = r.Count
		}
	}
	if decided := result.Awarded + result.Rejected; decided > 0 {
		result.SuccessRate = round3(float64(result.Awarded) / float64(decided))
	}
	return result, nil
}

// UpcomingDeadlines returns identified/applying grants whose deadline falls in
// [today, today + days], ordered by deadline ascending. Deadlines are calendar
// dates, so the window starts at midnight UTC to keep today's deadlines in.
func (s *Service) UpcomingDeadlines(ctx context.Context, days int) ([]models.Grant, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, days)
	var grants []models.Grant
	err := s.DB.WithContext(ctx).
		Where("deadline IS NOT NULL AND deadline BETWEEN ? AND ?", today, cutoff).
		Where("status IN ?", []models.GrantStatus{models.StatusIdentified, models.StatusApplying}).
		Order("deadline ASC").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("upcoming deadlines: %w", err)
	}
	return grants, nil
}

// FundingTotalsByType sums award amounts of awarded grants per grant type,
// rounded to two decimals.
func (s *Service) FundingTotalsByType(ctx context.Context) (map[models.GrantType]float64, error) {
	var rows []struct {
		Type  models.GrantType
		Total float64
	}
	err := s.DB.WithContext(ctx).Model(&models.Grant{}).
		Select("type, COALESCE(SUM(COALESCE(award_amount, 0)), 0) AS total").
		Where("status = ?", models.StatusAwarded).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("funding totals: %w", err)
	}
	totals := make(map[models.GrantType]float64, len(rows))
	for _, r := range rows {
		totals[r.Type] = round2(r.Total)
	}
	return totals, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
