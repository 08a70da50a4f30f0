package tracker

import (
	"context"
	"testing"
	"time"

	"grants-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Totals(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	identifyGrant(t, s, IdentifyInput{Title: "A", Funder: "NSF", Amount: 100000, Type: models.TypeFederal})
	identifyGrant(t, s, IdentifyInput{Title: "B", Funder: "Gates", Amount: 200000, Type: models.TypeFoundation})

	summary, err := s.Pipeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalGrants)
	assert.Equal(t, 300000.00, summary.TotalRequested)
	assert.Equal(t, 0.00, summary.TotalAwarded)
	assert.Equal(t, int64(2), summary.ByStatus[models.StatusIdentified].Count)
}

func TestPipeline_AwardedSums(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	g1 := identifyGrant(t, s, IdentifyInput{Title: "A", Funder: "NSF", Amount: 100000, Type: models.TypeFederal})
	identifyGrant(t, s, IdentifyInput{Title: "B", Funder: "Gates", Amount: 50000, Type: models.TypeFoundation})

	amount := 80000.0
	_, err := s.Award(ctx, g1.ID, &amount, nil)
	require.NoError(t, err)

	summary, err := s.Pipeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalGrants)
	assert.Equal(t, 150000.00, summary.TotalRequested)
	assert.Equal(t, 80000.00, summary.TotalAwarded)
	assert.Equal(t, int64(1), summary.ByStatus[models.StatusAwarded].Count)
	assert.Equal(t, 80000.00, summary.ByStatus[models.StatusAwarded].TotalAwarded)
}

func TestSuccessRate_OneAwardedOneRejected(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	g1 := identifyGrant(t, s, IdentifyInput{Title: "A", Funder: "NSF", Amount: 1, Type: models.TypeFederal})
	g2 := identifyGrant(t, s, IdentifyInput{Title: "B", Funder: "NSF", Amount: 2, Type: models.TypeFederal})
	_, err := s.Award(ctx, g1.ID, nil, nil)
	require.NoError(t, err)
	_, err = s.Reject(ctx, g2.ID, "")
	require.NoError(t, err)

	result, err := s.SuccessRate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "all", result.Funder)
	assert.Equal(t, int64(0), result.Submitted)
	assert.Equal(t, int64(1), result.Awarded)
	assert.Equal(t, int64(1), result.Rejected)
	assert.Equal(t, 0.5, result.SuccessRate)
}

func TestSuccessRate_NoDecidedGrants(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	identifyGrant(t, s, IdentifyInput{Title: "A", Funder: "NSF", Amount: 1, Type: models.TypeFederal})

	result, err := s.SuccessRate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.SuccessRate)
	assert.Equal(t, int64(0), result.Awarded)
	assert.Equal(t, int64(0), result.Rejected)
}

func TestSuccessRate_FunderFilter(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	g1 := identifyGrant(t, s, IdentifyInput{Title: "A", Funder: "NSF", Amount: 1, Type: models.TypeFederal})
	g2 := identifyGrant(t, s, IdentifyInput{Title: "B", Funder: "Gates", Amount: 2, Type: models.TypeFoundation})
	_, err := s.Award(ctx, g1.ID, nil, nil)
	require.NoError(t, err)
	_, err = s.Reject(ctx, g2.ID, "")
	require.NoError(t, err)

	result, err := s.SuccessRate(ctx, "NSF")
	require.NoError(t, err)
	assert.Equal(t, "NSF", result.Funder)
	assert.Equal(t, int64(1), result.Awarded)
	assert.Equal(t, int64(0), result.Rejected)
	assert.Equal(t, 1.0, result.SuccessRate)
}

func TestUpcomingDeadlines_Window(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	in7 := time.Now().UTC().AddDate(0, 0, 7)
	in60 := time.Now().UTC().AddDate(0, 0, 60)
	near := identifyGrant(t, s, IdentifyInput{Title: "Near", Funder: "NSF", Amount: 1, Type: models.TypeFederal, Deadline: &in7})
	identifyGrant(t, s, IdentifyInput{Title: "Far", Funder: "NSF", Amount: 2, Type: models.TypeFederal, Deadline: &in60})
	identifyGrant(t, s, IdentifyInput{Title: "NoDeadline", Funder: "NSF", Amount: 3, Type: models.TypeFederal})

	// a submitted grant inside the window is excluded
	submittedSoon := identifyGrant(t, s, IdentifyInput{Title: "Submitted", Funder: "NSF", Amount: 4, Type: models.TypeFederal, Deadline: &in7})
	_, err := s.Submit(ctx, submittedSoon.ID, SubmitInput{})
	require.NoError(t, err)

	grants, err := s.UpcomingDeadlines(ctx, 30)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, near.ID, grants[0].ID)
}

func TestUpcomingDeadlines_IncludesTodayAndWindowEdge(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEdge := today.AddDate(0, 0, 30)
	dayPast := today.AddDate(0, 0, 31)

	dueToday := identifyGrant(t, s, IdentifyInput{Title: "Due Today", Funder: "NSF", Amount: 1, Type: models.TypeFederal, Deadline: &today})
	atEdge := identifyGrant(t, s, IdentifyInput{Title: "At Edge", Funder: "NSF", Amount: 2, Type: models.TypeFederal, Deadline: &windowEdge})
	identifyGrant(t, s, IdentifyInput{Title: "Past Edge", Funder: "NSF", Amount: 3, Type: models.TypeFederal, Deadline: &dayPast})

	grants, err := s.UpcomingDeadlines(ctx, 30)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, dueToday.ID, grants[0].ID)
	assert.Equal(t, atEdge.ID, grants[1].ID)
}

func TestReportingCalendar(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	inWindow1 := time.Now().UTC().AddDate(0, 0, 20).Format("2006-01-02")
	inWindow2 := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")
	outOfWindow := time.Now().UTC().AddDate(0, 0, 200).Format("2006-01-02")

	g := identifyGrant(t, s, IdentifyInput{Title: "Reporting Grant", Funder: "NSF", Amount: 100, Type: models.TypeFederal})
	_, err := s.Award(ctx, g.ID, nil, []string{inWindow1, inWindow2, outOfWindow})
	require.NoError(t, err)
	_, err = s.StartReporting(ctx, g.ID)
	require.NoError(t, err)

	// awarded but not yet reporting: excluded
	other := identifyGrant(t, s, IdentifyInput{Title: "Awarded Grant", Funder: "NSF", Amount: 100, Type: models.TypeFederal})
	_, err = s.Award(ctx, other.ID, nil, []string{inWindow1})
	require.NoError(t, err)

	entries, err := s.ReportingCalendar(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, inWindow2, entries[0].ReportingDate) // sorted ascending
	assert.Equal(t, inWindow1, entries[1].ReportingDate)
	assert.Equal(t, g.ID, entries[0].GrantID)
	assert.Equal(t, "Reporting Grant", entries[0].Title)
	require.NotNil(t, entries[0].AwardAmount)
	assert.Equal(t, 100.0, *entries[0].AwardAmount)
}

func TestFundingTotalsByType(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	fed1 := identifyGrant(t, s, IdentifyInput{Title: "A", Funder: "NSF", Amount: 100000, Type: models.TypeFederal})
	fed2 := identifyGrant(t, s, IdentifyInput{Title: "B", Funder: "DOE", Amount: 50000, Type: models.TypeFederal})
	state := identifyGrant(t, s, IdentifyInput{Title: "C", Funder: "Texas", Amount: 75000, Type: models.TypeState})
	identifyGrant(t, s, IdentifyInput{Title: "D", Funder: "Gates", Amount: 500000, Type: models.TypeFoundation})

	a1 := 90000.0
	_, err := s.Award(ctx, fed1.ID, &a1, nil)
	require.NoError(t, err)
	_, err = s.Award(ctx, fed2.ID, nil, nil)
	require.NoError(t, err)
	_, err = s.Award(ctx, state.ID, nil, nil)
	require.NoError(t, err)

	totals, err := s.FundingTotalsByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, 140000.00, totals[models.TypeFederal])
	assert.Equal(t, 75000.00, totals[models.TypeState])
	_, present := totals[models.TypeFoundation]
	assert.False(t, present)
}
