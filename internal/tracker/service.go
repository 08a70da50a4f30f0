package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grants-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the grant lifecycle: transitions, submissions, notes and the
// analytics queries. It holds the injected store handle for its lifetime.
type Service struct {
	DB *gorm.DB
}

type IdentifyInput struct {
	Title        string
	Funder       string
	Amount       float64
	Type         models.GrantType // defaults to foundation when empty
	Deadline     *time.Time
	Purpose      string
	Requirements []string
	Contacts     []string
	AssignedTo   string
}

type SubmitInput struct {
	Notes       string
	SubmittedBy string
	Documents   []string
}

// ListFilter narrows List results. Zero values mean no filter.
type ListFilter struct {
	Status models.GrantStatus
	Type   models.GrantType
	Funder string
}

// Identify records a newly identified grant opportunity in state identified.
func (s *Service) Identify(ctx context.Context, in IdentifyInput) (*models.Grant, error) {
	grantType := in.Type
	if grantType == "" {
		grantType = models.TypeFoundation
	}
	if !grantType.Valid() {
		return nil, fmt.Errorf("unknown grant type %q", grantType)
	}

	now := time.Now().UTC()
	grant := &models.Grant{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Funder:         in.Funder,
		Amount:         in.Amount,
		Type:           grantType,
		Purpose:        in.Purpose,
		Deadline:       in.Deadline,
		Status:         models.StatusIdentified,
		Requirements:   jsonList(in.Requirements),
		ReportingDates: jsonList(nil),
		Contacts:       jsonList(in.Contacts),
		AssignedTo:     in.AssignedTo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.DB.WithContext(ctx).Create(grant).Error; err != nil {
		return nil, fmt.Errorf("create grant: %w", err)
	}
	return grant, nil
}

// Get returns the grant or ErrGrantNotFound.
func (s *Service) Get(ctx context.Context, grantID string) (*models.Grant, error) {
	var grant models.Grant
	err := s.DB.WithContext(ctx).Where("id = ?", grantID).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGrantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get grant: %w", err)
	}
	return &grant, nil
}

// List returns grants matching the filter, ordered by deadline ascending
// (nulls per the store's native ordering).
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Grant, error) {
	q := s.DB.WithContext(ctx).Model(&models.Grant{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Funder != "" {
		q = q.Where("funder = ?", f.Funder)
	}
	var grants []models.Grant
	if err := q.Order("deadline ASC").Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	return grants, nil
}

// Apply moves the grant to applying, optionally attaching notes.
func (s *Service) Apply(ctx context.Context, grantID, notes string) (*models.Grant, error) {
	return s.transition(ctx, grantID, models.StatusApplying, notes)
}

// Submit inserts a submission record and moves the grant to submitted. The two
// writes share one transaction: a failed insert leaves the status untouched.
func (s *Service) Submit(ctx context.Context, grantID string, in SubmitInput) (*models.Grant, error) {
	grant, err := s.Get(ctx, grantID)
	if err != nil {
		return nil, err
	}
	warnOffGraph(grant, models.StatusSubmitted)

	now := time.Now().UTC()
	sub := &models.Submission{
		ID:          uuid.NewString(),
		GrantID:     grant.ID,
		SubmittedAt: now,
		Notes:       in.Notes,
		SubmittedBy: in.SubmittedBy,
		Documents:   jsonList(in.Documents),
		CreatedAt:   now,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(sub).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create submission: %w", err)
	}
	if err := tx.Model(&models.Grant{}).Where("id = ?", grant.ID).
		Updates(map[string]interface{}{"status": models.StatusSubmitted}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("update grant status: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("submit grant: %w", err)
	}
	return s.Get(ctx, grantID)
}

// Award moves the grant to awarded. A nil awardAmount defaults to the
// requested amount. A nil reportingDates preserves any existing dates; a
// non-nil slice (including empty) replaces them.
func (s *Service) Award(ctx context.Context, grantID string, awardAmount *float64, reportingDates []string) (*models.Grant, error) {
	grant, err := s.Get(ctx, grantID)
	if err != nil {
		return nil, err
	}
	warnOffGraph(grant, models.StatusAwarded)

	actual := grant.Amount
	if awardAmount != nil {
		actual = *awardAmount
	}
	updates := map[string]interface{}{
		"status":       models.StatusAwarded,
		"award_amount": actual,
	}
	if reportingDates != nil {
		updates["reporting_dates"] = jsonList(reportingDates)
	}
	if err := s.DB.WithContext(ctx).Model(&models.Grant{}).Where("id = ?", grant.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("award grant: %w", err)
	}
	return s.Get(ctx, grantID)
}

// Reject moves the grant to rejected, optionally attaching notes.
func (s *Service) Reject(ctx context.Context, grantID, notes string) (*models.Grant, error) {
	return s.transition(ctx, grantID, models.StatusRejected, notes)
}

// StartReporting moves the grant to reporting.
func (s *Service) StartReporting(ctx context.Context, grantID string) (*models.Grant, error) {
	return s.transition(ctx, grantID, models.StatusReporting, "")
}

// Close moves the grant to closed.
func (s *Service) Close(ctx context.Context, grantID string) (*models.Grant, error) {
	return s.transition(ctx, grantID, models.StatusClosed, "")
}

// AddNote appends an immutable note. Works in any lifecycle state.
func (s *Service) AddNote(ctx context.Context, grantID, content, author string) (*models.GrantNote, error) {
	if _, err := s.Get(ctx, grantID); err != nil {
		return nil, err
	}
	note := &models.GrantNote{
		ID:        uuid.NewString(),
		GrantID:   grantID,
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(note).Error; err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// GetNotes returns the grant's notes, newest first.
func (s *Service) GetNotes(ctx context.Context, grantID string) ([]models.GrantNote, error) {
	if _, err := s.Get(ctx, grantID); err != nil {
		return nil, err
	}
	var notes []models.GrantNote
	if err := s.DB.WithContext(ctx).Where("grant_id = ?", grantID).
		Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// GetSubmissions returns the grant's submission history, newest first.
func (s *Service) GetSubmissions(ctx context.Context, grantID string) ([]models.Submission, error) {
	if _, err := s.Get(ctx, grantID); err != nil {
		return nil, err
	}
	var subs []models.Submission
	if err := s.DB.WithContext(ctx).Where("grant_id = ?", grantID).
		Order("submitted_at DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// transition updates status (and notes, when given) in a single UPDATE.
// Existence is checked first; the current state is not enforced.
func (s *Service) transition(ctx context.Context, grantID string, next models.GrantStatus, notes string) (*models.Grant, error) {
	grant, err := s.Get(ctx, grantID)
	if err != nil {
		return nil, err
	}
	warnOffGraph(grant, next)

	updates := map[string]interface{}{"status": next}
	if notes != "" {
		updates["notes"] = notes
	}
	if err := s.DB.WithContext(ctx).Model(&models.Grant{}).Where("id = ?", grant.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update grant status: %w", err)
	}
	return s.Get(ctx, grantID)
}

func warnOffGraph(grant *models.Grant, next models.GrantStatus) {
	if !grant.Status.CanTransitionTo(next) {
		log.Warn().
			Str("grant_id", grant.ID).
			Str("from", string(grant.Status)).
			Str("to", string(next)).
			Msg("status transition outside the canonical pipeline")
	}
}

// jsonList normalizes nil to an empty slice so list columns round-trip as [],
// never null.
func jsonList(v []string) datatypes.JSONSlice[string] {
	if v == nil {
		v = []string{}
	}
	return datatypes.JSONSlice[string](v)
}
