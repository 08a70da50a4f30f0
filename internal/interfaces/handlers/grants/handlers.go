package grants

import (
	"errors"
	"time"

	"grants-backend/internal/models"
	"grants-backend/internal/pkg/response"
	"grants-backend/internal/tracker"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *tracker.Service
}

const dateLayout = "2006-01-02"

type identifyRequest struct {
	Title        string   `json:"title"`
	Funder       string   `json:"funder"`
	Amount       float64  `json:"amount"`
	Type         string   `json:"type"`
	Deadline     string   `json:"deadline"` // YYYY-MM-DD
	Purpose      string   `json:"purpose"`
	Requirements []string `json:"requirements"`
	Contacts     []string `json:"contacts"`
	AssignedTo   string   `json:"assigned_to"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type submitRequest struct {
	Notes       string   `json:"notes"`
	SubmittedBy string   `json:"submitted_by"`
	Documents   []string `json:"documents"`
}

type awardRequest struct {
	AwardAmount    *float64 `json:"award_amount"`
	ReportingDates []string `json:"reporting_dates"`
}

type addNoteRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// POST /api/v1/grants/identify
func (h *Handlers) Identify(c *fiber.Ctx) error {
	var req identifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.Title == "" || req.Funder == "" {
		return response.Error(c, "title and funder are required", fiber.StatusBadRequest, nil)
	}
	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			return response.Error(c, "deadline must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
		}
		deadline = &d
	}
	grant, err := h.Service.Identify(c.Context(), tracker.IdentifyInput{
		Title:        req.Title,
		Funder:       req.Funder,
		Amount:       req.Amount,
		Type:         models.GrantType(req.Type),
		Deadline:     deadline,
		Purpose:      req.Purpose,
		Requirements: req.Requirements,
		Contacts:     req.Contacts,
		AssignedTo:   req.AssignedTo,
	})
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	return response.SuccessCreated(c, "Grant identified", grant, nil)
}

// GET /api/v1/grants/get-grant/:id
func (h *Handlers) GetGrant(c *fiber.Ctx) error {
	grant, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Grant fetched", grant, nil)
}

// GET /api/v1/grants/list-grants?status=&type=&funder=
func (h *Handlers) ListGrants(c *fiber.Ctx) error {
	grants, err := h.Service.List(c.Context(), tracker.ListFilter{
		Status: models.GrantStatus(c.Query("status")),
		Type:   models.GrantType(c.Query("type")),
		Funder: c.Query("funder"),
	})
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Grants fetched", grants, fiber.Map{"count": len(grants)})
}

// POST /api/v1/grants/apply/:id
func (h *Handlers) Apply(c *fiber.Ctx) error {
	var req notesRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	grant, err := h.Service.Apply(c.Context(), c.Params("id"), req.Notes)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Application started", grant, nil)
}

// POST /api/v1/grants/submit/:id
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	grant, err := h.Service.Submit(c.Context(), c.Params("id"), tracker.SubmitInput{
		Notes:       req.Notes,
		SubmittedBy: req.SubmittedBy,
		Documents:   req.Documents,
	})
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Submission recorded", grant, nil)
}

// POST /api/v1/grants/award/:id
func (h *Handlers) Award(c *fiber.Ctx) error {
	var req awardRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	grant, err := h.Service.Award(c.Context(), c.Params("id"), req.AwardAmount, req.ReportingDates)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Grant awarded", grant, nil)
}

// POST /api/v1/grants/reject/:id
func (h *Handlers) Reject(c *fiber.Ctx) error {
	var req notesRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	grant, err := h.Service.Reject(c.Context(), c.Params("id"), req.Notes)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Grant rejected", grant, nil)
}

// POST /api/v1/grants/start-reporting/:id
func (h *Handlers) StartReporting(c *fiber.Ctx) error {
	grant, err := h.Service.StartReporting(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Reporting started", grant, nil)
}

// POST /api/v1/grants/close/:id
func (h *Handlers) Close(c *fiber.Ctx) error {
	grant, err := h.Service.Close(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Grant closed", grant, nil)
}

// POST /api/v1/grants/add-note/:id
func (h *Handlers) AddNote(c *fiber.Ctx) error {
	var req addNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.Content == "" {
		return response.Error(c, "content is required", fiber.StatusBadRequest, nil)
	}
	note, err := h.Service.AddNote(c.Context(), c.Params("id"), req.Content, req.Author)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.SuccessCreated(c, "Note added", note, nil)
}

// GET /api/v1/grants/get-notes/:id
func (h *Handlers) GetNotes(c *fiber.Ctx) error {
	notes, err := h.Service.GetNotes(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Notes fetched", notes, fiber.Map{"count": len(notes)})
}

// GET /api/v1/grants/get-submissions/:id
func (h *Handlers) GetSubmissions(c *fiber.Ctx) error {
	subs, err := h.Service.GetSubmissions(c.Context(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Success(c, "Submissions fetched", subs, fiber.Map{"count": len(subs)})
}

// parseOptionalBody decodes the JSON body into out when one is present.
// Transition routes are callable with no body at all; a malformed body is
// still a client error.
func parseOptionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func (h *Handlers) serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, tracker.ErrGrantNotFound) {
		return response.Error(c, "Grant not found", fiber.StatusNotFound, nil)
	}
	return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
}
