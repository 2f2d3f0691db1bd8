package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/moovely/greener/internal/api/apierrors"
	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/persona"
	"github.com/moovely/greener/internal/ranking"
)

// InfoResponse describes the running service
type InfoResponse struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
	TaxYear     string `json:"tax_year"`
	Locations   int    `json:"locations"`
}

// LocationsResponse lists reference locations
type LocationsResponse struct {
	Locations []domain.Location `json:"locations"`
	Count     int               `json:"count"`
}

// TaxRequest is the query for GET /api/v1/tax
type TaxRequest struct {
	Salary  *float64 `form:"salary" binding:"required,gte=0"`
	Country string   `form:"country"`
}

// CompareRequest is the body for POST /api/v1/compare
type CompareRequest struct {
	From    string         `json:"from" binding:"required"`
	To      string         `json:"to" binding:"required"`
	Options OptionsRequest `json:"options"`
}

// RequiredSalaryRequest is the body for POST /api/v1/required-salary. An
// empty To solves for every other location.
type RequiredSalaryRequest struct {
	From    string         `json:"from" binding:"required"`
	To      string         `json:"to"`
	Options OptionsRequest `json:"options"`
}

// RankRequest is the query for GET /api/v1/rank/:home
type RankRequest struct {
	Salary *float64 `form:"salary" binding:"omitempty,gte=0"`
	Region []string `form:"region"`
	Search string   `form:"search"`
	Sort   string   `form:"sort"`
}

// RankResponse is the league table for one home location
type RankResponse struct {
	Home    string          `json:"home"`
	SortBy  string          `json:"sort_by"`
	Entries []ranking.Entry `json:"entries"`
	Count   int             `json:"count"`
}

// PersonaRequest is the body for PUT /api/v1/sessions/:id/persona
type PersonaRequest struct {
	PersonaID string `json:"persona_id" binding:"required"`
}

// SessionPersonaResponse is a session's saved persona
type SessionPersonaResponse struct {
	SessionID string         `json:"session_id"`
	Persona   domain.Persona `json:"persona"`
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Info handles GET /api/v1/info
func (h *Handler) Info(c *gin.Context) {
	count := 0
	if h.deps.Locations != nil {
		count = h.deps.Locations.Len()
	}
	c.JSON(http.StatusOK, InfoResponse{
		Version:     Version,
		Environment: h.deps.Env,
		Uptime:      formatUptime(time.Since(h.startTime)),
		TaxYear:     h.deps.Engine.TaxCalc.Rules.Metadata.TaxYear,
		Locations:   count,
	})
}

// ListLocations handles GET /api/v1/locations with an optional region filter
func (h *Handler) ListLocations(c *gin.Context) {
	if !h.requireLocations(c) {
		return
	}

	locations := h.deps.Locations.All()
	if name := c.Query("region"); name != "" {
		region, err := domain.ParseRegion(name)
		if err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		locations = h.deps.Locations.ByRegion(region)
	}
	if locations == nil {
		locations = []domain.Location{}
	}

	c.JSON(http.StatusOK, LocationsResponse{Locations: locations, Count: len(locations)})
}

// GetLocation handles GET /api/v1/locations/:id
func (h *Handler) GetLocation(c *gin.Context) {
	if !h.requireLocations(c) {
		return
	}
	loc, err := h.deps.Locations.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to load location")
		return
	}
	c.JSON(http.StatusOK, loc)
}

// Tax handles GET /api/v1/tax
func (h *Handler) Tax(c *gin.Context) {
	var req TaxRequest
	if !h.bind(c, c.ShouldBindQuery, &req) {
		return
	}

	country := domain.CountryEngland
	if req.Country != "" {
		parsed, err := domain.ParseCountry(req.Country)
		if err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		country = parsed
	}

	salary, err := domain.AmountFromFloat("salary", *req.Salary)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), nil)
		return
	}

	c.JSON(http.StatusOK, h.deps.Engine.TaxCalc.CalculateTax(salary, country))
}

// CompareSlug handles GET /api/v1/compare/:slug, e.g. london-vs-manchester.
// The format query parameter selects json (default), table, csv or html.
func (h *Handler) CompareSlug(c *gin.Context) {
	if !h.requireLocations(c) {
		return
	}

	fromID, toID, err := compare.ParseComparisonSlug(c.Param("slug"))
	if err != nil {
		apierrors.BadRequest(c, err.Error(), nil)
		return
	}

	var req OptionsRequest
	if !h.bind(c, c.ShouldBindQuery, &req) {
		return
	}

	h.respondReport(c, fromID, toID, req, c.Query("format"))
}

// Compare handles POST /api/v1/compare
func (h *Handler) Compare(c *gin.Context) {
	if !h.requireLocations(c) {
		return
	}

	var req CompareRequest
	if !h.bind(c, c.ShouldBindJSON, &req) {
		return
	}

	h.respondReport(c, req.From, req.To, req.Options, "")
}

func (h *Handler) respondReport(c *gin.Context, fromID, toID string, req OptionsRequest, format string) {
	from, to, ok := h.pair(c, fromID, toID)
	if !ok {
		return
	}

	opts, err := req.Build()
	if err != nil {
		h.fail(c, badRequest(err), "Invalid options")
		return
	}

	report := h.deps.Engine.BuildReport(from, to, opts)

	if format == "" || strings.EqualFold(format, "json") {
		c.JSON(http.StatusOK, report)
		return
	}

	formatter, err := compare.NewFormatter(format)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), nil)
		return
	}
	body, err := formatter.Format(report)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to format comparison", err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	switch strings.ToLower(format) {
	case "csv":
		contentType = "text/csv; charset=utf-8"
	case "html":
		contentType = "text/html; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, []byte(body))
}

// RequiredSalary handles POST /api/v1/required-salary
func (h *Handler) RequiredSalary(c *gin.Context) {
	if !h.requireLocations(c) {
		return
	}

	var req RequiredSalaryRequest
	if !h.bind(c, c.ShouldBindJSON, &req) {
		return
	}

	opts, err := req.Options.Build()
	if err != nil {
		h.fail(c, badRequest(err), "Invalid options")
		return
	}

	from, err := h.deps.Locations.Get(req.From)
	if err != nil {
		h.fail(c, err, "Failed to load location")
		return
	}

	if req.To == "" {
		multi, err := h.deps.Solver.RequiredSalaries(from, h.deps.Locations.All(), opts)
		if err != nil {
			h.fail(c, err, "Failed to solve required salaries")
			return
		}
		c.JSON(http.StatusOK, multi)
		return
	}

	to, err := h.deps.Locations.Get(req.To)
	if err != nil {
		h.fail(c, err, "Failed to load location")
		return
	}

	result, err := h.deps.Solver.RequiredSalary(from, to, opts)
	if err != nil {
		h.fail(c, err, "Failed to solve required salary")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Rank handles GET /api/v1/rank/:home
func (h *Handler) Rank(c *gin.Context) {
	if !h.requireLocations(c) {
		return
	}

	home, err := h.deps.Locations.Get(c.Param("home"))
	if err != nil {
		h.fail(c, err, "Failed to load location")
		return
	}

	var req RankRequest
	if !h.bind(c, c.ShouldBindQuery, &req) {
		return
	}

	sortBy, err := ranking.ParseSortField(req.Sort)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), nil)
		return
	}
	regions, err := ranking.RegionSet(req.Region)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), nil)
		return
	}

	opts := ranking.Options{Regions: regions, Search: req.Search, SortBy: sortBy}
	if req.Salary != nil {
		salary, err := domain.AmountFromFloat("salary", *req.Salary)
		if err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		opts.CustomSalary = &salary
	}

	entries := h.deps.Ranker.Rank(home, h.deps.Locations.All(), opts)
	c.JSON(http.StatusOK, RankResponse{
		Home:    home.ID,
		SortBy:  string(sortBy),
		Entries: entries,
		Count:   len(entries),
	})
}

// ListPersonas handles GET /api/v1/personas
func (h *Handler) ListPersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personas": persona.Presets()})
}

// CreateSession handles POST /api/v1/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"session_id": persona.NewSessionID()})
}

// SavePersona handles PUT /api/v1/sessions/:id/persona
func (h *Handler) SavePersona(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}

	var req PersonaRequest
	if !h.bind(c, c.ShouldBindJSON, &req) {
		return
	}
	id, err := persona.ParseID(req.PersonaID)
	if err != nil {
		h.fail(c, err, "Invalid persona")
		return
	}

	if err := h.deps.Personas.Save(c.Request.Context(), sessionID, id); err != nil {
		h.fail(c, err, "Failed to save persona")
		return
	}

	p, _ := persona.Lookup(id)
	c.JSON(http.StatusOK, SessionPersonaResponse{SessionID: sessionID, Persona: p})
}

// GetPersona handles GET /api/v1/sessions/:id/persona
func (h *Handler) GetPersona(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}

	p, err := persona.Resolve(c.Request.Context(), h.deps.Personas, sessionID)
	if err != nil {
		h.fail(c, err, "Failed to load persona")
		return
	}
	c.JSON(http.StatusOK, SessionPersonaResponse{SessionID: sessionID, Persona: p})
}

// ClearPersona handles DELETE /api/v1/sessions/:id/persona
func (h *Handler) ClearPersona(c *gin.Context) {
	sessionID, ok := h.session(c)
	if !ok {
		return
	}

	if err := h.deps.Personas.Clear(c.Request.Context(), sessionID); err != nil {
		h.fail(c, err, "Failed to clear persona")
		return
	}
	c.Status(http.StatusNoContent)
}

// Helper methods

func (h *Handler) requireLocations(c *gin.Context) bool {
	if h.deps.Locations == nil {
		apierrors.ServiceUnavailable(c, "Location data is not loaded")
		return false
	}
	return true
}

func (h *Handler) session(c *gin.Context) (string, bool) {
	if h.deps.Personas == nil {
		apierrors.ServiceUnavailable(c, "Persona storage is not configured")
		return "", false
	}
	sessionID := c.Param("id")
	if err := persona.ValidateSessionID(sessionID); err != nil {
		apierrors.BadRequest(c, err.Error(), nil)
		return "", false
	}
	return sessionID, true
}

func (h *Handler) pair(c *gin.Context, fromID, toID string) (from, to domain.Location, ok bool) {
	from, err := h.deps.Locations.Get(fromID)
	if err != nil {
		h.fail(c, err, "Failed to load location")
		return from, to, false
	}
	to, err = h.deps.Locations.Get(toID)
	if err != nil {
		h.fail(c, err, "Failed to load location")
		return from, to, false
	}
	return from, to, true
}

// bind runs a gin binder and writes the error response on failure
func (h *Handler) bind(c *gin.Context, binder func(any) error, req any) bool {
	if err := binder(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return false
		}
		apierrors.BadRequest(c, "Invalid request", map[string]any{"reason": err.Error()})
		return false
	}
	return true
}

// errBadInput marks errors caused by the caller's input
var errBadInput = errors.New("bad input")

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", errBadInput, err)
}

// fail maps a domain error to the matching status code
func (h *Handler) fail(c *gin.Context, err error, message string) {
	var beErr *breakeven.BreakEvenError

	switch {
	case errors.Is(err, config.ErrLocationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, persona.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, persona.ErrUnknownPersona):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, errBadInput):
		apierrors.BadRequest(c, strings.TrimPrefix(err.Error(), errBadInput.Error()+": "), nil)
	case errors.As(err, &beErr):
		apierrors.BadRequest(c, beErr.Error(), nil)
	default:
		apierrors.InternalServerError(c, message, err)
	}
}

// formatUptime formats a duration into a human-readable string
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
