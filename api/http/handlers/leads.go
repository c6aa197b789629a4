package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/localassist/leads-api/api/http/presenter"
	"github.com/localassist/leads-api/pkg/lead"
	"github.com/localassist/leads-api/pkg/security/jwt"
)

type LeadHandler struct {
	uc lead.UseCase
}

func NewLeadHandler(uc lead.UseCase) *LeadHandler { return &LeadHandler{uc: uc} }

// Create intakes a new lead for the caller's business.
// @Summary Create a lead
// @Tags    leads
// @Accept  json
// @Produce json
// @Param   input body lead.CreateInput true "lead payload"
// @Security BearerAuth
// @Success 201 {object} lead.Lead
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	businessID, ok := callerBusinessID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not validate credentials")
	}

	var input lead.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	created, err := h.uc.Create(c.Context(), input, businessID)
	if err != nil {
		return leadError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// List returns the business's leads, most recent first.
// @Summary List leads
// @Tags    leads
// @Produce json
// @Param   status query string false "filter by status"
// @Param   limit  query int    false "maximum number of results"
// @Security BearerAuth
// @Success 200 {array} lead.Lead
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	businessID, ok := callerBusinessID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not validate credentials")
	}

	status := lead.Status(strings.TrimSpace(c.Query("status")))
	limit := 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	leads, err := h.uc.List(c.Context(), businessID, status, limit)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list leads")
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	return presenter.JSON(c, http.StatusOK, leads)
}

// Get returns a single lead owned by the caller's business.
// @Summary Get a lead
// @Tags    leads
// @Produce json
// @Param   id path string true "lead id"
// @Security BearerAuth
// @Success 200 {object} lead.Lead
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	businessID, ok := callerBusinessID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not validate credentials")
	}

	l, err := h.uc.Get(c.Context(), c.Params("id"), businessID)
	if err != nil {
		return leadError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, l)
}

type updateLeadRequest struct {
	Status  *string `json:"status"`
	Message *string `json:"message"`
}

// Update applies a partial update; only status and message are mutable.
// @Summary Update a lead
// @Tags    leads
// @Accept  json
// @Produce json
// @Param   id path string true "lead id"
// @Param   input body updateLeadRequest true "fields to update"
// @Security BearerAuth
// @Success 200 {object} lead.Lead
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /leads/{id} [patch]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	businessID, ok := callerBusinessID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not validate credentials")
	}

	var req updateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	patch := lead.Patch{Message: req.Message}
	if req.Status != nil {
		status := lead.Status(*req.Status)
		patch.Status = &status
	}

	updated, err := h.uc.Update(c.Context(), c.Params("id"), businessID, patch)
	if err != nil {
		return leadError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// Delete removes a lead owned by the caller's business.
// @Summary Delete a lead
// @Tags    leads
// @Produce json
// @Param   id path string true "lead id"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	businessID, ok := callerBusinessID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "could not validate credentials")
	}

	if err := h.uc.Delete(c.Context(), c.Params("id"), businessID); err != nil {
		return leadError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// callerBusinessID reads the tenant resolved by the auth middleware.
// The request payload is never consulted.
func callerBusinessID(c *fiber.Ctx) (string, bool) {
	businessID, _ := c.Locals(jwt.LocalBusinessID).(string)
	return businessID, businessID != ""
}

func leadError(c *fiber.Ctx, err error) error {
	var verr *lead.ValidationError
	switch {
	case errors.Is(err, lead.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "lead not found")
	case errors.As(err, &verr):
		return presenter.ValidationError(c, verr.Fields)
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
