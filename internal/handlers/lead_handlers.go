package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"leadmart/internal/common"
	"leadmart/internal/forms"
	"leadmart/internal/models"
	"leadmart/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// LeadHandlers serves the lead CRUD pages.
type LeadHandlers struct {
	leadService   services.LeadService
	exportService services.ExportService
}

func NewLeadHandlers(leadService services.LeadService, exportService services.ExportService) *LeadHandlers {
	return &LeadHandlers{
		leadService:   leadService,
		exportService: exportService,
	}
}

// ListLeads renders every lead in insertion order.
func (h *LeadHandlers) ListLeads(c echo.Context) error {
	leads, err := h.leadService.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list leads")
	}

	return c.Render(http.StatusOK, "lead_list.html", map[string]interface{}{
		"leads": leads,
	})
}

// GetLead renders a single lead, or 404 when the id is unknown.
func (h *LeadHandlers) GetLead(c echo.Context) error {
	lead, err := h.loadLead(c)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "lead_detail.html", map[string]interface{}{
		"lead": lead,
	})
}

// CreateLeadForm renders an empty lead form.
func (h *LeadHandlers) CreateLeadForm(c echo.Context) error {
	return c.Render(http.StatusOK, "lead_create.html", map[string]interface{}{
		"form": forms.NewLeadForm(url.Values{}),
	})
}

// CreateLead persists a valid submission and redirects to the list. An
// invalid submission re-renders the form with field errors and responds 200.
func (h *LeadHandlers) CreateLead(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	form := forms.NewLeadForm(values)
	if !form.Valid() {
		return c.Render(http.StatusOK, "lead_create.html", map[string]interface{}{"form": form})
	}

	lead := &models.Lead{}
	form.Apply(lead)

	// The creating agent owns the new lead.
	if agentID, ok := common.GetAgentIDFromContext(c.Request().Context()); ok {
		lead.AgentID = &agentID
	}

	if err := h.leadService.Create(c.Request().Context(), lead); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create lead")
	}

	return c.Redirect(http.StatusFound, "/leads")
}

// UpdateLeadForm renders the form pre-filled with the existing record.
func (h *LeadHandlers) UpdateLeadForm(c echo.Context) error {
	lead, err := h.loadLead(c)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "lead_update.html", map[string]interface{}{
		"lead": lead,
		"form": forms.LeadFormFromModel(lead),
	})
}

// UpdateLead overwrites the record's fields in place, preserving its
// identity, and redirects to the list.
func (h *LeadHandlers) UpdateLead(c echo.Context) error {
	lead, err := h.loadLead(c)
	if err != nil {
		return err
	}

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	form := forms.NewLeadForm(values)
	if !form.Valid() {
		return c.Render(http.StatusOK, "lead_update.html", map[string]interface{}{
			"lead": lead,
			"form": form,
		})
	}

	form.Apply(lead)
	if err := h.leadService.Update(c.Request().Context(), lead); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update lead")
	}

	return c.Redirect(http.StatusFound, "/leads")
}

// DeleteLeadForm renders the delete confirmation page.
func (h *LeadHandlers) DeleteLeadForm(c echo.Context) error {
	lead, err := h.loadLead(c)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "lead_delete.html", map[string]interface{}{
		"lead": lead,
	})
}

// DeleteLead removes the lead and redirects to the list. The redirect happens
// whether or not the record still existed.
func (h *LeadHandlers) DeleteLead(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Nothing to delete under a malformed id; the effect is the same.
		return c.Redirect(http.StatusFound, "/leads")
	}

	if err := h.leadService.Delete(c.Request().Context(), leadID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete lead")
	}

	return c.Redirect(http.StatusFound, "/leads")
}

// ExportLeads uploads a CSV snapshot to object storage and redirects to a
// short-lived download link.
func (h *LeadHandlers) ExportLeads(c echo.Context) error {
	downloadURL, err := h.exportService.ExportLeadsCSV(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export leads")
	}

	return c.Redirect(http.StatusFound, downloadURL)
}

func (h *LeadHandlers) loadLead(c echo.Context) (*models.Lead, error) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Lead not found")
	}

	lead, err := h.leadService.GetByID(c.Request().Context(), leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Lead not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load lead")
	}
	return lead, nil
}
