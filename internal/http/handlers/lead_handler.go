package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"velofleet/internal/domain"
	applog "velofleet/internal/log"
	"velofleet/internal/services"
	"velofleet/internal/validate"
)

type LeadHandler struct {
	Leads *services.LeadService
}

// splitCSV turns "new,contacted" into a validated slice.
func splitCSV(raw string, valid func(string) (string, bool)) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v, ok := valid(part); ok {
			out = append(out, v)
		}
	}
	return out
}

func parseLeadFilters(c *fiber.Ctx) domain.LeadFilters {
	return domain.LeadFilters{
		Status:     splitCSV(c.Query("status"), validate.LeadStatus),
		Type:       splitCSV(c.Query("type"), validate.LeadType),
		Priority:   splitCSV(c.Query("priority"), validate.LeadPriority),
		AssignedTo: strings.TrimSpace(c.Query("assigned_to")),
		DateFrom:   strings.TrimSpace(c.Query("date_from")),
		DateTo:     strings.TrimSpace(c.Query("date_to")),
		Search:     strings.TrimSpace(c.Query("q")),
	}
}

// POST /leads — public form submission.
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var l domain.Lead
	if err := c.BodyParser(&l); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}

	name, ok := validate.Name(l.Name)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "name must be between 2 and 100 characters")
	}
	email, ok := validate.Email(l.Email)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "invalid email address")
	}
	phone, ok := validate.Phone(l.Phone)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "invalid phone number")
	}
	msg, ok := validate.Message(l.Message)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "message must be between 10 and 1000 characters")
	}
	if l.Type != "" {
		if _, ok := validate.LeadType(l.Type); !ok {
			return jsonFail(c, fiber.StatusBadRequest, "invalid lead type")
		}
	}
	l.Name, l.Email, l.Phone, l.Message = name, email, phone, msg
	// Workflow fields are server-owned on create.
	l.Status, l.Priority, l.AssignedTo, l.LastContactedAt = "", "", "", ""

	created, err := h.Leads.Create(l)
	if err != nil {
		applog.Error(c, "leads.create.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to create lead")
	}
	applog.Info(c, "leads.create", map[string]any{"lead_id": created.ID, "type": created.Type})
	return jsonOK(c, created)
}

// GET /admin/leads
func (h *LeadHandler) List(c *fiber.Ctx) error {
	leads, err := h.Leads.List(parseLeadFilters(c))
	if err != nil {
		applog.Error(c, "leads.list.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch leads")
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return jsonOK(c, leads)
}

// GET /admin/leads/:id
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	l, err := h.Leads.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "lead not found")
		}
		applog.Error(c, "leads.get.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch lead")
	}
	return jsonOK(c, l)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /admin/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	status, ok := validate.LeadStatus(req.Status)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "invalid status")
	}
	l, err := h.Leads.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "lead not found")
		}
		applog.Error(c, "leads.status.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to update lead status")
	}
	applog.Audit(c, "leads.status", map[string]any{"lead_id": id, "status": status})
	return jsonOK(c, l)
}

type assignRequest struct {
	AssignedTo string `json:"assigned_to"`
}

// PUT /admin/leads/:id/assign
func (h *LeadHandler) Assign(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	l, err := h.Leads.Assign(id, strings.TrimSpace(req.AssignedTo))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "lead not found")
		}
		applog.Error(c, "leads.assign.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to assign lead")
	}
	applog.Audit(c, "leads.assign", map[string]any{"lead_id": id, "assigned_to": req.AssignedTo})
	return jsonOK(c, l)
}

type priorityRequest struct {
	Priority string `json:"priority"`
}

// PUT /admin/leads/:id/priority
func (h *LeadHandler) SetPriority(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	var req priorityRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	priority, ok := validate.LeadPriority(req.Priority)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "invalid priority")
	}
	l, err := h.Leads.SetPriority(id, priority)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "lead not found")
		}
		applog.Error(c, "leads.priority.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to update lead priority")
	}
	applog.Audit(c, "leads.priority", map[string]any{"lead_id": id, "priority": priority})
	return jsonOK(c, l)
}

// DELETE /admin/leads/:id
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	if err := h.Leads.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "lead not found")
		}
		applog.Error(c, "leads.delete.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to delete lead")
	}
	applog.Audit(c, "leads.delete", map[string]any{"lead_id": id})
	return jsonMsg(c, "lead deleted")
}

// GET /admin/leads/export — CSV download of the filtered list.
func (h *LeadHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.Leads.ExportCSV(parseLeadFilters(c))
	if err != nil {
		applog.Error(c, "leads.export.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to export leads")
	}
	applog.Audit(c, "leads.export", nil)
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="leads.csv"`)
	return c.Send(data)
}

// ---------- Notes ----------

// GET /admin/leads/:id/notes
func (h *LeadHandler) Notes(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	notes, err := h.Leads.Notes(id)
	if err != nil {
		applog.Error(c, "leads.notes.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch notes")
	}
	if notes == nil {
		notes = []domain.LeadNote{}
	}
	return jsonOK(c, notes)
}

// POST /admin/leads/:id/notes
func (h *LeadHandler) AddNote(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	var n domain.LeadNote
	if err := c.BodyParser(&n); err != nil || strings.TrimSpace(n.Note) == "" {
		return jsonFail(c, fiber.StatusBadRequest, "note cannot be empty")
	}
	if n.NoteType != "" {
		if _, ok := validate.NoteType(n.NoteType); !ok {
			return jsonFail(c, fiber.StatusBadRequest, "invalid note type")
		}
	}
	n.LeadID = id
	if a := currentAdmin(c); a != nil {
		n.CreatedBy = a.ID
	}
	saved, err := h.Leads.AddNote(n)
	if err != nil {
		applog.Error(c, "leads.notes.add.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to add note")
	}
	applog.Audit(c, "leads.notes.add", map[string]any{"lead_id": id, "note_id": saved.ID})
	return jsonOK(c, saved)
}

// ---------- Reminders ----------

// GET /admin/leads/:id/reminders
func (h *LeadHandler) Reminders(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	rems, err := h.Leads.Reminders(id)
	if err != nil {
		applog.Error(c, "leads.reminders.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch reminders")
	}
	if rems == nil {
		rems = []domain.LeadReminder{}
	}
	return jsonOK(c, rems)
}

// POST /admin/leads/:id/reminders
func (h *LeadHandler) AddReminder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "lead not found")
	}
	var rem domain.LeadReminder
	if err := c.BodyParser(&rem); err != nil || strings.TrimSpace(rem.ReminderDate) == "" {
		return jsonFail(c, fiber.StatusBadRequest, "reminder_date is required")
	}
	rem.LeadID = id
	if a := currentAdmin(c); a != nil {
		rem.CreatedBy = a.ID
	}
	saved, err := h.Leads.AddReminder(rem)
	if err != nil {
		applog.Error(c, "leads.reminders.add.fail", err, map[string]any{"lead_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to add reminder")
	}
	applog.Audit(c, "leads.reminders.add", map[string]any{"lead_id": id, "reminder_id": saved.ID})
	return jsonOK(c, saved)
}

// POST /admin/reminders/:id/complete
func (h *LeadHandler) CompleteReminder(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid reminder id")
	}
	if err := h.Leads.CompleteReminder(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "reminder not found")
		}
		applog.Error(c, "leads.reminders.complete.fail", err, map[string]any{"reminder_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to complete reminder")
	}
	applog.Audit(c, "leads.reminders.complete", map[string]any{"reminder_id": id})
	return jsonMsg(c, "reminder completed")
}

// GET /admin/reminders/upcoming?days=N
func (h *LeadHandler) UpcomingReminders(c *fiber.Ctx) error {
	days := validate.Days(c.Query("days"), 7)
	rems, err := h.Leads.UpcomingReminders(days)
	if err != nil {
		applog.Error(c, "leads.reminders.upcoming.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch reminders")
	}
	if rems == nil {
		rems = []domain.LeadReminder{}
	}
	return jsonOK(c, rems)
}
