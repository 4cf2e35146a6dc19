package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
)

type LeadService struct {
	Leads *repos.LeadRepo
}

func NewLeadService(leads *repos.LeadRepo) *LeadService {
	return &LeadService{Leads: leads}
}

// Create stores a public inquiry. Missing id/status/priority/type/language
// get the standard defaults; the caller validates field formats first.
func (s *LeadService) Create(l domain.Lead) (domain.Lead, error) {
	if l.ID == "" {
		l.ID = newLeadID()
	}
	if l.Status == "" {
		l.Status = domain.LeadStatusNew
	}
	if l.Priority == "" {
		l.Priority = domain.PriorityNormal
	}
	if l.Type == "" {
		l.Type = domain.LeadTypeGeneral
	}
	if l.Language == "" {
		l.Language = "en"
	}
	if l.CreatedAt == "" {
		l.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := s.Leads.Insert(l); err != nil {
		return domain.Lead{}, err
	}
	return s.Get(l.ID)
}

func (s *LeadService) List(f domain.LeadFilters) ([]domain.Lead, error) {
	return s.Leads.List(f)
}

func (s *LeadService) Get(id string) (domain.Lead, error) {
	l, err := s.Leads.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lead{}, ErrNotFound
		}
		return domain.Lead{}, err
	}
	return l, nil
}

// UpdateStatus moves the lead; the repo stamps last_contacted_at in the
// same statement when the new status is "contacted".
func (s *LeadService) UpdateStatus(id, status string) (domain.Lead, error) {
	ok, err := s.Leads.UpdateStatus(id, status)
	if err != nil {
		return domain.Lead{}, err
	}
	if !ok {
		return domain.Lead{}, ErrNotFound
	}
	return s.Get(id)
}

func (s *LeadService) Assign(id, adminID string) (domain.Lead, error) {
	ok, err := s.Leads.UpdateAssignment(id, adminID)
	if err != nil {
		return domain.Lead{}, err
	}
	if !ok {
		return domain.Lead{}, ErrNotFound
	}
	return s.Get(id)
}

func (s *LeadService) SetPriority(id, priority string) (domain.Lead, error) {
	ok, err := s.Leads.UpdatePriority(id, priority)
	if err != nil {
		return domain.Lead{}, err
	}
	if !ok {
		return domain.Lead{}, ErrNotFound
	}
	return s.Get(id)
}

func (s *LeadService) Delete(id string) error {
	ok, err := s.Leads.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ExportCSV materializes the filtered list into a fixed-column CSV. The
// whole result is built in memory; lead volume is small by nature.
func (s *LeadService) ExportCSV(f domain.LeadFilters) ([]byte, error) {
	leads, err := s.Leads.List(f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "name", "email", "phone", "subject", "type", "status",
		"priority", "assigned_to", "source", "language", "vehicle_id", "offer_code",
		"created_at", "last_contacted_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, l := range leads {
		row := []string{l.ID, l.Name, l.Email, l.Phone, l.Subject, l.Type, l.Status,
			l.Priority, l.AssignedTo, l.Source, l.Language, l.VehicleID, l.OfferCode,
			l.CreatedAt, l.LastContactedAt}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ---------- Notes & reminders ----------

func (s *LeadService) Notes(leadID string) ([]domain.LeadNote, error) {
	return s.Leads.ListNotes(leadID)
}

func (s *LeadService) AddNote(n domain.LeadNote) (domain.LeadNote, error) {
	if n.NoteType == "" {
		n.NoteType = "comment"
	}
	id, err := s.Leads.AddNote(n)
	if err != nil {
		return domain.LeadNote{}, err
	}
	n.ID = id
	return n, nil
}

func (s *LeadService) Reminders(leadID string) ([]domain.LeadReminder, error) {
	return s.Leads.ListReminders(leadID)
}

func (s *LeadService) AddReminder(rem domain.LeadReminder) (domain.LeadReminder, error) {
	id, err := s.Leads.AddReminder(rem)
	if err != nil {
		return domain.LeadReminder{}, err
	}
	rem.ID = id
	return rem, nil
}

func (s *LeadService) CompleteReminder(id int64) error {
	ok, err := s.Leads.CompleteReminder(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *LeadService) UpcomingReminders(daysAhead int) ([]domain.LeadReminder, error) {
	return s.Leads.UpcomingReminders(daysAhead)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newLeadID keeps the historical lead_<unixms>_<rand> format public
// clients already store in their analytics.
func newLeadID() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("lead_%d_%s", time.Now().UnixMilli(), string(b))
}
