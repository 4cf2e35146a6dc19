package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"velofleet/internal/domain"
)

type LeadRepo struct{ db *sqlx.DB }

func NewLeadRepo(db *sqlx.DB) *LeadRepo { return &LeadRepo{db: db} }

const leadCols = `
  id, name, email, phone, subject, message,
  type, status, priority, assigned_to, source, language,
  vehicle_id, offer_code, created_at, last_contacted_at, updated_at`

// List narrows by the admin filters; newest inquiries first.
func (r *LeadRepo) List(f domain.LeadFilters) ([]domain.Lead, error) {
	where := `1=1`
	args := []any{}
	if len(f.Status) > 0 {
		where += ` AND status IN (?)`
		args = append(args, f.Status)
	}
	if len(f.Type) > 0 {
		where += ` AND type IN (?)`
		args = append(args, f.Type)
	}
	if len(f.Priority) > 0 {
		where += ` AND priority IN (?)`
		args = append(args, f.Priority)
	}
	if f.AssignedTo != "" {
		where += ` AND assigned_to = ?`
		args = append(args, f.AssignedTo)
	}
	if f.DateFrom != "" {
		where += ` AND datetime(created_at) >= datetime(?)`
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		where += ` AND datetime(created_at) <= datetime(?)`
		args = append(args, f.DateTo)
	}
	if f.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(message) LIKE ?)`
		needle := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, needle, needle, needle, needle, needle)
	}

	query, inArgs, err := sqlx.In(`SELECT `+leadCols+` FROM leads WHERE `+where+`
	  ORDER BY datetime(created_at) DESC`, args...)
	if err != nil {
		return nil, err
	}
	var out []domain.Lead
	err = r.db.Select(&out, query, inArgs...)
	return out, err
}

func (r *LeadRepo) Get(id string) (domain.Lead, error) {
	var l domain.Lead
	err := r.db.Get(&l, `SELECT `+leadCols+` FROM leads WHERE id = ?`, id)
	return l, err
}

func (r *LeadRepo) Insert(l domain.Lead) error {
	_, err := r.db.Exec(`
	  INSERT INTO leads(id, name, email, phone, subject, message,
	    type, status, priority, assigned_to, source, language,
	    vehicle_id, offer_code, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		l.ID, l.Name, l.Email, l.Phone, l.Subject, l.Message,
		l.Type, l.Status, l.Priority, l.AssignedTo, l.Source, l.Language,
		l.VehicleID, l.OfferCode, l.CreatedAt)
	return err
}

// UpdateStatus is a single statement: moving to "contacted" stamps
// last_contacted_at in the same write, no read-modify-write.
func (r *LeadRepo) UpdateStatus(id, status string) (bool, error) {
	now := nowUTC()
	res, err := r.db.Exec(`
	  UPDATE leads SET
	    status = ?,
	    updated_at = ?,
	    last_contacted_at = CASE WHEN ? = 'contacted' THEN ? ELSE last_contacted_at END
	  WHERE id = ?`, status, now, status, now, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *LeadRepo) UpdateAssignment(id, adminID string) (bool, error) {
	res, err := r.db.Exec(`UPDATE leads SET assigned_to = ?, updated_at = ? WHERE id = ?`, adminID, nowUTC(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *LeadRepo) UpdatePriority(id, priority string) (bool, error) {
	res, err := r.db.Exec(`UPDATE leads SET priority = ?, updated_at = ? WHERE id = ?`, priority, nowUTC(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *LeadRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ---------- Notes ----------

func (r *LeadRepo) ListNotes(leadID string) ([]domain.LeadNote, error) {
	var out []domain.LeadNote
	err := r.db.Select(&out, `
	  SELECT id, lead_id, note, note_type, created_by, created_at
	  FROM lead_notes WHERE lead_id = ?
	  ORDER BY datetime(created_at) DESC`, leadID)
	return out, err
}

func (r *LeadRepo) AddNote(n domain.LeadNote) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO lead_notes(lead_id, note, note_type, created_by)
	  VALUES(?,?,?,?)`, n.LeadID, n.Note, n.NoteType, n.CreatedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ---------- Reminders ----------

func (r *LeadRepo) ListReminders(leadID string) ([]domain.LeadReminder, error) {
	var out []domain.LeadReminder
	err := r.db.Select(&out, `
	  SELECT id, lead_id, reminder_date, reminder_note, is_completed, completed_at,
	         assigned_to, created_by, created_at
	  FROM lead_reminders WHERE lead_id = ?
	  ORDER BY datetime(reminder_date) ASC`, leadID)
	return out, err
}

func (r *LeadRepo) AddReminder(rem domain.LeadReminder) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO lead_reminders(lead_id, reminder_date, reminder_note, assigned_to, created_by)
	  VALUES(?,?,?,?,?)`,
		rem.LeadID, rem.ReminderDate, rem.ReminderNote, rem.AssignedTo, rem.CreatedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *LeadRepo) CompleteReminder(id int64) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE lead_reminders SET is_completed = 1, completed_at = ?
	  WHERE id = ? AND is_completed = 0`, nowUTC(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpcomingReminders returns open reminders due inside the rolling window,
// soonest first.
func (r *LeadRepo) UpcomingReminders(daysAhead int) ([]domain.LeadReminder, error) {
	var out []domain.LeadReminder
	err := r.db.Select(&out, `
	  SELECT id, lead_id, reminder_date, reminder_note, is_completed, completed_at,
	         assigned_to, created_by, created_at
	  FROM lead_reminders
	  WHERE is_completed = 0
	    AND datetime(reminder_date) >= datetime('now')
	    AND datetime(reminder_date) <= datetime('now', '+' || ? || ' days')
	  ORDER BY datetime(reminder_date) ASC`, daysAhead)
	return out, err
}
