package domain

// Lead classification.
const (
	LeadTypeContact = "contact"
	LeadTypeBooking = "booking"
	LeadTypeQuote   = "quote"
	LeadTypeGeneral = "general"
)

// Lead workflow statuses. No transition table is enforced: any status may
// be set to any other, and a closed lead can be reopened.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
	LeadStatusLost      = "lost"
)

// Lead priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Lead is a customer inquiry captured from a public form. Created with
// status=new / priority=normal; mutated only by admin actions afterwards.
type Lead struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Subject string `db:"subject" json:"subject,omitempty"`
	Message string `db:"message" json:"message,omitempty"`

	Type     string `db:"type" json:"type"`
	Status   string `db:"status" json:"status"`
	Priority string `db:"priority" json:"priority"`

	AssignedTo string `db:"assigned_to" json:"assigned_to,omitempty"`
	Source     string `db:"source" json:"source,omitempty"`
	Language   string `db:"language" json:"language"`

	VehicleID string `db:"vehicle_id" json:"vehicle_id,omitempty"`
	OfferCode string `db:"offer_code" json:"offer_code,omitempty"`

	CreatedAt       string `db:"created_at" json:"timestamp"`
	LastContactedAt string `db:"last_contacted_at" json:"last_contacted_at,omitempty"`
	UpdatedAt       string `db:"updated_at" json:"updated_at,omitempty"`
}

// LeadNote is an interaction record attached to a lead.
type LeadNote struct {
	ID        int64  `db:"id" json:"id"`
	LeadID    string `db:"lead_id" json:"lead_id"`
	Note      string `db:"note" json:"note"`
	NoteType  string `db:"note_type" json:"note_type"` // comment|call|email|meeting|whatsapp
	CreatedBy string `db:"created_by" json:"created_by,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
}

// LeadReminder is a follow-up scheduled against a lead.
type LeadReminder struct {
	ID           int64  `db:"id" json:"id"`
	LeadID       string `db:"lead_id" json:"lead_id"`
	ReminderDate string `db:"reminder_date" json:"reminder_date"`
	ReminderNote string `db:"reminder_note" json:"reminder_note,omitempty"`
	IsCompleted  bool   `db:"is_completed" json:"is_completed"`
	CompletedAt  string `db:"completed_at" json:"completed_at,omitempty"`
	AssignedTo   string `db:"assigned_to" json:"assigned_to,omitempty"`
	CreatedBy    string `db:"created_by" json:"created_by,omitempty"`
	CreatedAt    string `db:"created_at" json:"created_at,omitempty"`
}

// LeadFilters narrows admin lead listings.
type LeadFilters struct {
	Status     []string
	Type       []string
	Priority   []string
	AssignedTo string
	DateFrom   string
	DateTo     string
	Search     string
}
