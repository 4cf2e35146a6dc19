package domain

// Back-office roles.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleStaff      = "staff"
)

// Admin is a back-office user. Hash never leaves the repo layer in API
// responses.
type Admin struct {
	ID          string `db:"id" json:"id"`
	Email       string `db:"email" json:"email"`
	Hash        string `db:"password_hash" json:"-"`
	FullName    string `db:"full_name" json:"full_name"`
	Role        string `db:"role" json:"role"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	IsActive    bool   `db:"is_active" json:"is_active"`
	LastLoginAt string `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   string `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`
}
