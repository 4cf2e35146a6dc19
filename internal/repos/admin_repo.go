package repos

import (
	"github.com/jmoiron/sqlx"

	"velofleet/internal/domain"
)

type AdminRepo struct{ DB *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{DB: db} }

const adminCols = `
  id, email, password_hash, full_name, role, phone, is_active,
  last_login_at, created_at, updated_at`

func (r *AdminRepo) ByEmail(email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.Get(&a, `SELECT `+adminCols+` FROM admins WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) ByID(id string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.Get(&a, `SELECT `+adminCols+` FROM admins WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) List() ([]domain.Admin, error) {
	var out []domain.Admin
	err := r.DB.Select(&out, `SELECT `+adminCols+` FROM admins ORDER BY email`)
	return out, err
}

func (r *AdminRepo) Insert(a domain.Admin) error {
	_, err := r.DB.Exec(`
	  INSERT INTO admins(id, email, password_hash, full_name, role, phone, is_active)
	  VALUES(?,?,?,?,?,?,?)`,
		a.ID, a.Email, a.Hash, a.FullName, a.Role, a.Phone, a.IsActive)
	return err
}

func (r *AdminRepo) ToggleActive(id string) (bool, error) {
	res, err := r.DB.Exec(`UPDATE admins SET is_active = NOT is_active, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *AdminRepo) StampLastLogin(id string) error {
	_, err := r.DB.Exec(`UPDATE admins SET last_login_at = ? WHERE id = ?`, nowUTC(), id)
	return err
}
