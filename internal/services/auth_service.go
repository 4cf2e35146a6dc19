package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified session payload attached to admin requests.
type Claims struct {
	AdminID string
	Email   string
	Role    string
}

// AuthService verifies admin credentials and issues expiring JWT sessions.
type AuthService struct {
	Admins *repos.AdminRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(admins *repos.AdminRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Admins: admins, Secret: []byte(secret), TTL: ttl}
}

// Login checks the bcrypt hash, stamps last_login_at and returns a signed
// token. Inactive accounts are rejected even with a correct password.
func (s *AuthService) Login(email, password string) (*domain.Admin, string, error) {
	a, err := s.Admins.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	if !a.IsActive {
		return nil, "", ErrInactiveAdmin
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   a.ID,
		"email": a.Email,
		"role":  a.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TTL).Unix(),
	})
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		return nil, "", err
	}

	if err := s.Admins.StampLastLogin(a.ID); err != nil {
		return nil, "", err
	}
	return a, signed, nil
}

// Verify parses and validates a bearer token.
func (s *AuthService) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || role == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{AdminID: sub, Email: email, Role: role}, nil
}

// CurrentAdmin resolves a verified token to a live account; a deactivated
// admin loses access even with an unexpired token.
func (s *AuthService) CurrentAdmin(tokenString string) (*domain.Admin, error) {
	c, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	a, err := s.Admins.ByID(c.AdminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !a.IsActive {
		return nil, ErrInactiveAdmin
	}
	return a, nil
}

// CreateAdmin hashes the password and stores a new back-office account.
func (s *AuthService) CreateAdmin(email, password, fullName, role, phone string) (*domain.Admin, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	a := domain.Admin{
		ID:       uuid.NewString(),
		Email:    email,
		Hash:     string(h),
		FullName: fullName,
		Role:     role,
		Phone:    phone,
		IsActive: true,
	}
	if err := s.Admins.Insert(a); err != nil {
		return nil, err
	}
	return &a, nil
}
