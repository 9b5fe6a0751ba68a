package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

// SessionStorageKey is the fixed key prefix sessions persist under.
const SessionStorageKey = "hub-module-auth"

// AuthService handles registration, login sessions, and password management.
// Sessions are signed JWTs mirrored into the store so logout can revoke them
// before expiry.
type AuthService struct {
	users      repositories.UserRepository
	store      providers.StoreProvider
	jwtSecret  []byte
	tokenTTL   time.Duration
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, store providers.StoreProvider, jwtSecret string, tokenTTL, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// RegisterPayload carries a new account request.
type RegisterPayload struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
	Province       string `json:"province"`
	City           string `json:"city"`
	Birthdate      string `json:"birthdate"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeat_password"`
}

// Register validates the payload and creates the account. Validation
// failures return a field-keyed validation error for inline display.
func (s *AuthService) Register(ctx context.Context, payload RegisterPayload) (*entities.User, error) {
	fields := map[string]string{}

	if strings.TrimSpace(payload.FirstName) == "" {
		fields["first_name"] = "First name is required."
	}
	if !ValidEmail(payload.Email) {
		fields["email"] = "A valid email is required."
	}
	phone, ok := NormalizePhone(payload.Phone)
	if !ok {
		fields["phone"] = "A valid international phone number is required."
	}
	if msg := ValidatePassword(payload.Password); msg != "" {
		fields["password"] = msg
	}
	if payload.Password != payload.RepeatPassword {
		fields["repeat_password"] = "Passwords do not match."
	}
	if len(fields) > 0 {
		return nil, apperrors.NewFieldValidationError("registration failed validation", fields)
	}

	if existing, err := s.users.GetByEmail(ctx, payload.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := s.now().UTC()
	user := &entities.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(payload.FirstName),
		LastName:     strings.TrimSpace(payload.LastName),
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:        phone,
		Country:      payload.Country,
		Province:     payload.Province,
		City:         payload.City,
		Birthdate:    payload.Birthdate,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials against the email or E.164 phone identifier and
// opens a session. Bad credentials are an unauthorized error, which callers
// surface as a forced logout.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*entities.Session, error) {
	user, err := s.lookup(ctx, identifier)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	return s.openSession(ctx, user)
}

func (s *AuthService) lookup(ctx context.Context, identifier string) (*entities.User, error) {
	if phone, ok := NormalizePhone(identifier); ok {
		return s.users.GetByPhone(ctx, phone)
	}
	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(identifier)))
}

func (s *AuthService) openSession(ctx context.Context, user *entities.User) (*entities.Session, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to sign token", err)
	}

	session := &entities.Session{Token: token, User: *user, ExpiresAt: expiresAt}
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode session", err)
	}
	if err := s.store.Set(ctx, sessionKey(token), raw, s.sessionTTL); err != nil {
		return nil, apperrors.NewInternalError("failed to persist session", err)
	}
	return session, nil
}

// Verify validates a session token: signature, expiry, and presence in the
// store (so logout revokes immediately).
func (s *AuthService) Verify(ctx context.Context, token string) (*entities.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid session token")
	}

	raw, err := s.store.Get(ctx, sessionKey(token))
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("session expired or revoked")
	}

	var session entities.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, apperrors.NewInternalError("corrupt session record", err)
	}
	return &session, nil
}

// Logout revokes the session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.Delete(ctx, sessionKey(token))
}

// PasswordResetPayload identifies the account by email or phone.
type PasswordResetPayload struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// RequestPasswordReset issues a short-lived reset token for the account.
// Unknown identifiers succeed silently so the endpoint does not leak which
// accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, payload PasswordResetPayload) (string, error) {
	identifier := payload.Email
	if identifier == "" {
		identifier = payload.Phone
	}
	if identifier == "" {
		return "", apperrors.NewValidationError("email or phone is required")
	}

	user, err := s.lookup(ctx, identifier)
	if err != nil {
		return "", nil
	}

	token := uuid.New().String()
	if err := s.store.Set(ctx, resetKey(token), []byte(user.ID), 15*time.Minute); err != nil {
		return "", apperrors.NewInternalError("failed to persist reset token", err)
	}
	return token, nil
}

// ChangePasswordPayload carries a password change via reset token or an
// authenticated current-password change.
type ChangePasswordPayload struct {
	ResetToken      string `json:"reset_token,omitempty"`
	UserID          string `json:"-"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password"`
	RepeatPassword  string `json:"repeat_password"`
}

// ChangePassword validates and applies a new password.
func (s *AuthService) ChangePassword(ctx context.Context, payload ChangePasswordPayload) error {
	fields := map[string]string{}
	if msg := ValidatePassword(payload.NewPassword); msg != "" {
		fields["new_password"] = msg
	}
	if payload.NewPassword != payload.RepeatPassword {
		fields["repeat_password"] = "Passwords do not match."
	}
	if len(fields) > 0 {
		return apperrors.NewFieldValidationError("password change failed validation", fields)
	}

	userID := payload.UserID
	if payload.ResetToken != "" {
		raw, err := s.store.Get(ctx, resetKey(payload.ResetToken))
		if err != nil {
			return apperrors.NewUnauthorizedError("invalid or expired reset token")
		}
		userID = string(raw)
		defer func() { _ = s.store.Delete(ctx, resetKey(payload.ResetToken)) }()
	} else {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.CurrentPassword)); err != nil {
			return apperrors.NewUnauthorizedError("current password is incorrect")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func sessionKey(token string) string {
	return SessionStorageKey + ":session:" + token
}

func resetKey(token string) string {
	return SessionStorageKey + ":reset:" + token
}
