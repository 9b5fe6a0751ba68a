package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

var userColumns = []interface{}{
	"id", "first_name", "last_name", "email", "phone", "country",
	"province", "city", "birthdate", "wallet_usd", "password_hash",
	"created_at", "updated_at",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":            user.ID,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"email":         user.Email,
		"phone":         user.Phone,
		"country":       user.Country,
		"province":      user.Province,
		"city":          user.City,
		"birthdate":     user.Birthdate,
		"wallet_usd":    user.WalletUSD,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"id": id}, fmt.Sprintf("user with id %s not found", id))
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"email": email}, fmt.Sprintf("user with email %s not found", email))
}

// GetByPhone retrieves a user by E.164 phone number
func (a *UserAdapter) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"phone": phone}, fmt.Sprintf("user with phone %s not found", phone))
}

func (a *UserAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).
		From("users").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// Update updates a user's profile fields
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	query, args, err := a.db.Update("users").
		Set(goqu.Record{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"phone":      user.Phone,
			"country":    user.Country,
			"province":   user.Province,
			"city":       user.City,
			"birthdate":  user.Birthdate,
			"wallet_usd": user.WalletUSD,
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": user.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update user", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", user.ID))
	}
	return nil
}

// UpdatePassword replaces a user's password hash
func (a *UserAdapter) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query, args, err := a.db.Update("users").
		Set(goqu.Record{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update password", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var country, province, city, birthdate sql.NullString

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&country,
		&province,
		&city,
		&birthdate,
		&user.WalletUSD,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Country = country.String
	user.Province = province.String
	user.City = city.String
	user.Birthdate = birthdate.String
	return user, nil
}
