// Package database implements the domain repositories on PostgreSQL. SQL is
// built with goqu; localized text and address lists are stored as JSONB.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

var serviceColumns = []interface{}{
	"id", "name", "description", "image", "category", "specialty",
	"doctor_sex", "area", "insurances", "price_usd", "addresses",
	"scheduling_id", "is_active", "created_at", "updated_at",
}

// ServiceAdapter implements the ServiceRepository interface
type ServiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewServiceAdapter creates a new service adapter
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new service
func (a *ServiceAdapter) Create(ctx context.Context, service *entities.Service) error {
	record, err := serviceRecord(service)
	if err != nil {
		return err
	}

	query, args, err := a.db.Insert("services").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create service", err)
	}
	return nil
}

// GetByID retrieves a service by ID
func (a *ServiceAdapter) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	query, args, err := a.db.Select(serviceColumns...).
		From("services").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	service, err := scanService(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get service", err)
	}
	return service, nil
}

// Update updates a service
func (a *ServiceAdapter) Update(ctx context.Context, service *entities.Service) error {
	record, err := serviceRecord(service)
	if err != nil {
		return err
	}
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("services").
		Set(record).
		Where(goqu.Ex{"id": service.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update service", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", service.ID))
	}
	return nil
}

// Delete deletes a service
func (a *ServiceAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("services").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete service", err)
	}
	return nil
}

// List retrieves services with filters, ordered by creation time
func (a *ServiceAdapter) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.Service, error) {
	ds := a.db.Select(serviceColumns...).
		From("services").
		Where(filterExpressions(filter)...).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}
	defer rows.Close()

	var services []*entities.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate services", err)
	}
	return services, nil
}

// Count returns the number of services matching the filter
func (a *ServiceAdapter) Count(ctx context.Context, filter repositories.ServiceFilter) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("services").
		Where(filterExpressions(filter)...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count services", err)
	}
	return count, nil
}

func filterExpressions(filter repositories.ServiceFilter) []goqu.Expression {
	var exprs []goqu.Expression
	if filter.Category != "" {
		exprs = append(exprs, goqu.Ex{"category": string(filter.Category)})
	}
	if filter.Specialty != "" {
		exprs = append(exprs, goqu.Ex{"specialty": filter.Specialty})
	}
	if filter.ServiceID != "" {
		exprs = append(exprs, goqu.Ex{"id": filter.ServiceID})
	}
	if filter.DoctorSex != "" {
		exprs = append(exprs, goqu.Ex{"doctor_sex": filter.DoctorSex})
	}
	if filter.Area != "" {
		exprs = append(exprs, goqu.Ex{"area": filter.Area})
	}
	if filter.Insurance != "" {
		exprs = append(exprs, goqu.L("? = ANY(insurances)", filter.Insurance))
	}
	if filter.ActiveOnly {
		exprs = append(exprs, goqu.Ex{"is_active": true})
	}
	return exprs
}

func serviceRecord(service *entities.Service) (goqu.Record, error) {
	name, err := json.Marshal(service.Name)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode service name", err)
	}
	description, err := json.Marshal(service.Description)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode service description", err)
	}
	addresses, err := json.Marshal(service.Addresses)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode service addresses", err)
	}

	return goqu.Record{
		"id":            service.ID,
		"name":          name,
		"description":   description,
		"image":         service.Image,
		"category":      string(service.Category),
		"specialty":     service.Specialty,
		"doctor_sex":    service.DoctorSex,
		"area":          service.Area,
		"insurances":    pq.Array(service.Insurances),
		"price_usd":     service.PriceUSD,
		"addresses":     addresses,
		"scheduling_id": service.SchedulingID,
		"is_active":     service.IsActive,
		"created_at":    service.CreatedAt,
		"updated_at":    service.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*entities.Service, error) {
	service := &entities.Service{}
	var name, description, addresses []byte
	var image, specialty, doctorSex, area, schedulingID sql.NullString
	var insurances pq.StringArray

	err := row.Scan(
		&service.ID,
		&name,
		&description,
		&image,
		&service.Category,
		&specialty,
		&doctorSex,
		&area,
		&insurances,
		&service.PriceUSD,
		&addresses,
		&schedulingID,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(name, &service.Name); err != nil {
		return nil, fmt.Errorf("decode service name: %w", err)
	}
	if err := json.Unmarshal(description, &service.Description); err != nil {
		return nil, fmt.Errorf("decode service description: %w", err)
	}
	if err := json.Unmarshal(addresses, &service.Addresses); err != nil {
		return nil, fmt.Errorf("decode service addresses: %w", err)
	}

	service.Image = image.String
	service.Specialty = specialty.String
	service.DoctorSex = doctorSex.String
	service.Area = area.String
	service.SchedulingID = schedulingID.String
	service.Insurances = insurances
	return service, nil
}
