package repositories

import (
	"context"

	"github.com/careseek/booking-backend/internal/domain/entities"
)

// ServiceFilter narrows catalog listings. Zero-valued fields are ignored.
type ServiceFilter struct {
	Category   entities.ServiceCategory
	Specialty  string
	ServiceID  string
	DoctorSex  string
	Area       string
	Insurance  string
	ActiveOnly bool

	Limit  int
	Offset int
}

// ServiceRepository defines the interface for catalog data operations
type ServiceRepository interface {
	// Create creates a new service
	Create(ctx context.Context, service *entities.Service) error

	// GetByID retrieves a service by ID
	GetByID(ctx context.Context, id string) (*entities.Service, error)

	// Update updates a service
	Update(ctx context.Context, service *entities.Service) error

	// Delete deletes a service
	Delete(ctx context.Context, id string) error

	// List retrieves services with filters, ordered by creation time
	List(ctx context.Context, filter ServiceFilter) ([]*entities.Service, error)

	// Count returns the number of services matching the filter
	Count(ctx context.Context, filter ServiceFilter) (int, error)
}

// ServiceSearchRepository defines the interface for full-text service search
// (e.g. Typesense)
type ServiceSearchRepository interface {
	// Search searches services by free text within a category
	Search(ctx context.Context, query string, filter ServiceFilter) ([]*entities.Service, error)

	// Index upserts a service document into the search index
	Index(ctx context.Context, service *entities.Service) error

	// Remove deletes a service document from the search index
	Remove(ctx context.Context, id string) error
}
