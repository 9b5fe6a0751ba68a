package services

import (
	"context"
	"sync"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/filters"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

const (
	// FeedPageSize is the number of services returned per feed page.
	FeedPageSize = 10

	// FeedMaxResults caps the total feed length.
	FeedMaxResults = 50

	// feedLoadDelay simulates upstream latency on incremental loads so the
	// client exercises its loading states.
	feedLoadDelay = 600 * time.Millisecond
)

// FeedPage is one page of the catalog feed.
type FeedPage struct {
	Services   []*entities.Service `json:"services"`
	Page       int                 `json:"page"`
	Total      int                 `json:"total"`
	HasMore    bool                `json:"has_more"`
	Suppressed bool                `json:"suppressed,omitempty"`
}

// CatalogService serves the service catalog: paged feed, detail lookup, and
// full-text search. Incremental feed loads carry a fixed delay and suppress
// re-entrant loads per feed so a scroll-triggered burst produces one fetch.
type CatalogService struct {
	services repositories.ServiceRepository
	search   repositories.ServiceSearchRepository
	loading  sync.Map // feed ID -> in-flight flag
	delay    time.Duration
}

// NewCatalogService creates a new catalog service
func NewCatalogService(services repositories.ServiceRepository, search repositories.ServiceSearchRepository) *CatalogService {
	return &CatalogService{
		services: services,
		search:   search,
		delay:    feedLoadDelay,
	}
}

// GetService retrieves a single service by ID.
func (s *CatalogService) GetService(ctx context.Context, id string) (*entities.Service, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("service id is required")
	}
	return s.services.GetByID(ctx, id)
}

// Feed returns page 0 of the catalog for the given filter state. The first
// page loads without the simulated delay.
func (s *CatalogService) Feed(ctx context.Context, state filters.State) (*FeedPage, error) {
	return s.page(ctx, state, 0)
}

// LoadMore returns the next feed page. While a load for feedID is in flight,
// further calls for the same feedID return a suppressed empty page instead of
// issuing a second query.
func (s *CatalogService) LoadMore(ctx context.Context, feedID string, state filters.State, page int) (*FeedPage, error) {
	if page < 1 {
		return nil, apperrors.NewValidationError("page must be at least 1")
	}

	if _, busy := s.loading.LoadOrStore(feedID, struct{}{}); busy {
		return &FeedPage{Services: []*entities.Service{}, Page: page, Suppressed: true}, nil
	}
	defer s.loading.Delete(feedID)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
	}

	return s.page(ctx, state, page)
}

func (s *CatalogService) page(ctx context.Context, state filters.State, page int) (*FeedPage, error) {
	filter := state.RepositoryFilter()
	filter.ActiveOnly = true
	filter.Limit = FeedPageSize
	filter.Offset = page * FeedPageSize

	if filter.Offset >= FeedMaxResults {
		return &FeedPage{Services: []*entities.Service{}, Page: page, Total: FeedMaxResults, HasMore: false}, nil
	}
	if filter.Offset+filter.Limit > FeedMaxResults {
		filter.Limit = FeedMaxResults - filter.Offset
	}

	total, err := s.services.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	if total > FeedMaxResults {
		total = FeedMaxResults
	}

	services, err := s.services.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Services: services,
		Page:     page,
		Total:    total,
		HasMore:  filter.Offset+len(services) < total,
	}, nil
}

// Search runs a full-text query against the search index, scoped to the
// filter state's category and facets.
func (s *CatalogService) Search(ctx context.Context, query string, state filters.State) ([]*entities.Service, error) {
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	filter := state.RepositoryFilter()
	filter.ActiveOnly = true
	filter.Limit = FeedPageSize
	return s.search.Search(ctx, query, filter)
}
