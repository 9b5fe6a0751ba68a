package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/providers"
	"github.com/careseek/booking-backend/internal/domain/repositories"
)

// CachedServiceAdapter wraps a ServiceRepository with read-through caching
type CachedServiceAdapter struct {
	adapter repositories.ServiceRepository
	store   providers.StoreProvider
}

// NewCachedServiceAdapter creates a new cached service adapter
func NewCachedServiceAdapter(adapter repositories.ServiceRepository, store providers.StoreProvider) repositories.ServiceRepository {
	return &CachedServiceAdapter{
		adapter: adapter,
		store:   store,
	}
}

// Cache TTLs
const (
	serviceByIDTTL   = 5 * time.Minute
	servicesListTTL  = 3 * time.Minute
	servicesCountTTL = 3 * time.Minute
)

func serviceCacheKey(id string) string {
	return fmt.Sprintf("service:%s", id)
}

func servicesListCacheKey(filter repositories.ServiceFilter) string {
	return fmt.Sprintf("services:list:%s:%s:%s:%s:%s:%s:%d:%d",
		filter.Category, filter.Specialty, filter.ServiceID, filter.DoctorSex,
		filter.Area, filter.Insurance, filter.Limit, filter.Offset)
}

// GetByID retrieves a service by ID with caching
func (a *CachedServiceAdapter) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	cacheKey := serviceCacheKey(id)

	if cached, err := a.store.Get(ctx, cacheKey); err == nil {
		var service entities.Service
		if err := json.Unmarshal(cached, &service); err == nil {
			return &service, nil
		}
		log.Printf("Failed to unmarshal cached service %s: %v", id, err)
	}

	service, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(service); err == nil {
			if err := a.store.Set(bgCtx, cacheKey, data, serviceByIDTTL); err != nil {
				log.Printf("Failed to cache service %s: %v", id, err)
			}
		}
	}()

	return service, nil
}

// List retrieves services with caching per filter shape
func (a *CachedServiceAdapter) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.Service, error) {
	cacheKey := servicesListCacheKey(filter)

	if cached, err := a.store.Get(ctx, cacheKey); err == nil {
		var services []*entities.Service
		if err := json.Unmarshal(cached, &services); err == nil {
			return services, nil
		}
	}

	services, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(services); err == nil {
			if err := a.store.Set(bgCtx, cacheKey, data, servicesListTTL); err != nil {
				log.Printf("Failed to cache service list: %v", err)
			}
		}
	}()

	return services, nil
}

// Count returns the number of matching services with caching
func (a *CachedServiceAdapter) Count(ctx context.Context, filter repositories.ServiceFilter) (int, error) {
	cacheKey := "count:" + servicesListCacheKey(filter)

	if cached, err := a.store.Get(ctx, cacheKey); err == nil {
		var count int
		if err := json.Unmarshal(cached, &count); err == nil {
			return count, nil
		}
	}

	count, err := a.adapter.Count(ctx, filter)
	if err != nil {
		return 0, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(count); err == nil {
			_ = a.store.Set(bgCtx, cacheKey, data, servicesCountTTL)
		}
	}()

	return count, nil
}

// Create creates a service and invalidates its cache entry
func (a *CachedServiceAdapter) Create(ctx context.Context, service *entities.Service) error {
	return a.adapter.Create(ctx, service)
}

// Update updates a service and invalidates its cache entry
func (a *CachedServiceAdapter) Update(ctx context.Context, service *entities.Service) error {
	if err := a.adapter.Update(ctx, service); err != nil {
		return err
	}
	if err := a.store.Delete(ctx, serviceCacheKey(service.ID)); err != nil {
		log.Printf("Failed to invalidate cached service %s: %v", service.ID, err)
	}
	return nil
}

// Delete deletes a service and invalidates its cache entry
func (a *CachedServiceAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	if err := a.store.Delete(ctx, serviceCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate cached service %s: %v", id, err)
	}
	return nil
}
