// Package search implements catalog full-text search on Typesense. Documents
// carry the searchable projection of a service; the database stays the
// source of truth.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	tsclient "github.com/careseek/booking-backend/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.ServicesCollection

// TypesenseAdapter implements service search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ServiceSearchRepository
var _ repositories.ServiceSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name_en", Type: "string"},
			{Name: "name_fa", Type: "string", Locale: pointer.String("fa")},
			{Name: "description_en", Type: "string"},
			{Name: "description_fa", Type: "string", Locale: pointer.String("fa")},
			{Name: "category", Type: "string", Facet: pointer.True()},
			{Name: "specialty", Type: "string", Facet: pointer.True()},
			{Name: "doctor_sex", Type: "string", Facet: pointer.True()},
			{Name: "area", Type: "string", Facet: pointer.True()},
			{Name: "insurances", Type: "string[]", Facet: pointer.True()},
			{Name: "is_active", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err = a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// Index upserts a service document into the search index
func (a *TypesenseAdapter) Index(ctx context.Context, service *entities.Service) error {
	document := map[string]interface{}{
		"id":             service.ID,
		"name_en":        service.Name.In("en"),
		"name_fa":        service.Name.In("fa"),
		"description_en": service.Description.In("en"),
		"description_fa": service.Description.In("fa"),
		"category":       string(service.Category),
		"specialty":      service.Specialty,
		"doctor_sex":     service.DoctorSex,
		"area":           service.Area,
		"insurances":     service.Insurances,
		"is_active":      service.IsActive,
		"created_at":     service.CreatedAt.Unix(),
	}

	if _, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index service: %w", err)
	}
	return nil
}

// Remove deletes a service document from the search index
func (a *TypesenseAdapter) Remove(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete service from index: %w", err)
	}
	return nil
}

// Search searches services by free text within a category
func (a *TypesenseAdapter) Search(ctx context.Context, query string, filter repositories.ServiceFilter) ([]*entities.Service, error) {
	if query == "" {
		query = "*"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := 1
	if filter.Offset > 0 {
		page = filter.Offset/limit + 1
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name_en,name_fa,description_en,description_fa"),
		FilterBy: pointer.String(buildFilterBy(filter)),
		Page:     pointer.Int(page),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}

	services := []*entities.Service{}
	if result.Hits == nil {
		return services, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document
		services = append(services, documentToService(doc))
	}
	return services, nil
}

func buildFilterBy(filter repositories.ServiceFilter) string {
	clauses := []string{"is_active:=true"}
	if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("category:=%s", filter.Category))
	}
	if filter.Specialty != "" {
		clauses = append(clauses, fmt.Sprintf("specialty:=%s", filter.Specialty))
	}
	if filter.DoctorSex != "" {
		clauses = append(clauses, fmt.Sprintf("doctor_sex:=%s", filter.DoctorSex))
	}
	if filter.Area != "" {
		clauses = append(clauses, fmt.Sprintf("area:=%s", filter.Area))
	}
	if filter.Insurance != "" {
		clauses = append(clauses, fmt.Sprintf("insurances:=%s", filter.Insurance))
	}
	return strings.Join(clauses, " && ")
}

// documentToService reconstructs the searchable projection of a service.
// Callers needing the full entity re-fetch it from the repository by ID.
func documentToService(doc map[string]interface{}) *entities.Service {
	service := &entities.Service{
		Name:        entities.LocalizedText{},
		Description: entities.LocalizedText{},
	}
	if v, ok := doc["id"].(string); ok {
		service.ID = v
	}
	if v, ok := doc["name_en"].(string); ok {
		service.Name["en"] = v
	}
	if v, ok := doc["name_fa"].(string); ok {
		service.Name["fa"] = v
	}
	if v, ok := doc["description_en"].(string); ok {
		service.Description["en"] = v
	}
	if v, ok := doc["description_fa"].(string); ok {
		service.Description["fa"] = v
	}
	if v, ok := doc["category"].(string); ok {
		service.Category = entities.ServiceCategory(v)
	}
	if v, ok := doc["specialty"].(string); ok {
		service.Specialty = v
	}
	if v, ok := doc["doctor_sex"].(string); ok {
		service.DoctorSex = v
	}
	if v, ok := doc["area"].(string); ok {
		service.Area = v
	}
	if v, ok := doc["insurances"].([]interface{}); ok {
		for _, raw := range v {
			if s, ok := raw.(string); ok {
				service.Insurances = append(service.Insurances, s)
			}
		}
	}
	if v, ok := doc["is_active"].(bool); ok {
		service.IsActive = v
	}
	return service
}
