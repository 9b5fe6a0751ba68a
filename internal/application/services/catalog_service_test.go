package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/careseek/booking-backend/internal/domain/entities"
	"github.com/careseek/booking-backend/internal/domain/repositories"
	"github.com/careseek/booking-backend/internal/filters"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

func catalogServices(n int) []*entities.Service {
	out := make([]*entities.Service, n)
	for i := range out {
		out[i] = &entities.Service{
			ID:       fmt.Sprintf("svc-%d", i),
			Name:     entities.LocalizedText{"en": fmt.Sprintf("Service %d", i)},
			Category: entities.CategoryOffice,
			IsActive: true,
		}
	}
	return out
}

func TestCatalogService_Feed(t *testing.T) {
	t.Run("first page is ten services", func(t *testing.T) {
		repo := new(MockServiceRepo)
		svc := NewCatalogService(repo, nil)

		repo.On("Count", mock.Anything, mock.Anything).Return(37, nil)
		repo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.ServiceFilter) bool {
			return f.Limit == 10 && f.Offset == 0 && f.ActiveOnly
		})).Return(catalogServices(10), nil)

		page, err := svc.Feed(context.Background(), filters.Defaults(entities.CategoryOffice))

		require.NoError(t, err)
		assert.Len(t, page.Services, 10)
		assert.Equal(t, 0, page.Page)
		assert.Equal(t, 37, page.Total)
		assert.True(t, page.HasMore)
	})

	t.Run("total is capped at fifty", func(t *testing.T) {
		repo := new(MockServiceRepo)
		svc := NewCatalogService(repo, nil)

		repo.On("Count", mock.Anything, mock.Anything).Return(200, nil)
		repo.On("List", mock.Anything, mock.Anything).Return(catalogServices(10), nil)

		page, err := svc.Feed(context.Background(), filters.Defaults(entities.CategoryOffice))

		require.NoError(t, err)
		assert.Equal(t, FeedMaxResults, page.Total)
	})
}

func TestCatalogService_LoadMore(t *testing.T) {
	t.Run("last page is truncated at the cap", func(t *testing.T) {
		repo := new(MockServiceRepo)
		svc := NewCatalogService(repo, nil)
		svc.delay = time.Millisecond

		repo.On("Count", mock.Anything, mock.Anything).Return(200, nil)
		repo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.ServiceFilter) bool {
			// page 4 of a 50-cap feed: offset 40, final 10
			return f.Limit == 10 && f.Offset == 40
		})).Return(catalogServices(10), nil)

		page, err := svc.LoadMore(context.Background(), "feed-1", filters.Defaults(entities.CategoryOffice), 4)

		require.NoError(t, err)
		assert.Len(t, page.Services, 10)
		assert.False(t, page.HasMore)
	})

	t.Run("pages past the cap are empty", func(t *testing.T) {
		repo := new(MockServiceRepo)
		svc := NewCatalogService(repo, nil)
		svc.delay = time.Millisecond

		page, err := svc.LoadMore(context.Background(), "feed-1", filters.Defaults(entities.CategoryOffice), 5)

		require.NoError(t, err)
		assert.Empty(t, page.Services)
		assert.False(t, page.HasMore)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("re-entrant load is suppressed", func(t *testing.T) {
		repo := new(MockServiceRepo)
		svc := NewCatalogService(repo, nil)
		svc.delay = time.Millisecond

		// Simulate an in-flight load for this feed.
		svc.loading.Store("feed-1", struct{}{})

		page, err := svc.LoadMore(context.Background(), "feed-1", filters.Defaults(entities.CategoryOffice), 1)

		require.NoError(t, err)
		assert.True(t, page.Suppressed)
		assert.Empty(t, page.Services)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("other feeds are not blocked", func(t *testing.T) {
		repo := new(MockServiceRepo)
		svc := NewCatalogService(repo, nil)
		svc.delay = time.Millisecond

		svc.loading.Store("feed-1", struct{}{})
		repo.On("Count", mock.Anything, mock.Anything).Return(20, nil)
		repo.On("List", mock.Anything, mock.Anything).Return(catalogServices(10), nil)

		page, err := svc.LoadMore(context.Background(), "feed-2", filters.Defaults(entities.CategoryOffice), 1)

		require.NoError(t, err)
		assert.False(t, page.Suppressed)
		assert.Len(t, page.Services, 10)
	})

	t.Run("cancelled context aborts before querying", func(t *testing.T) {
		repo := new(MockServiceRepo)
		svc := NewCatalogService(repo, nil)
		svc.delay = time.Minute

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.LoadMore(ctx, "feed-1", filters.Defaults(entities.CategoryOffice), 1)

		assert.ErrorIs(t, err, context.Canceled)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("page zero is rejected", func(t *testing.T) {
		svc := NewCatalogService(new(MockServiceRepo), nil)

		_, err := svc.LoadMore(context.Background(), "feed-1", filters.Defaults(entities.CategoryOffice), 0)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})
}

func TestCatalogService_Search(t *testing.T) {
	t.Run("delegates to the search index with the filter state", func(t *testing.T) {
		search := new(MockSearchRepo)
		svc := NewCatalogService(new(MockServiceRepo), search)

		state := filters.Defaults(entities.CategoryOffice)
		state.Specialty = "cardiology"

		search.On("Search", mock.Anything, "heart", mock.MatchedBy(func(f repositories.ServiceFilter) bool {
			return f.Specialty == "cardiology" && f.Category == entities.CategoryOffice && f.ActiveOnly
		})).Return(catalogServices(2), nil)

		results, err := svc.Search(context.Background(), "heart", state)

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		svc := NewCatalogService(new(MockServiceRepo), new(MockSearchRepo))

		_, err := svc.Search(context.Background(), "", filters.Defaults(entities.CategoryOffice))

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})
}
