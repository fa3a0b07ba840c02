package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinehub/internal/http-api/dto"
	"cinehub/internal/http-api/middleware"
	"cinehub/internal/http-api/models"
	"cinehub/internal/http-api/repository"
	"cinehub/internal/http-api/roles"
	"cinehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTitleService mocks the TitleService interface
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedTitleResponse), args.Error(1)
}

func (m *MockTitleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, d dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, id int64, d dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTitleRouter(titleService service.TitleService, actor service.Actor) *gin.Engine {
	router := setupRouter()
	router.HandleMethodNotAllowed = true
	NewTitleHandler(titleService).RegisterRoutes(router.Group("/api/v1"), fakeAuth(actor), middleware.RequireAdmin())
	return router
}

func TestTitlesList_FiltersParsed(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, service.Actor{Role: roles.Anonymous})

	year := 1972
	expected := repository.TitleFilter{
		CategorySlug: "movies",
		GenreSlug:    "drama",
		Year:         &year,
		Name:         "god",
	}
	rating := 9.1
	mockTitleService.On("List", mock.Anything, expected, 1, 20).Return(&dto.PaginatedTitleResponse{
		Data:       []dto.TitleResponse{{ID: 5, Name: "The Godfather", Year: 1972, Rating: &rating}},
		Pagination: dto.NewPagination(1, 1, 20),
	}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles?category=movies&genre=drama&year=1972&name=god", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PaginatedTitleResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, 9.1, *response.Data[0].Rating)
	mockTitleService.AssertExpectations(t)
}

func TestTitlesList_BadYearFilter(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, service.Actor{Role: roles.Anonymous})

	req, _ := http.NewRequest("GET", "/api/v1/titles?year=nineteen72", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTitleService.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A title without reviews serialises rating as JSON null, not zero.
func TestTitlesGet_NullRating(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, service.Actor{Role: roles.Anonymous})

	mockTitleService.On("GetByID", mock.Anything, int64(5)).Return(&dto.TitleResponse{
		ID:   5,
		Name: "Unseen",
		Year: 2020,
	}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles/5", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	rating, present := response["rating"]
	assert.True(t, present)
	assert.Nil(t, rating)
}

func TestTitlesCreate_NonAdminForbidden(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, service.Actor{ID: "user-id", Role: roles.User})

	body, _ := json.Marshal(dto.CreateTitleDTO{Name: "Sneaky", Year: 2020})
	req, _ := http.NewRequest("POST", "/api/v1/titles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockTitleService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitlesCreate_YearInFuture(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, service.Actor{ID: "admin-id", Role: roles.Admin})

	payload := dto.CreateTitleDTO{Name: "From the Future", Year: time.Now().Year() + 1}
	mockTitleService.On("Create", mock.Anything, payload).Return(nil, models.ErrYearInFuture)

	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/v1/titles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTitleService.AssertExpectations(t)
}

func TestTitlesPut_NotAllowed(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, service.Actor{ID: "admin-id", Role: roles.Admin})

	body, _ := json.Marshal(dto.CreateTitleDTO{Name: "Replaced", Year: 2020})
	req, _ := http.NewRequest("PUT", "/api/v1/titles/5", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestTitlesDelete_Admin(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, service.Actor{ID: "admin-id", Role: roles.Admin})

	mockTitleService.On("Delete", mock.Anything, int64(5)).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/titles/5", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockTitleService.AssertExpectations(t)
}
