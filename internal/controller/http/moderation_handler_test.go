package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adboard/internal/entity"
	"adboard/internal/usecase"
	"adboard/pkg/apperrors"
	"adboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockModerationUseCase is a mock implementation of ModerationUseCase
type MockModerationUseCase struct {
	mock.Mock
}

func (m *MockModerationUseCase) Approve(actor usecase.Actor, listingID uint) (*entity.Listing, error) {
	args := m.Called(actor, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockModerationUseCase) Reject(actor usecase.Actor, listingID uint) (*entity.Listing, error) {
	args := m.Called(actor, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockModerationUseCase) Activate(actor usecase.Actor, listingID uint) (*entity.Listing, error) {
	args := m.Called(actor, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockModerationUseCase) Deactivate(actor usecase.Actor, listingID uint) (*entity.Listing, error) {
	args := m.Called(actor, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockModerationUseCase) PendingListings(actor usecase.Actor, limit, offset int) ([]*entity.Listing, error) {
	args := m.Called(actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

var _ usecase.ModerationUseCase = (*MockModerationUseCase)(nil)

func TestApproveListing_Success(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/listings/:id/approve", asUser(99, true, handler.ApproveListing))

	approved := &entity.Listing{ID: 1, UserID: 10, Approved: true, Active: true}
	mockUseCase.On("Approve", usecase.Actor{UserID: 99, IsAdmin: true}, uint(1)).Return(approved, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/listings/1/approve", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Listing approved", response["message"])
	listing := response["listing"].(map[string]interface{})
	assert.Equal(t, "active", listing["status"])

	mockUseCase.AssertExpectations(t)
}

func TestApproveListing_WrongState(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/listings/:id/approve", asUser(99, true, handler.ApproveListing))

	mockUseCase.On("Approve", mock.Anything, uint(1)).
		Return(nil, apperrors.ErrInvalidTransition)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/listings/1/approve", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "invalid_transition", response["code"])

	mockUseCase.AssertExpectations(t)
}

func TestRejectListing_Success(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/listings/:id/reject", asUser(99, true, handler.RejectListing))

	rejected := &entity.Listing{ID: 1, UserID: 10, Approved: false, Active: false}
	mockUseCase.On("Reject", usecase.Actor{UserID: 99, IsAdmin: true}, uint(1)).Return(rejected, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/listings/1/reject", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	listing := response["listing"].(map[string]interface{})
	assert.Equal(t, "rejected", listing["status"])

	mockUseCase.AssertExpectations(t)
}

func TestDeactivateListing_Forbidden(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/listings/:id/deactivate", asUser(2, false, handler.DeactivateListing))

	mockUseCase.On("Deactivate", usecase.Actor{UserID: 2}, uint(1)).
		Return(nil, apperrors.ErrUnauthorized)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/listings/1/deactivate", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestPendingListings_Success(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/moderation/pending", asUser(99, true, handler.PendingListings))

	queue := []*entity.Listing{
		{ID: 1, Approved: false, Active: true},
		{ID: 2, Approved: false, Active: true},
	}
	mockUseCase.On("PendingListings", usecase.Actor{UserID: 99, IsAdmin: true}, 20, 0).Return(queue, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/moderation/pending", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])

	mockUseCase.AssertExpectations(t)
}
