package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"
	"adboard/pkg/apperrors"
	"adboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testTTL = 30 * 24 * time.Hour

func newListingUseCaseForTest(listingRepo *MockListingRepository, userRepo *MockUserRepository, categoryRepo *MockCategoryRepository) ListingUseCase {
	return NewListingUseCase(listingRepo, userRepo, categoryRepo, nil, testTTL, logger.New())
}

func newListingUseCaseWithStorage(listingRepo *MockListingRepository, userRepo *MockUserRepository, categoryRepo *MockCategoryRepository, store *MockImageStorage) ListingUseCase {
	return NewListingUseCase(listingRepo, userRepo, categoryRepo, store, testTTL, logger.New())
}

// multipartImages builds real file headers the way gin's form parser would,
// so file.Open() works inside the use case.
func multipartImages(t *testing.T, count int) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for i := 0; i < count; i++ {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="photo%d.jpg"`, i))
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		part.Write([]byte("fake jpeg bytes"))
	}
	writer.Close()

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to parse form: %v", err)
	}
	return form.File["images"]
}

func validInput() ListingInput {
	return ListingInput{
		Title:       "Mountain bike",
		Description: "Barely used",
		City:        "Berlin",
		CategoryID:  3,
		Type:        entity.TypeStandard,
	}
}

func TestCreateListing_MissingTitle(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockUsers := new(MockUserRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, mockUsers, mockCategories)

	input := validInput()
	input.Title = "  "

	_, err := uc.CreateListing(Actor{UserID: 1}, input, nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateListing_UnknownCategory(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockUsers := new(MockUserRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, mockUsers, mockCategories)

	mockCategories.On("GetByID", uint(3)).Return(nil, apperrors.ErrNotFound)

	_, err := uc.CreateListing(Actor{UserID: 1}, validInput(), nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateListing_FirstStandardListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockUsers := new(MockUserRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, mockUsers, mockCategories)

	mockCategories.On("GetByID", uint(3)).Return(&entity.Category{ID: 3}, nil)
	mockUsers.On("GetByID", uint(1)).Return(&entity.User{ID: 1, HasUsedFreeAd: false}, nil)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Listing"), true).Return(nil)

	listing, err := uc.CreateListing(Actor{UserID: 1}, validInput(), nil)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusPending, listing.Status())
	assert.Equal(t, uint(1), listing.UserID)
	assert.WithinDuration(t, time.Now().Add(testTTL), listing.ExpiresAt, time.Minute)
	mockRepo.AssertExpectations(t)
}

func TestCreateListing_QuotaSpent(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockUsers := new(MockUserRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, mockUsers, mockCategories)

	mockCategories.On("GetByID", uint(3)).Return(&entity.Category{ID: 3}, nil)
	mockUsers.On("GetByID", uint(1)).Return(&entity.User{ID: 1, HasUsedFreeAd: true}, nil)

	_, err := uc.CreateListing(Actor{UserID: 1}, validInput(), nil)

	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateListing_PremiumBypassesQuota(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockUsers := new(MockUserRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, mockUsers, mockCategories)

	input := validInput()
	input.Type = entity.TypePremium

	mockCategories.On("GetByID", uint(3)).Return(&entity.Category{ID: 3}, nil)
	mockRepo.On("Create", mock.AnythingOfType("*entity.Listing"), false).Return(nil)

	listing, err := uc.CreateListing(Actor{UserID: 1}, input, nil)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusPending, listing.Status())
	// Premium creation never consults the quota flag.
	mockUsers.AssertNotCalled(t, "GetByID")
	mockRepo.AssertExpectations(t)
}

func TestCreateListing_QuotaRaceDetectedInTransaction(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockUsers := new(MockUserRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, mockUsers, mockCategories)

	mockCategories.On("GetByID", uint(3)).Return(&entity.Category{ID: 3}, nil)
	mockUsers.On("GetByID", uint(1)).Return(&entity.User{ID: 1, HasUsedFreeAd: false}, nil)
	// The fast-path check passed but a concurrent create spent the flag
	// first; the conditional update inside the transaction catches it.
	mockRepo.On("Create", mock.AnythingOfType("*entity.Listing"), true).
		Return(apperrors.ErrQuotaExceeded)

	_, err := uc.CreateListing(Actor{UserID: 1}, validInput(), nil)

	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	mockRepo.AssertExpectations(t)
}

func TestCreateListing_UploadFailureCleansOrphans(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockCategories := new(MockCategoryRepository)
	mockStorage := new(MockImageStorage)
	uc := newListingUseCaseWithStorage(mockRepo, new(MockUserRepository), mockCategories, mockStorage)

	input := validInput()
	input.Type = entity.TypePremium

	mockCategories.On("GetByID", uint(3)).Return(&entity.Category{ID: 3}, nil)

	var firstKey string
	mockStorage.On("UploadFile", mock.Anything, mock.Anything, "image/jpeg").
		Run(func(args mock.Arguments) { firstKey = args.String(0) }).
		Return("http://minio:9000/adboard/first.jpg", nil).Once()
	mockStorage.On("UploadFile", mock.Anything, mock.Anything, "image/jpeg").
		Return("", errors.New("connection reset")).Once()
	mockStorage.On("DeleteFile", mock.Anything).Return(nil)

	_, err := uc.CreateListing(Actor{UserID: 1}, input, multipartImages(t, 2))

	assert.ErrorIs(t, err, apperrors.ErrDependency)
	// The object uploaded before the failure must not be left orphaned.
	mockStorage.AssertCalled(t, "DeleteFile", firstKey)
	mockStorage.AssertNumberOfCalls(t, "DeleteFile", 1)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestGetListing_PublicCountsView(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	listing := &entity.Listing{ID: 1, UserID: 10, Approved: true, Active: true, Views: 7, ExpiresAt: time.Now().Add(time.Hour)}
	mockRepo.On("GetByID", uint(1)).Return(listing, nil)
	mockRepo.On("IncrementViews", uint(1)).Return(nil)

	got, err := uc.GetListing(Actor{UserID: 2}, 1)

	assert.NoError(t, err)
	assert.Equal(t, 8, got.Views)
	mockRepo.AssertExpectations(t)
}

func TestGetListing_HiddenFromStranger(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	listing := &entity.Listing{ID: 1, UserID: 10, Approved: false, Active: true, ExpiresAt: time.Now().Add(time.Hour)}
	mockRepo.On("GetByID", uint(1)).Return(listing, nil)

	_, err := uc.GetListing(Actor{UserID: 2}, 1)

	// Invisible and missing are the same answer.
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertNotCalled(t, "IncrementViews")
}

func TestGetListing_OwnerSeesPending(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	listing := &entity.Listing{ID: 1, UserID: 10, Approved: false, Active: true, ExpiresAt: time.Now().Add(time.Hour)}
	mockRepo.On("GetByID", uint(1)).Return(listing, nil)
	mockRepo.On("IncrementViews", uint(1)).Return(nil)

	got, err := uc.GetListing(Actor{UserID: 10}, 1)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status())
	mockRepo.AssertExpectations(t)
}

func TestGetListing_AdminReadDoesNotCountView(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	listing := &entity.Listing{ID: 1, UserID: 10, Approved: false, Active: true, Views: 7, ExpiresAt: time.Now().Add(time.Hour)}
	mockRepo.On("GetByID", uint(1)).Return(listing, nil)

	// An administrator sees the pending listing, but an override read is
	// not a qualifying view.
	got, err := uc.GetListing(Actor{UserID: 99, IsAdmin: true}, 1)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status())
	assert.Equal(t, 7, got.Views)
	mockRepo.AssertNotCalled(t, "IncrementViews")
}

func TestGetListing_LazyExpiry(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	expired := &entity.Listing{ID: 1, UserID: 10, Approved: true, Active: true, ExpiresAt: time.Now().Add(-time.Hour)}
	mockRepo.On("GetByID", uint(1)).Return(expired, nil)
	mockRepo.On("ApplyTransition", uint(1), persistent.TransitionDeactivate).Return(nil)
	mockRepo.On("IncrementViews", uint(1)).Return(nil)

	got, err := uc.GetListing(Actor{UserID: 10}, 1)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, got.Status())
	mockRepo.AssertExpectations(t)
}

func TestGetListing_ExpiredHiddenFromPublic(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	expired := &entity.Listing{ID: 1, UserID: 10, Approved: true, Active: true, ExpiresAt: time.Now().Add(-time.Hour)}
	mockRepo.On("GetByID", uint(1)).Return(expired, nil)
	mockRepo.On("ApplyTransition", uint(1), persistent.TransitionDeactivate).Return(nil)

	_, err := uc.GetListing(Actor{UserID: 2}, 1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertNotCalled(t, "IncrementViews")
}

func TestEditAndResubmit_Stranger(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	rejected := &entity.Listing{ID: 1, UserID: 10, Approved: false, Active: false, Type: entity.TypeStandard}
	mockRepo.On("GetByID", uint(1)).Return(rejected, nil)

	_, err := uc.EditAndResubmit(Actor{UserID: 2}, 1, validInput())

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "EditAndResubmit")
}

func TestEditAndResubmit_RejectedListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), mockCategories)

	rejected := &entity.Listing{ID: 1, UserID: 10, Approved: false, Active: false, Type: entity.TypePremium}
	mockRepo.On("GetByID", uint(1)).Return(rejected, nil)
	mockCategories.On("GetByID", uint(3)).Return(&entity.Category{ID: 3}, nil)
	mockRepo.On("EditAndResubmit", mock.AnythingOfType("*entity.Listing")).Return(nil)

	got, err := uc.EditAndResubmit(Actor{UserID: 10}, 1, validInput())

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status())
	assert.Equal(t, "Mountain bike", got.Title)
	// The listing type cannot be changed by an edit.
	assert.Equal(t, entity.TypePremium, got.Type)
	mockRepo.AssertExpectations(t)
}

func TestEditAndResubmit_ActiveListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockCategories := new(MockCategoryRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), mockCategories)

	active := &entity.Listing{ID: 1, UserID: 10, Approved: true, Active: true, Type: entity.TypeStandard}
	mockRepo.On("GetByID", uint(1)).Return(active, nil)
	mockCategories.On("GetByID", uint(3)).Return(&entity.Category{ID: 3}, nil)
	mockRepo.On("EditAndResubmit", mock.AnythingOfType("*entity.Listing")).
		Return(apperrors.ErrInvalidTransition)

	_, err := uc.EditAndResubmit(Actor{UserID: 10}, 1, validInput())

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	mockRepo.AssertExpectations(t)
}

func TestDeleteListing_Owner(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	listing := &entity.Listing{ID: 1, UserID: 10, Approved: true, Active: true}
	mockRepo.On("GetByID", uint(1)).Return(listing, nil)
	mockRepo.On("DeleteCascade", uint(1)).Return(&persistent.CascadeResult{
		Conversations: 2,
		Messages:      9,
	}, nil)

	summary, err := uc.DeleteListing(Actor{UserID: 10}, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), summary.ConversationsDeleted)
	assert.Equal(t, int64(9), summary.MessagesDeleted)
	assert.Equal(t, 0, summary.ImageFailures)
	mockRepo.AssertExpectations(t)
}

func TestDeleteListing_Stranger(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	listing := &entity.Listing{ID: 1, UserID: 10}
	mockRepo.On("GetByID", uint(1)).Return(listing, nil)

	_, err := uc.DeleteListing(Actor{UserID: 2}, 1)

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "DeleteCascade")
}

func TestDeleteListing_Admin(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	listing := &entity.Listing{ID: 1, UserID: 10}
	mockRepo.On("GetByID", uint(1)).Return(listing, nil)
	mockRepo.On("DeleteCascade", uint(1)).Return(&persistent.CascadeResult{}, nil)

	_, err := uc.DeleteListing(Actor{UserID: 99, IsAdmin: true}, 1)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestToggleFavorite_HiddenListing(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	pending := &entity.Listing{ID: 1, UserID: 10, Approved: false, Active: true}
	mockRepo.On("GetByID", uint(1)).Return(pending, nil)

	_, err := uc.ToggleFavorite(Actor{UserID: 2}, 1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertNotCalled(t, "ToggleFavorite")
}

func TestToggleFavorite_Save(t *testing.T) {
	mockRepo := new(MockListingRepository)
	uc := newListingUseCaseForTest(mockRepo, new(MockUserRepository), new(MockCategoryRepository))

	active := &entity.Listing{ID: 1, UserID: 10, Approved: true, Active: true}
	mockRepo.On("GetByID", uint(1)).Return(active, nil)
	mockRepo.On("ToggleFavorite", uint(2), uint(1)).Return(true, nil)

	saved, err := uc.ToggleFavorite(Actor{UserID: 2}, 1)

	assert.NoError(t, err)
	assert.True(t, saved)
	mockRepo.AssertExpectations(t)
}
