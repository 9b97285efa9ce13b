package usecase

import (
	"io"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

// MockImageStorage is a mock implementation of ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

var _ ImageStorage = (*MockImageStorage)(nil)

// MockListingRepository is a mock implementation of persistent.ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(listing *entity.Listing, chargeFreeQuota bool) error {
	args := m.Called(listing, chargeFreeQuota)
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(id uint) (*entity.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) GetByUserID(userID uint, limit, offset int) ([]*entity.Listing, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) ListVisible(filter persistent.ListingFilter) ([]*entity.Listing, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) ListPending(limit, offset int) ([]*entity.Listing, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) ApplyTransition(id uint, t persistent.StatusTransition) error {
	args := m.Called(id, t)
	return args.Error(0)
}

func (m *MockListingRepository) EditAndResubmit(listing *entity.Listing) error {
	args := m.Called(listing)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementViews(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListingRepository) DeleteCascade(id uint) (*persistent.CascadeResult, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persistent.CascadeResult), args.Error(1)
}

func (m *MockListingRepository) ToggleFavorite(userID, listingID uint) (bool, error) {
	args := m.Called(userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingRepository) GetFavorites(userID uint, limit, offset int) ([]*entity.Listing, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

var _ persistent.ListingRepository = (*MockListingRepository)(nil)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) EmailOrUsernameTaken(email, username string) (bool, error) {
	args := m.Called(email, username)
	return args.Bool(0), args.Error(1)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

// MockCategoryRepository is a mock implementation of persistent.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *entity.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(id uint) (*entity.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) List() ([]*entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(category *entity.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListingCount(id uint) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) SlugTaken(slug string, excludeID uint) (bool, error) {
	args := m.Called(slug, excludeID)
	return args.Bool(0), args.Error(1)
}

var _ persistent.CategoryRepository = (*MockCategoryRepository)(nil)

// MockConversationRepository is a mock implementation of persistent.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) FindOrCreate(conversation *entity.Conversation) (*entity.Conversation, bool, error) {
	args := m.Called(conversation)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entity.Conversation), args.Bool(1), args.Error(2)
}

func (m *MockConversationRepository) GetByID(id uint) (*entity.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListByUser(userID uint, limit, offset int) ([]*entity.Conversation, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListByListingID(listingID uint) ([]*entity.Conversation, error) {
	args := m.Called(listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Conversation), args.Error(1)
}

func (m *MockConversationRepository) CreateMessage(message *entity.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockConversationRepository) ListMessages(conversationID uint, limit, offset int) ([]*entity.Message, error) {
	args := m.Called(conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

var _ persistent.ConversationRepository = (*MockConversationRepository)(nil)

// MockReportRepository is a mock implementation of persistent.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(report *entity.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(id uint) (*entity.Report, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Report), args.Error(1)
}

func (m *MockReportRepository) ListOpen(limit, offset int) ([]*entity.Report, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Report), args.Error(1)
}

func (m *MockReportRepository) Resolve(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.ReportRepository = (*MockReportRepository)(nil)
