package persistent

import (
	"errors"

	"adboard/internal/entity"
	"adboard/internal/model"
	"adboard/pkg/apperrors"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id uint) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id uint) error
	ListingCount(id uint) (int64, error)
	SlugTaken(slug string, excludeID uint) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *entity.Category) error {
	categoryModel := ToCategoryModel(category)
	if err := r.db.Create(categoryModel).Error; err != nil {
		return err
	}
	*category = *ToCategoryEntity(categoryModel)
	return nil
}

func (r *categoryRepository) GetByID(id uint) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	if err := r.db.Where("id = ?", id).First(&categoryModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) List() ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	if err := r.db.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = ToCategoryEntity(&categoryModels[i])
	}
	return categories, nil
}

func (r *categoryRepository) Update(category *entity.Category) error {
	res := r.db.Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name": category.Name,
			"slug": category.Slug,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	res := r.db.Where("id = ?", id).Delete(&model.CategoryModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) ListingCount(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ListingModel{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) SlugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.CategoryModel{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
