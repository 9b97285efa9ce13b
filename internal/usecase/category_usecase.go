package usecase

import (
	"regexp"
	"strings"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"
	"adboard/pkg/apperrors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CategoryUseCase interface {
	ListCategories() ([]*entity.Category, error)
	CreateCategory(actor Actor, name, slug string) (*entity.Category, error)
	UpdateCategory(actor Actor, id uint, name, slug string) (*entity.Category, error)
	DeleteCategory(actor Actor, id uint) error
}

type categoryUseCase struct {
	categoryRepo persistent.CategoryRepository
}

func NewCategoryUseCase(categoryRepo persistent.CategoryRepository) CategoryUseCase {
	return &categoryUseCase{categoryRepo: categoryRepo}
}

func (uc *categoryUseCase) ListCategories() ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}

func (uc *categoryUseCase) CreateCategory(actor Actor, name, slug string) (*entity.Category, error) {
	if !actor.IsAdmin {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validateCategory(name, slug); err != nil {
		return nil, err
	}

	taken, err := uc.categoryRepo.SlugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Validation("slug already in use")
	}

	category := &entity.Category{Name: name, Slug: slug}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) UpdateCategory(actor Actor, id uint, name, slug string) (*entity.Category, error) {
	if !actor.IsAdmin {
		return nil, apperrors.ErrUnauthorized
	}
	if err := validateCategory(name, slug); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	taken, err := uc.categoryRepo.SlugTaken(slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Validation("slug already in use")
	}

	category.Name = name
	category.Slug = slug
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) DeleteCategory(actor Actor, id uint) error {
	if !actor.IsAdmin {
		return apperrors.ErrUnauthorized
	}

	count, err := uc.categoryRepo.ListingCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Validation("category still has listings")
	}

	return uc.categoryRepo.Delete(id)
}

func validateCategory(name, slug string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("name is required")
	}
	if !slugPattern.MatchString(slug) {
		return apperrors.Validation("slug must be lowercase letters, digits and hyphens")
	}
	return nil
}
