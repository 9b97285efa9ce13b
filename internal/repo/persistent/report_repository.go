package persistent

import (
	"errors"

	"adboard/internal/entity"
	"adboard/internal/model"
	"adboard/pkg/apperrors"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *entity.Report) error
	GetByID(id uint) (*entity.Report, error)
	ListOpen(limit, offset int) ([]*entity.Report, error)
	// Resolve flips an open report to resolved; resolving twice is an
	// invalid transition.
	Resolve(id uint) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *entity.Report) error {
	reportModel := ToReportModel(report)
	if err := r.db.Create(reportModel).Error; err != nil {
		return err
	}
	*report = *ToReportEntity(reportModel)
	return nil
}

func (r *reportRepository) GetByID(id uint) (*entity.Report, error) {
	var reportModel model.ReportModel
	if err := r.db.Where("id = ?", id).First(&reportModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return ToReportEntity(&reportModel), nil
}

func (r *reportRepository) ListOpen(limit, offset int) ([]*entity.Report, error) {
	var reportModels []model.ReportModel
	query := r.db.Where("status = ?", string(entity.ReportOpen)).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}

	reports := make([]*entity.Report, len(reportModels))
	for i := range reportModels {
		reports[i] = ToReportEntity(&reportModels[i])
	}
	return reports, nil
}

func (r *reportRepository) Resolve(id uint) error {
	res := r.db.Model(&model.ReportModel{}).
		Where("id = ? AND status = ?", id, string(entity.ReportOpen)).
		Update("status", string(entity.ReportResolved))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}
