package usecase

import (
	"strings"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"
	"adboard/pkg/apperrors"
)

type ReportUseCase interface {
	ReportListing(actor Actor, listingID uint, reason string) (*entity.Report, error)
	ListOpenReports(actor Actor, limit, offset int) ([]*entity.Report, error)
	ResolveReport(actor Actor, reportID uint) error
}

type reportUseCase struct {
	reportRepo  persistent.ReportRepository
	listingRepo persistent.ListingRepository
}

func NewReportUseCase(reportRepo persistent.ReportRepository, listingRepo persistent.ListingRepository) ReportUseCase {
	return &reportUseCase{
		reportRepo:  reportRepo,
		listingRepo: listingRepo,
	}
}

func (uc *reportUseCase) ReportListing(actor Actor, listingID uint, reason string) (*entity.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validation("reason is required")
	}

	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if !listing.VisibleTo(actor.UserID, actor.IsAdmin) {
		return nil, apperrors.ErrNotFound
	}

	report := &entity.Report{
		ListingID:  listingID,
		ReporterID: actor.UserID,
		Reason:     reason,
		Status:     entity.ReportOpen,
	}
	if err := uc.reportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (uc *reportUseCase) ListOpenReports(actor Actor, limit, offset int) ([]*entity.Report, error) {
	if !actor.IsAdmin {
		return nil, apperrors.ErrUnauthorized
	}
	return uc.reportRepo.ListOpen(limit, offset)
}

func (uc *reportUseCase) ResolveReport(actor Actor, reportID uint) error {
	if !actor.IsAdmin {
		return apperrors.ErrUnauthorized
	}
	if _, err := uc.reportRepo.GetByID(reportID); err != nil {
		return err
	}
	return uc.reportRepo.Resolve(reportID)
}
