package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/flatfundpro/dues-portal/internal/application/port"
)

// ReportService exports a classified collection as a downloadable document
type ReportService interface {
	ExportCollection(ctx context.Context, apartmentID, collectionID string, w io.Writer) error
	FileName(apartmentID, collectionID string) string
	ContentType() string
}

type reportServiceImpl struct {
	statusService StatusService
	writer        port.ReportWriter
	logger        Logger
}

// NewReportService creates a new ReportService
func NewReportService(statusService StatusService, writer port.ReportWriter, logger Logger) ReportService {
	return &reportServiceImpl{
		statusService: statusService,
		writer:        writer,
		logger:        logger,
	}
}

// ExportCollection classifies the collection and writes the rendered report to w
func (s *reportServiceImpl) ExportCollection(ctx context.Context, apartmentID, collectionID string, w io.Writer) error {
	report, err := s.statusService.CollectionReport(ctx, apartmentID, collectionID)
	if err != nil {
		return err
	}

	if err := s.writer.WriteCollectionReport(w, report); err != nil {
		s.logger.Error("Failed to write report", "error", err, "collection_id", collectionID)
		return fmt.Errorf("failed to write report: %w", err)
	}

	s.logger.Info("Report exported", "apartment_id", apartmentID, "collection_id", collectionID)
	return nil
}

// FileName builds a download name such as dues_apt-1_<collection>.xlsx
func (s *reportServiceImpl) FileName(apartmentID, collectionID string) string {
	name := fmt.Sprintf("dues_%s_%s", apartmentID, collectionID)
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, name)
	return name + s.writer.FileExtension()
}

// ContentType returns the MIME type of exported reports
func (s *reportServiceImpl) ContentType() string {
	return s.writer.ContentType()
}
