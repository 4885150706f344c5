package service

import (
	"bytes"
	"context"
	"fmt"

	"corpbooking/internal/domains/booking/model"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"
	"corpbooking/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet      = "Bookings"
	exportTimeLayout = "2006-01-02 15:04"
)

var exportHeaders = []string{
	"ID", "Resource Kind", "Resource", "Requester", "Division", "Purpose",
	"Destination", "Start", "End", "Duration Unit", "Status", "Created At",
}

// Export renders the filtered listing, newest first, as an xlsx workbook.
func (s *serviceImpl) Export(ctx context.Context, filter gDto.FilterGroup) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		Limit:   s.cfg.App.Booking.ExportMaxRows,
		SortBy:  model.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return nil, failure.StorageUnavailable(err)
	}

	return renderWorkbook(bookings)
}

func renderWorkbook(bookings []model.Booking) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)

		if err = file.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err = file.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, booking := range bookings {
		row := []any{
			booking.ID,
			string(booking.ResourceKind),
			booking.ResourceName,
			booking.RequesterName,
			booking.Division,
			booking.Purpose,
			booking.Destination,
			timezone.Format(booking.StartTime, exportTimeLayout),
			timezone.Format(booking.EndTime, exportTimeLayout),
			string(booking.DurationUnit),
			string(booking.Status),
			timezone.Format(booking.CreatedAt, exportTimeLayout),
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err = file.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write booking row: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err = file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
