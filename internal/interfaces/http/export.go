package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/domain/entity"
	"github.com/garyjia/leave-master/internal/i18n"
	"github.com/garyjia/leave-master/internal/interfaces/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportColumns are the list columns written to the workbook
var exportColumns = []string{
	view.ColumnTitle,
	view.ColumnLeaveType,
	view.ColumnLeaveDate,
	view.ColumnApprovalStatus,
}

// ExportList handles GET /data-page/export.xlsx
func (h *PageHandlers) ExportList(c *gin.Context) {
	var filter entity.LeaveFilter
	_ = c.ShouldBindQuery(&filter)

	records, err := h.services.Master.List(c.Request.Context(), filter)
	if h.discardStale(c, err) {
		return
	}
	if err != nil {
		h.logger.Error("Failed to load leave list for export", zap.Error(err))
		c.String(http.StatusBadGateway, i18n.T(c.Request.Context(), "list.failed"))
		return
	}

	f, err := buildWorkbook(c.Request.Context(), records, h.logger)
	if err != nil {
		h.logger.Error("Failed to build workbook", zap.Error(err))
		c.String(http.StatusInternalServerError, i18n.T(c.Request.Context(), "error.internal"))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("leaves_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("Failed to write workbook", zap.Error(err))
	}
}

// buildWorkbook writes records to a single-sheet workbook with a header row
func buildWorkbook(ctx context.Context, records []entity.LeaveRecord, logger *zap.Logger) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := i18n.T(ctx, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, id := range exportColumns {
		setCell(f, sheet, col+1, 1, i18n.T(ctx, id), logger)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		logger.Warn("Failed to freeze header row", zap.Error(err))
	}

	for i, r := range records {
		row := i + 2
		setCell(f, sheet, 1, row, r.Title, logger)
		setCell(f, sheet, 2, row, r.LeaveType, logger)
		setCell(f, sheet, 3, row, r.LeaveDate, logger)
		setCell(f, sheet, 4, row, r.ApprovalStatus, logger)
	}

	if err := f.SetColWidth(sheet, "A", "D", 20); err != nil {
		logger.Warn("Failed to set column width", zap.Error(err))
	}
	return f, nil
}

// setCell sets a cell value, logging warnings on failure
func setCell(f *excelize.File, sheet string, col, row int, value string, logger *zap.Logger) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		logger.Warn("Invalid cell coordinates", zap.Int("col", col), zap.Int("row", row), zap.Error(err))
		return
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		logger.Warn("Failed to set cell value", zap.String("cell", cell), zap.Error(err))
	}
}
