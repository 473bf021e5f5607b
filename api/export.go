package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"spendbot/config"
	"spendbot/database"
	"spendbot/middleware"
	"spendbot/models"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRange 解析导出时间范围，缺省为当月
func exportRange(c *gin.Context) (time.Time, time.Time, string, error) {
	loc := config.GetConfig().Server.Location()
	startStr := c.Query("start_time")
	endStr := c.Query("end_time")

	if startStr == "" && endStr == "" {
		now := time.Now().In(loc)
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		label := now.Format("2006-01")
		return start, start.AddDate(0, 1, 0), label, nil
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid start_time, expected format: 2006-01-02")
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid end_time, expected format: 2006-01-02")
	}
	return start, end.AddDate(0, 0, 1), startStr + "_" + endStr, nil
}

func loadExportData(ownerID string, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := database.DB.Where("owner_id = ? AND expense_time >= ? AND expense_time < ?", ownerID, start, end).
		Order("expense_time DESC").
		Find(&expenses).Error
	return expenses, err
}

// ExportCSV 导出支出记录为 CSV
// @Summary 导出支出记录为 CSV
// @Description 按时间范围导出，缺省导出当月
// @Tags 导出
// @Produce text/csv
// @Param token query string true "访问令牌"
// @Param start_time query string false "开始时间 (2025-01-01)"
// @Param end_time query string false "结束时间 (2025-01-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	ownerID := middleware.GetCurrentOwnerID(c)

	start, end, label, err := exportRange(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	expenses, err := loadExportData(ownerID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to export"))
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM，方便 Excel 正确识别编码
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	writer.Write([]string{"Date", "Description", "Category", "Amount"})

	var total float64
	for _, expense := range expenses {
		writer.Write([]string{
			expense.ExpenseTime.Format("2006-01-02"),
			expense.Description,
			expense.Category,
			fmt.Sprintf("%.2f", expense.Amount),
		})
		total += expense.Amount
	}
	writer.Write([]string{"TOTAL", "", "", fmt.Sprintf("%.2f", total)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "Failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("expenses_%s.csv", label)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出支出记录为 Excel
// @Summary 导出支出记录为 Excel
// @Description 按时间范围导出带样式的 xlsx，缺省导出当月
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param token query string true "访问令牌"
// @Param start_time query string false "开始时间 (2025-01-01)"
// @Param end_time query string false "结束时间 (2025-01-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	ownerID := middleware.GetCurrentOwnerID(c)

	start, end, label, err := exportRange(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	expenses, err := loadExportData(ownerID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to export"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Expenses"
	f.SetSheetName("Sheet1", sheetName)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 12)

	headers := []string{"Date", "Description", "Category", "Amount"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var total float64
	for i, expense := range expenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), expense.ExpenseTime.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), expense.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), expense.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), expense.Amount)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), dataStyle)
		total += expense.Amount
	}

	// 汇总行
	summaryRow := len(expenses) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "TOTAL")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), total)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("D%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("expenses_%s.xlsx", label)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "Failed to generate Excel")
		return
	}
}
