package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Adrixx117/Investments/internal/models"
	"github.com/Adrixx117/Investments/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Type", "Name", "Dividend", "Price", "Quantity"}

// ExportHandler downloads the displayed investments.
type ExportHandler struct {
	Store Investments
}

func NewExportHandler(s Investments) *ExportHandler {
	return &ExportHandler{Store: s}
}

// exportTypes is the type from ?type=, or every type.
func exportTypes(c *gin.Context) ([]models.Type, bool) {
	if c.Query("type") == "" {
		return models.Types, true
	}
	t, ok := typeParam(c, "")
	if !ok {
		return nil, false
	}
	return []models.Type{t}, true
}

func dividendText(inv models.Investment) string {
	if !inv.Dividend.Valid {
		return ""
	}
	return inv.Dividend.Decimal.String()
}

// ExportCSV writes the investments as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	types, ok := exportTypes(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"investments_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, t := range types {
		for _, inv := range h.Store.List(t) {
			writer.Write([]string{
				t.Label(),
				inv.Name,
				dividendText(inv),
				inv.Price.String(),
				inv.Quantity.String(),
			})
		}
	}
}

// ExportXLSX writes one sheet per investment type.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	types, ok := exportTypes(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range types {
		sheet := t.Label()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
				return
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
			return
		}

		for col, title := range exportHeaders[1:] {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, title)
		}
		for idx, inv := range h.Store.List(t) {
			row := idx + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), inv.Name)
			if inv.Dividend.Valid {
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), inv.Dividend.Decimal.InexactFloat64())
			}
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), inv.Price.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), inv.Quantity.InexactFloat64())
		}

		f.SetColWidth(sheet, "A", "A", 24)
		f.SetColWidth(sheet, "B", "D", 12)
	}
	f.SetActiveSheet(0)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"investments_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
