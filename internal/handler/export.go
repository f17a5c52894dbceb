package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/middleware"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/models"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/store"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler downloads a user's full transaction history.
type ExportHandler struct {
	Transactions *store.TransactionStore
}

func NewExportHandler(transactions *store.TransactionStore) *ExportHandler {
	return &ExportHandler{Transactions: transactions}
}

var exportHeaders = []string{"Tanggal", "Tipe", "Jumlah", "Deskripsi"}

func exportRow(tx *models.Transaction) []string {
	typeText := "Pengeluaran"
	if tx.Type == models.TypeIncome {
		typeText = "Pemasukan"
	}
	return []string{
		tx.Date.Format("2006-01-02"),
		typeText,
		strconv.FormatFloat(tx.Amount, 'f', -1, 64),
		tx.Description,
	}
}

// ExportCSV streams the transaction history as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	txs, err := h.Transactions.List(userID, "")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengambil transaksi")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transaksi_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps pick the right encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range txs {
		writer.Write(exportRow(&txs[i]))
	}
}

// ExportXLSX streams the transaction history as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	txs, err := h.Transactions.List(userID, "")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengambil transaksi")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transaksi"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal membuat file ekspor")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range txs {
		row := idx + 2
		for col, val := range exportRow(&txs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 40)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transaksi_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengekspor transaksi")
	}
}
