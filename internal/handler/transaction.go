package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/middleware"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/models"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/store"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
)

// recentLimit caps the dashboard's recent-transactions list.
const recentLimit = 5

// TransactionHandler serves transaction CRUD and the dashboard summary.
type TransactionHandler struct {
	Transactions *store.TransactionStore
}

func NewTransactionHandler(transactions *store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions}
}

// ---------- request parsing ----------

// transactionReq is the validated input shape shared by create and update.
// Amount is a pointer so a missing field is distinguishable from zero.
type transactionReq struct {
	Type        string   `json:"type"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
}

func (r *transactionReq) fieldErrors() []gin.H {
	var errs []gin.H
	r.Type = strings.TrimSpace(r.Type)
	r.Description = strings.TrimSpace(r.Description)

	if err := util.ValidateTransactionType(r.Type); err != nil {
		errs = append(errs, gin.H{"field": "type", "message": "Tipe transaksi harus income atau expense"})
	}
	switch {
	case r.Amount == nil:
		errs = append(errs, gin.H{"field": "amount", "message": "Jumlah tidak boleh kosong"})
	case util.ValidateAmount(*r.Amount) != nil:
		errs = append(errs, gin.H{"field": "amount", "message": "Jumlah tidak boleh negatif"})
	}
	if err := util.ValidateDescription(r.Description); err != nil {
		if r.Description == "" {
			errs = append(errs, gin.H{"field": "description", "message": "Deskripsi tidak boleh kosong"})
		} else {
			errs = append(errs, gin.H{"field": "description", "message": "Deskripsi maksimal 500 karakter"})
		}
	}
	if r.Date != "" {
		if _, err := util.ParseDate(r.Date); err != nil {
			errs = append(errs, gin.H{"field": "date", "message": "Format tanggal tidak valid"})
		}
	}
	return errs
}

func (r *transactionReq) toInput() store.TransactionInput {
	in := store.TransactionInput{
		Type:        r.Type,
		Amount:      *r.Amount,
		Description: r.Description,
	}
	if r.Date != "" {
		if t, err := util.ParseDate(r.Date); err == nil {
			in.Date = &t
		}
	}
	return in
}

// ---------- endpoints ----------

// List returns the user's transactions (optionally filtered by ?type=)
// together with the summary over that same filtered set.
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	// the filter is applied verbatim; a value matching no stored type
	// yields an empty set rather than the full one
	txs, err := h.Transactions.List(userID, c.Query("type"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengambil transaksi")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"transactions": txs,
		"summary":      store.Summarize(txs),
	})
}

// Create adds a transaction; date defaults to now when omitted.
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Data transaksi tidak valid")
		return
	}
	if errs := req.fieldErrors(); len(errs) > 0 {
		util.ValidationError(c, http.StatusBadRequest, "Data transaksi tidak valid", errs)
		return
	}

	tx, err := h.Transactions.Create(userID, req.toInput())
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			util.Error(c, http.StatusBadRequest, "Data transaksi tidak valid")
		} else {
			util.Error(c, http.StatusInternalServerError, "Gagal membuat transaksi")
		}
		return
	}

	util.Success(c, http.StatusCreated, util.Response{
		"transaction": tx,
	})
}

// Update replaces a transaction the user owns. A transaction owned by
// someone else reports not-found, never forbidden.
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "Transaksi tidak ditemukan")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Data transaksi tidak valid")
		return
	}
	if errs := req.fieldErrors(); len(errs) > 0 {
		util.ValidationError(c, http.StatusBadRequest, "Data transaksi tidak valid", errs)
		return
	}

	tx, err := h.Transactions.Update(id, userID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			util.Error(c, http.StatusNotFound, "Transaksi tidak ditemukan")
		case errors.Is(err, store.ErrInvalidInput):
			util.Error(c, http.StatusBadRequest, "Data transaksi tidak valid")
		default:
			util.Error(c, http.StatusInternalServerError, "Gagal mengupdate transaksi")
		}
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"transaction": tx,
	})
}

// Delete removes a transaction the user owns.
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, "Transaksi tidak ditemukan")
		return
	}

	if err := h.Transactions.Delete(id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Transaksi tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Gagal menghapus transaksi")
		}
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"message": "Transaksi berhasil dihapus",
	})
}

// Dashboard returns the summary over the user's entire transaction set plus
// the 5 most recent transactions. A store failure degrades to a zeroed
// summary and an empty list so the dashboard never renders broken.
func (h *TransactionHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	all, err := h.Transactions.List(userID, "")
	if err == nil {
		var recent []models.Transaction
		recent, err = h.Transactions.Recent(userID, recentLimit)
		if err == nil {
			util.Success(c, http.StatusOK, util.Response{
				"summary":            store.Summarize(all),
				"recentTransactions": recent,
			})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success":            false,
		"message":            "Gagal mengambil data dashboard",
		"summary":            store.Summary{},
		"recentTransactions": []models.Transaction{},
	})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
