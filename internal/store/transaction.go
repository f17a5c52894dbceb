package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/models"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"gorm.io/gorm"
)

// TransactionStore persists transactions. Every read and write is scoped to
// the owning user; a record owned by someone else behaves like a missing one.
type TransactionStore struct {
	DB *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{DB: db}
}

// listOrder is the canonical ordering everywhere transactions are listed:
// date descending, then creation time descending.
const listOrder = "date DESC, created_at DESC, id DESC"

// TransactionInput holds the client-settable fields of a transaction.
type TransactionInput struct {
	Type        string
	Amount      float64
	Description string
	Date        *time.Time
}

func (in *TransactionInput) validate() error {
	if err := util.ValidateTransactionType(in.Type); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := util.ValidateDescription(in.Description); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// List returns a user's transactions, optionally filtered by type.
func (s *TransactionStore) List(ownerID uint, typeFilter string) ([]models.Transaction, error) {
	q := s.DB.Where("user_id = ?", ownerID)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}

	var txs []models.Transaction
	if err := q.Order(listOrder).Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Recent returns a user's most recent transactions, at most limit of them,
// in the same order as List.
func (s *TransactionStore) Recent(ownerID uint, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.DB.Where("user_id = ?", ownerID).
		Order(listOrder).
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return txs, nil
}

// Create validates and inserts a transaction. Date defaults to now.
func (s *TransactionStore) Create(ownerID uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	tx := models.Transaction{
		UserID:      ownerID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        date,
	}
	if err := s.DB.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return &tx, nil
}

// Update replaces the mutable fields of a transaction owned by ownerID.
// A nil input date keeps the stored one.
func (s *TransactionStore) Update(id, ownerID uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var tx models.Transaction
	if err := s.DB.Where("id = ? AND user_id = ?", id, ownerID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}

	tx.Type = in.Type
	tx.Amount = in.Amount
	tx.Description = in.Description
	if in.Date != nil {
		tx.Date = *in.Date
	}

	if err := s.DB.Save(&tx).Error; err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return &tx, nil
}

// Delete removes a transaction owned by ownerID.
func (s *TransactionStore) Delete(id, ownerID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
