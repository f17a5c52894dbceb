package store

import (
	"errors"
	"testing"
	"time"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pooled connection would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Transaction{}))
	return db
}

// ==================== UserStore ====================

type UserStoreSuite struct {
	suite.Suite
	users *UserStore
}

func (s *UserStoreSuite) SetupTest() {
	s.users = NewUserStore(openTestDB(s.T()))
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreSuite))
}

func strPtr(s string) *string { return &s }

func (s *UserStoreSuite) TestCreateAndFind() {
	user, err := s.users.Create("  budi  ", "hash", "  Budi Santoso ", strPtr(" Budi@Example.COM "))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "budi", user.Username)
	assert.Equal(s.T(), "Budi Santoso", user.Name)
	require.NotNil(s.T(), user.Email)
	assert.Equal(s.T(), "budi@example.com", *user.Email)
	assert.False(s.T(), user.CreatedAt.IsZero())

	byName, err := s.users.FindByUsername("budi")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, byName.ID)

	byEmail, err := s.users.FindByEmail("BUDI@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, byEmail.ID)

	byID, err := s.users.FindByID(user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "budi", byID.Username)
}

func (s *UserStoreSuite) TestCreateDuplicateUsername() {
	_, err := s.users.Create("budi", "hash", "Budi", nil)
	require.NoError(s.T(), err)

	_, err = s.users.Create("budi", "other-hash", "Another Budi", strPtr("other@example.com"))
	assert.ErrorIs(s.T(), err, ErrDuplicateUsername)
}

func (s *UserStoreSuite) TestCreateDuplicateEmail() {
	_, err := s.users.Create("budi", "hash", "Budi", strPtr("budi@example.com"))
	require.NoError(s.T(), err)

	_, err = s.users.Create("siti", "hash", "Siti", strPtr("Budi@Example.com"))
	assert.ErrorIs(s.T(), err, ErrDuplicateEmail)
}

func (s *UserStoreSuite) TestCreateWithoutEmailNeverCollides() {
	_, err := s.users.Create("budi", "hash", "Budi", nil)
	require.NoError(s.T(), err)

	_, err = s.users.Create("siti", "hash", "Siti", nil)
	assert.NoError(s.T(), err)
}

func (s *UserStoreSuite) TestCreateInvalidEmail() {
	_, err := s.users.Create("budi", "hash", "Budi", strPtr("not-an-email"))
	assert.ErrorIs(s.T(), err, ErrInvalidInput)
}

func (s *UserStoreSuite) TestUpdateProfile() {
	user, err := s.users.Create("budi", "hash", "Budi", strPtr("budi@example.com"))
	require.NoError(s.T(), err)

	updated, err := s.users.UpdateProfile(user.ID, "Budi S.", strPtr("new@example.com"))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Budi S.", updated.Name)
	require.NotNil(s.T(), updated.Email)
	assert.Equal(s.T(), "new@example.com", *updated.Email)

	// blank email clears the field
	updated, err = s.users.UpdateProfile(user.ID, "Budi S.", nil)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), updated.Email)
}

func (s *UserStoreSuite) TestUpdateProfileRejectsBlankName() {
	user, err := s.users.Create("budi", "hash", "Budi", nil)
	require.NoError(s.T(), err)

	_, err = s.users.UpdateProfile(user.ID, "   ", nil)
	assert.ErrorIs(s.T(), err, ErrInvalidInput)
}

func (s *UserStoreSuite) TestUpdateProfileDuplicateEmail() {
	_, err := s.users.Create("budi", "hash", "Budi", strPtr("budi@example.com"))
	require.NoError(s.T(), err)
	siti, err := s.users.Create("siti", "hash", "Siti", nil)
	require.NoError(s.T(), err)

	_, err = s.users.UpdateProfile(siti.ID, "Siti", strPtr("budi@example.com"))
	assert.ErrorIs(s.T(), err, ErrDuplicateEmail)
}

func (s *UserStoreSuite) TestSetPasswordHash() {
	user, err := s.users.Create("budi", "old-hash", "Budi", nil)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.users.SetPasswordHash(user.ID, "new-hash"))

	reloaded, err := s.users.FindByID(user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "new-hash", reloaded.PasswordHash)

	err = s.users.SetPasswordHash(9999, "hash")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *UserStoreSuite) TestFindMissing() {
	_, err := s.users.FindByUsername("nobody")
	assert.ErrorIs(s.T(), err, ErrNotFound)

	_, err = s.users.FindByEmail("nobody@example.com")
	assert.ErrorIs(s.T(), err, ErrNotFound)

	_, err = s.users.FindByID(12345)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

// duplicateKeyError backs up the pre-insert checks when two writes race; it
// has to keep username and email violations apart or the handlers report the
// wrong field.
func TestDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"unrelated", errors.New("database is locked"), nil},
		{"username index", errors.New("UNIQUE constraint failed: users.username"), ErrDuplicateUsername},
		{"email index", errors.New("UNIQUE constraint failed: users.email"), ErrDuplicateEmail},
		{"lowercase driver message", errors.New(`duplicate key value violates unique constraint "idx_users_email"`), ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, duplicateKeyError(tt.err))
		})
	}
}

// ==================== TransactionStore ====================

type TransactionStoreSuite struct {
	suite.Suite
	users *UserStore
	txs   *TransactionStore

	owner uint
	other uint
}

func (s *TransactionStoreSuite) SetupTest() {
	db := openTestDB(s.T())
	s.users = NewUserStore(db)
	s.txs = NewTransactionStore(db)

	owner, err := s.users.Create("owner", "hash", "Owner", nil)
	require.NoError(s.T(), err)
	other, err := s.users.Create("other", "hash", "Other", nil)
	require.NoError(s.T(), err)
	s.owner = owner.ID
	s.other = other.ID
}

func TestTransactionStoreSuite(t *testing.T) {
	suite.Run(t, new(TransactionStoreSuite))
}

func (s *TransactionStoreSuite) create(owner uint, typ string, amount float64, desc string, date time.Time) *models.Transaction {
	tx, err := s.txs.Create(owner, TransactionInput{
		Type:        typ,
		Amount:      amount,
		Description: desc,
		Date:        &date,
	})
	require.NoError(s.T(), err)
	return tx
}

func (s *TransactionStoreSuite) TestCreateDefaultsDateToNow() {
	before := time.Now()
	tx, err := s.txs.Create(s.owner, TransactionInput{
		Type:        models.TypeIncome,
		Amount:      100,
		Description: "Gaji",
	})
	require.NoError(s.T(), err)

	assert.False(s.T(), tx.Date.Before(before))
	assert.False(s.T(), tx.Date.After(time.Now()))
}

func (s *TransactionStoreSuite) TestCreateValidation() {
	cases := []TransactionInput{
		{Type: "transfer", Amount: 10, Description: "x"},
		{Type: models.TypeIncome, Amount: -5, Description: "x"},
		{Type: models.TypeIncome, Amount: 10, Description: ""},
		{Type: models.TypeIncome, Amount: 10, Description: "   "},
	}

	for _, in := range cases {
		_, err := s.txs.Create(s.owner, in)
		assert.ErrorIs(s.T(), err, ErrInvalidInput, "input %+v", in)
	}

	// nothing persisted
	list, err := s.txs.List(s.owner, "")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)
}

func (s *TransactionStoreSuite) TestListOrdering() {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
	}
	s.create(s.owner, models.TypeExpense, 1, "third", day(3))
	s.create(s.owner, models.TypeExpense, 1, "first", day(1))
	s.create(s.owner, models.TypeIncome, 1, "fifth", day(5))

	list, err := s.txs.List(s.owner, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 3)

	assert.Equal(s.T(), "fifth", list[0].Description)
	assert.Equal(s.T(), "third", list[1].Description)
	assert.Equal(s.T(), "first", list[2].Description)
}

func (s *TransactionStoreSuite) TestListTypeFilter() {
	now := time.Now()
	s.create(s.owner, models.TypeIncome, 10, "gaji", now)
	s.create(s.owner, models.TypeExpense, 3, "makan", now)

	incomes, err := s.txs.List(s.owner, models.TypeIncome)
	require.NoError(s.T(), err)
	require.Len(s.T(), incomes, 1)
	assert.Equal(s.T(), "gaji", incomes[0].Description)

	// an unknown filter value matches no rows instead of all of them
	none, err := s.txs.List(s.owner, "transfer")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), none)
}

func (s *TransactionStoreSuite) TestOwnerScoping() {
	tx := s.create(s.owner, models.TypeIncome, 10, "gaji", time.Now())

	// invisible in the other user's list
	list, err := s.txs.List(s.other, "")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)

	// update and delete by the wrong owner look like not-found
	_, err = s.txs.Update(tx.ID, s.other, TransactionInput{
		Type:        models.TypeExpense,
		Amount:      1,
		Description: "hijack",
	})
	assert.ErrorIs(s.T(), err, ErrNotFound)

	err = s.txs.Delete(tx.ID, s.other)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	// and the record is untouched for its owner
	list, err = s.txs.List(s.owner, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "gaji", list[0].Description)
}

func (s *TransactionStoreSuite) TestUpdate() {
	tx := s.create(s.owner, models.TypeIncome, 10, "gaji", time.Now())

	newDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	updated, err := s.txs.Update(tx.ID, s.owner, TransactionInput{
		Type:        models.TypeExpense,
		Amount:      7.5,
		Description: "koreksi",
		Date:        &newDate,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.TypeExpense, updated.Type)
	assert.Equal(s.T(), 7.5, updated.Amount)
	assert.Equal(s.T(), "koreksi", updated.Description)
	assert.True(s.T(), updated.Date.Equal(newDate))

	// nil date keeps the stored one
	kept, err := s.txs.Update(tx.ID, s.owner, TransactionInput{
		Type:        models.TypeExpense,
		Amount:      8,
		Description: "koreksi lagi",
	})
	require.NoError(s.T(), err)
	assert.True(s.T(), kept.Date.Equal(newDate))
}

func (s *TransactionStoreSuite) TestUpdateMissing() {
	_, err := s.txs.Update(999, s.owner, TransactionInput{
		Type:        models.TypeIncome,
		Amount:      1,
		Description: "x",
	})
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *TransactionStoreSuite) TestDelete() {
	tx := s.create(s.owner, models.TypeExpense, 5, "makan", time.Now())

	require.NoError(s.T(), s.txs.Delete(tx.ID, s.owner))

	err := s.txs.Delete(tx.ID, s.owner)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *TransactionStoreSuite) TestRecentLimit() {
	for d := 1; d <= 7; d++ {
		s.create(s.owner, models.TypeExpense, float64(d),
			"day", time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC))
	}

	recent, err := s.txs.Recent(s.owner, 5)
	require.NoError(s.T(), err)
	require.Len(s.T(), recent, 5)

	// newest first, same ordering as List
	assert.Equal(s.T(), float64(7), recent[0].Amount)
	assert.Equal(s.T(), float64(3), recent[4].Amount)

	// fewer records than the limit returns them all
	few, err := s.txs.Recent(s.other, 5)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), few)
}

func (s *TransactionStoreSuite) TestValidationErrorIsTyped() {
	_, err := s.txs.Create(s.owner, TransactionInput{Type: "transfer", Amount: 1, Description: "x"})
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, ErrInvalidInput))
}
