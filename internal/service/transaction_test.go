package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/model"
)

type fakeTransactionRepo struct {
	created *model.Transaction
}

func (f *fakeTransactionRepo) CreateTransaction(ctx context.Context, userID, categoryID int64, amount float64, description string, date time.Time) (*model.Transaction, error) {
	f.created = &model.Transaction{UserID: userID, CategoryID: categoryID, Amount: amount, Description: description, Date: date}
	return f.created, nil
}

func (f *fakeTransactionRepo) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) UpdateTransaction(ctx context.Context, id, userID int64, update model.TransactionUpdate) (int64, error) {
	return 1, nil
}

func (f *fakeTransactionRepo) DeleteTransaction(ctx context.Context, id, userID int64) (int64, error) {
	return 1, nil
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.TransactionInput{Amount: 10, Date: "not-a-date", CategoryID: 1})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	_, err = svc.Create(ctx, 1, model.TransactionInput{Amount: 0, Date: "2026-01-15", CategoryID: 1})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	_, err = svc.Create(ctx, 1, model.TransactionInput{Amount: 10, Date: "2026-01-15", CategoryID: 0})
	require.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestCreateTransactionAcceptsDateFormats(t *testing.T) {
	repo := &fakeTransactionRepo{}
	svc := NewTransactionService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.TransactionInput{Amount: 10, Date: "2026-01-15", CategoryID: 2})
	require.NoError(t, err)
	require.Equal(t, int64(2), repo.created.CategoryID)

	_, err = svc.Create(ctx, 1, model.TransactionInput{Amount: 10, Date: "2026-01-15T10:30:00Z", CategoryID: 2})
	require.NoError(t, err)
}

func TestUpdateTransactionRejectsNonPositiveAmount(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionRepo{})
	bad := -5.0

	_, err := svc.Update(context.Background(), 1, 1, model.TransactionUpdate{Amount: &bad})
	require.ErrorIs(t, err, ErrInvalidTransaction)
}
