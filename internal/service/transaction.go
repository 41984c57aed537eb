package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/model"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

type TransactionRepo interface {
	CreateTransaction(ctx context.Context, userID, categoryID int64, amount float64, description string, date time.Time) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, id, userID int64, update model.TransactionUpdate) (int64, error)
	DeleteTransaction(ctx context.Context, id, userID int64) (int64, error)
}

type TransactionService struct {
	repo TransactionRepo
}

func NewTransactionService(repo TransactionRepo) *TransactionService {
	return &TransactionService{repo: repo}
}

func (s *TransactionService) Create(ctx context.Context, userID int64, input model.TransactionInput) (*model.Transaction, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidTransaction, input.Date)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidTransaction)
	}
	if input.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: category id is required", ErrInvalidTransaction)
	}

	return s.repo.CreateTransaction(ctx, userID, input.CategoryID, input.Amount, input.Description, date)
}

func (s *TransactionService) List(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return s.repo.ListTransactions(ctx, userID)
}

func (s *TransactionService) Update(ctx context.Context, id, userID int64, update model.TransactionUpdate) (int64, error) {
	if update.Amount != nil && *update.Amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidTransaction)
	}
	return s.repo.UpdateTransaction(ctx, id, userID, update)
}

func (s *TransactionService) Delete(ctx context.Context, id, userID int64) (int64, error) {
	return s.repo.DeleteTransaction(ctx, id, userID)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
