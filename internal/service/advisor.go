package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fintrack/backend/internal/model"
)

type TransactionReader interface {
	ListTransactionsWithCategory(ctx context.Context, userID int64) ([]model.TransactionDetail, error)
}

// AdvisorService asks the model for personalized finance recommendations
// based on the caller's transaction history.
type AdvisorService struct {
	transactions TransactionReader
	model        *retryingModel
}

func NewAdvisorService(transactions TransactionReader, modelClient ModelClient, logger *slog.Logger) *AdvisorService {
	return &AdvisorService{
		transactions: transactions,
		model:        newRetryingModel(modelClient, logger),
	}
}

func (s *AdvisorService) Recommend(ctx context.Context, userID int64) ([]string, error) {
	details, err := s.transactions.ListTransactionsWithCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return []string{"No transactions to analyze yet."}, nil
	}

	raw, err := s.model.generate(ctx, advisorPrompt(details))
	if err != nil {
		return nil, err
	}

	var recommendations []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		if line != "" {
			recommendations = append(recommendations, line)
		}
	}
	if len(recommendations) == 0 {
		return nil, fmt.Errorf("%w: empty recommendations", ErrInvalidModelResponse)
	}
	return recommendations, nil
}

func advisorPrompt(details []model.TransactionDetail) string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, fmt.Sprintf("Date: %s, Amount: %.2f, Type: %s, Category: %s, Description: %s",
			d.Date.Format("2006-01-02"), d.Amount, d.CategoryType, d.CategoryName, d.Description))
	}

	return fmt.Sprintf(`You are a financial advisor. Analyze the following transaction summary and give 3 personalized recommendations to improve the user's financial health. Answer as plain bullet points, one per line.

Transactions:
%s`, strings.Join(lines, "\n"))
}
