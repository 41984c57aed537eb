package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/client"
	"github.com/fintrack/backend/internal/model"
)

var (
	ErrInvalidModelResponse = errors.New("invalid model response")
	ErrClassificationFailed = errors.New("classification failed")
)

type ModelClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type CategoryCatalog interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// ClassifyService turns a free-text transaction description into a
// category/amount/type triple via the language model, validating the
// model's answer against the live catalog.
type ClassifyService struct {
	catalog CategoryCatalog
	model   *retryingModel
}

func NewClassifyService(catalog CategoryCatalog, modelClient ModelClient, logger *slog.Logger) *ClassifyService {
	return &ClassifyService{
		catalog: catalog,
		model:   newRetryingModel(modelClient, logger),
	}
}

// modelAnswer is the fixed shape the prompt demands from the model.
type modelAnswer struct {
	Category        string  `json:"category"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	TransactionType string  `json:"transactionType"`
}

func (s *ClassifyService) Classify(ctx context.Context, text string) (*model.CategorizeResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty description", ErrClassificationFailed)
	}

	// The catalog is loaded fresh on every call so newly added categories
	// are immediately eligible.
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", ErrClassificationFailed)
	}

	raw, err := s.model.generate(ctx, classifyPrompt(text, categories))
	if err != nil {
		return nil, err
	}

	var answer modelAnswer
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &answer); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model output: %s", ErrInvalidModelResponse, raw)
	}

	transactionType := strings.ToUpper(strings.TrimSpace(answer.TransactionType))
	if answer.Category == "" {
		return nil, fmt.Errorf("%w: missing category in %s", ErrInvalidModelResponse, raw)
	}
	if transactionType != model.CategoryTypeIncome && transactionType != model.CategoryTypeExpense {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidModelResponse, answer.TransactionType)
	}

	// Membership check against only the categories of the claimed type.
	// A well-formed answer naming an EXPENSE category as INCOME is rejected.
	if !categoryMatches(categories, answer.Category, transactionType) {
		return nil, fmt.Errorf("%w: %q is not a %s category", ErrInvalidModelResponse, answer.Category, transactionType)
	}

	return &model.CategorizeResult{
		CategoryName:             answer.Category,
		AmountExtracted:          answer.Amount,
		DescriptionExtracted:     answer.Description,
		TransactionTypeExtracted: transactionType,
	}, nil
}

func classifyPrompt(text string, categories []model.Category) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.Type))
	}

	return fmt.Sprintf(`Given the following transaction description, extract:
- category: one of %s (use the exact name, without the type suffix)
- amount: as a number (0 if not present)
- description: a short summary
- transactionType: 'INCOME' or 'EXPENSE' based on the context
Return only a JSON object with keys: category, amount, description, transactionType.

Description: %q`, strings.Join(names, ", "), text)
}

func categoryMatches(categories []model.Category, name, transactionType string) bool {
	for _, c := range categories {
		if c.Type == transactionType && c.Name == name {
			return true
		}
	}
	return false
}

// stripCodeFences removes a Markdown code fence wrapper the model sometimes
// adds around JSON output.
func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

// retryingModel wraps the model call with the shared retry policy: up to
// maxAttempts calls, retrying only on rate limiting, with linearly growing
// delay. Parse and validation failures never retry.
type retryingModel struct {
	client      ModelClient
	logger      *slog.Logger
	maxAttempts int
	baseBackoff time.Duration
	sleep       func(time.Duration)
}

func newRetryingModel(modelClient ModelClient, logger *slog.Logger) *retryingModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &retryingModel{
		client:      modelClient,
		logger:      logger,
		maxAttempts: 3,
		baseBackoff: time.Second,
		sleep:       time.Sleep,
	}
}

func (r *retryingModel) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		raw, err := r.client.GenerateText(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !errors.Is(err, client.ErrRateLimited) || attempt == r.maxAttempts {
			break
		}
		delay := time.Duration(attempt) * r.baseBackoff
		r.logger.Warn("model rate limited, backing off",
			"attempt", attempt, "delay", delay.String())
		r.sleep(delay)
	}
	r.logger.Error("model call failed", "error", lastErr)
	return "", fmt.Errorf("%w: %v", ErrClassificationFailed, lastErr)
}
