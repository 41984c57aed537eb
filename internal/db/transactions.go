package db

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/model"
)

func (db *Postgres) CreateTransaction(ctx context.Context, userID, categoryID int64, amount float64, description string, date time.Time) (*model.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, user_id, category_id, amount, description, date, created_at
	`
	var tx model.Transaction
	err := db.Pool.QueryRow(ctx, query, userID, categoryID, amount, description, date).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.CategoryID,
		&tx.Amount,
		&tx.Description,
		&tx.Date,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (db *Postgres) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount, description, date, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount, &tx.Description, &tx.Date, &tx.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// ListTransactionsWithCategory joins the category name and type for
// summaries that are sent to the advisor.
func (db *Postgres) ListTransactionsWithCategory(ctx context.Context, userID int64) ([]model.TransactionDetail, error) {
	query := `
		SELECT t.id, t.amount, t.description, t.date, c.name, c.type
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.TransactionDetail
	for rows.Next() {
		var d model.TransactionDetail
		if err := rows.Scan(&d.ID, &d.Amount, &d.Description, &d.Date, &d.CategoryName, &d.CategoryType); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (db *Postgres) UpdateTransaction(ctx context.Context, id, userID int64, update model.TransactionUpdate) (int64, error) {
	query := `
		UPDATE transactions
		SET amount = COALESCE($3, amount),
		    description = COALESCE($4, description),
		    date = COALESCE($5, date),
		    category_id = COALESCE($6, category_id)
		WHERE id = $1 AND user_id = $2
	`
	tag, err := db.Pool.Exec(ctx, query, id, userID, update.Amount, update.Description, update.Date, update.CategoryID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (db *Postgres) DeleteTransaction(ctx context.Context, id, userID int64) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
