package db

import (
	"context"

	"github.com/fintrack/backend/internal/model"
)

func (db *Postgres) CreateCategory(ctx context.Context, name, categoryType string) (*model.Category, error) {
	query := `
		INSERT INTO categories (name, type, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, name, type
	`
	var category model.Category
	err := db.Pool.QueryRow(ctx, query, name, categoryType).Scan(
		&category.ID,
		&category.Name,
		&category.Type,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategories bulk-inserts, silently skipping names that already exist.
func (db *Postgres) CreateCategories(ctx context.Context, categories []model.CategoryInput) (int64, error) {
	query := `
		INSERT INTO categories (name, type, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO NOTHING
	`
	var inserted int64
	for _, c := range categories {
		tag, err := db.Pool.Exec(ctx, query, c.Name, c.Type)
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

func (db *Postgres) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, type
		FROM categories
		ORDER BY name ASC
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (db *Postgres) UpdateCategory(ctx context.Context, id int64, name, categoryType string) (int64, error) {
	query := `
		UPDATE categories
		SET name = COALESCE(NULLIF($2, ''), name),
		    type = COALESCE(NULLIF($3, ''), type)
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, id, name, categoryType)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (db *Postgres) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
