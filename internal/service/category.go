package service

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/model"
)

var ErrCategoryExists = errors.New("category already exists")

type CategoryRepo interface {
	CreateCategory(ctx context.Context, name, categoryType string) (*model.Category, error)
	CreateCategories(ctx context.Context, categories []model.CategoryInput) (int64, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, categoryType string) (int64, error)
	DeleteCategory(ctx context.Context, id int64) (int64, error)
}

type CategoryService struct {
	repo CategoryRepo
}

func NewCategoryService(repo CategoryRepo) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, input model.CategoryInput) (*model.Category, error) {
	category, err := s.repo.CreateCategory(ctx, input.Name, input.Type)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateMany(ctx context.Context, inputs []model.CategoryInput) (int64, error) {
	return s.repo.CreateCategories(ctx, inputs)
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id int64, update model.CategoryUpdate) (int64, error) {
	return s.repo.UpdateCategory(ctx, id, update.Name, update.Type)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.DeleteCategory(ctx, id)
}
