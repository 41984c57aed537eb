package model

const (
	CategoryTypeIncome  = "INCOME"
	CategoryTypeExpense = "EXPENSE"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

type CategoryUpdate struct {
	Name string `json:"name"`
	Type string `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
}

type BulkCategoriesResponse struct {
	Status   string `json:"status"`
	Inserted int64  `json:"inserted"`
}
