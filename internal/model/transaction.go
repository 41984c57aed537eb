package model

import "time"

type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	CategoryID  int64     `json:"categoryId"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionDetail is a transaction joined with its category, used when
// building summaries for the advisor.
type TransactionDetail struct {
	ID           int64
	Amount       float64
	Description  string
	Date         time.Time
	CategoryName string
	CategoryType string
}

type TransactionInput struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
	Date        string  `json:"date" binding:"required"`
	CategoryID  int64   `json:"categoryId" binding:"required"`
}

// TransactionUpdate carries optional fields; nil means leave unchanged.
type TransactionUpdate struct {
	Amount      *float64   `json:"amount"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	CategoryID  *int64     `json:"categoryId"`
}
