package model

type CategorizeRequest struct {
	Text string `json:"text" binding:"required"`
}

// CategorizeResult is the validated output of the classification engine.
// It is returned to the caller and never persisted here; creating a
// transaction from it is the client's next call.
type CategorizeResult struct {
	CategoryName             string  `json:"categoryName"`
	AmountExtracted          float64 `json:"amountExtracted"`
	DescriptionExtracted     string  `json:"descriptionExtracted"`
	TransactionTypeExtracted string  `json:"transactionTypeExtracted"`
}

type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}
