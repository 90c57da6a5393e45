package models

// InventoryCSVRow carries Source, Make, IPCCode/Part # and Stock columns
type InventoryCSVRow = CSVRow

// AdjustmentLine is one stock adjustment for a product
type AdjustmentLine struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	ReasonID  string  `json:"reasonId"`
}

// AdjustmentPayload is the vendor body for one branch
type AdjustmentPayload struct {
	BranchID        string           `json:"branchId"`
	AdjustmentLines []AdjustmentLine `json:"adjustmentLines"`
}
