package models

import "encoding/json"

// Outcome labels recorded per bulk item
const (
	StatusCreated = "Created"
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// SendRequest is a single vendor send with a caller supplied body
type SendRequest struct {
	URL   string          `json:"url" validate:"required"`
	Token string          `json:"token" validate:"required"`
	Body  json.RawMessage `json:"body" validate:"required"`
}

// SendResult echoes one vendor send
type SendResult struct {
	HTTPStatusCode int `json:"httpStatusCode"`
	RequestBody    any `json:"requestBody"`
	ResponseBody   any `json:"responseBody"`
}

type ProductImportRequest struct {
	URL   string   `json:"url" validate:"required"`
	Token string   `json:"token" validate:"required"`
	Rows  []CSVRow `json:"rows" validate:"required,min=1"`
}

type InventoryImportRequest struct {
	URL   string            `json:"url" validate:"required"`
	Token string            `json:"token" validate:"required"`
	Rows  []InventoryCSVRow `json:"rows" validate:"required,min=1"`
}

// ProductLogEntry is the full record of one product row
type ProductLogEntry struct {
	RowNumber      int      `json:"rowNumber"`
	ProductNumber  string   `json:"productNumber,omitempty"`
	HTTPStatusCode int      `json:"httpStatusCode"`
	Status         string   `json:"status"`
	RequestBody    any      `json:"requestBody"`
	ResponseBody   any      `json:"responseBody"`
	RequestDigest  string   `json:"requestDigest,omitempty"`
	Timestamp      string   `json:"timestamp"`
	Message        string   `json:"message,omitempty"`
	Details        []string `json:"details,omitempty"`
}

type ProductResult struct {
	RowNumber     int      `json:"rowNumber"`
	Status        string   `json:"status"`
	HTTPCode      int      `json:"httpCode"`
	ProductNumber string   `json:"productNumber,omitempty"`
	Message       string   `json:"message,omitempty"`
	Details       []string `json:"details,omitempty"`
}

type ProductSummary struct {
	TotalRows int             `json:"totalRows"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []ProductResult `json:"results"`
}

type ProductImportResult struct {
	Summary    ProductSummary    `json:"summary"`
	LogEntries []ProductLogEntry `json:"logEntries"`
}

// InventoryLogEntry is the full record of one branch payload
type InventoryLogEntry struct {
	PayloadNumber   int      `json:"payloadNumber"`
	BranchID        string   `json:"branchId"`
	AdjustmentCount int      `json:"adjustmentCount"`
	HTTPStatusCode  int      `json:"httpStatusCode"`
	Status          string   `json:"status"`
	RequestBody     any      `json:"requestBody"`
	ResponseBody    any      `json:"responseBody"`
	RequestDigest   string   `json:"requestDigest,omitempty"`
	Timestamp       string   `json:"timestamp"`
	Message         string   `json:"message,omitempty"`
	Details         []string `json:"details,omitempty"`
}

type InventoryResult struct {
	PayloadNumber   int      `json:"payloadNumber"`
	BranchID        string   `json:"branchId"`
	AdjustmentCount int      `json:"adjustmentCount"`
	Status          string   `json:"status"`
	HTTPCode        int      `json:"httpCode"`
	Message         string   `json:"message,omitempty"`
	Details         []string `json:"details,omitempty"`
}

type InventorySummary struct {
	TotalPayloads int               `json:"totalPayloads"`
	TotalRows     int               `json:"totalRows"`
	Succeeded     int               `json:"succeeded"`
	Failed        int               `json:"failed"`
	Results       []InventoryResult `json:"results"`
}

type InventoryImportResult struct {
	Summary    InventorySummary    `json:"summary"`
	LogEntries []InventoryLogEntry `json:"logEntries"`
}
