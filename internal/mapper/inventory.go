package mapper

import "github.com/igorsal/api-console/internal/models"

// MapRowToInventoryLine builds one adjustment line. productId is Make followed
// directly by the part number.
func MapRowToInventoryLine(row models.InventoryCSVRow, reasonID string) models.AdjustmentLine {
	return models.AdjustmentLine{
		ProductID: field(row, models.ColMake) + field(row, models.ColPartNumber),
		Quantity:  parseNumber(row[models.ColStock]),
		ReasonID:  reasonID,
	}
}

// GroupRowsByBranch emits one payload per distinct trimmed Source, ordered by
// first appearance. Rows without a Source are dropped.
func GroupRowsByBranch(rows []models.InventoryCSVRow, reasonID string) []models.AdjustmentPayload {
	index := make(map[string]int)
	var payloads []models.AdjustmentPayload

	for _, row := range rows {
		branchID := field(row, models.ColSource)
		if branchID == "" {
			continue
		}

		i, ok := index[branchID]
		if !ok {
			i = len(payloads)
			index[branchID] = i
			payloads = append(payloads, models.AdjustmentPayload{BranchID: branchID})
		}
		payloads[i].AdjustmentLines = append(payloads[i].AdjustmentLines, MapRowToInventoryLine(row, reasonID))
	}

	return payloads
}
