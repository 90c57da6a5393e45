// Package mapper converts spreadsheet rows into vendor payloads.
package mapper

import "github.com/igorsal/api-console/internal/models"

// MapRowToProduct builds a product payload from one CSV row. Every field has a
// default, so any row, including an empty one, maps without error.
func MapRowToProduct(row models.CSVRow, d ProductDefaults) models.ProductPayload {
	width := field(row, models.ColWidth)
	profile := field(row, models.ColProfile)
	rim := field(row, models.ColRim)
	catalogSize := width + profile + rim

	return models.ProductPayload{
		BranchID:                 field(row, models.ColSource),
		AccountCodeID:            d.AccountCodeID,
		SalesClassID:             d.SalesClassID,
		ProductNumber:            field(row, models.ColPartNumber),
		Description:              field(row, models.ColItemName),
		ProductTypeID:            d.ProductTypeID,
		Tire:                     d.Tire,
		IncludeInTireQuoteScreen: d.IncludeInTireQuoteScreen,
		Discountable:             d.Discountable,
		AllowDecimalQuantity:     d.AllowDecimalQuantity,
		Inventoriable:            d.Inventoriable,
		IsQuickAdd:               d.IsQuickAdd,
		TyreGroupForTax:          d.TyreGroupForTax,
		ManufacturerID:           field(row, models.ColMake),
		TireDetails: models.TireDetails{
			CatalogSize:               catalogSize,
			SearchSize:                catalogSize,
			TireWidth:                 width,
			TireRatio:                 profile,
			TireRim:                   rim,
			LoadIndex:                 field(row, models.ColLoadIndex),
			Rate:                      field(row, models.ColSpeedRating),
			LoadRange:                 field(row, models.ColLoadRange),
			WallCode:                  field(row, models.ColSidewall),
			UniformTireQualityGrading: field(row, models.ColUTQG),
			ManufacturerWarrantyMiles: parseNumber(row[models.ColWarranty]),
			TireTread:                 parseNumber(row[models.ColTreadDepth]),
			MSRated:                   d.MSRated,
		},
		Pricing: models.Pricing{
			ListPrice: parseNumber(row[models.ColPrice]),
		},
		BusinessToBusiness: models.Visibility{ShowPart: d.B2BShowPart, ShowPrice: d.B2BShowPrice},
		BusinessToCustomer: models.Visibility{ShowPart: d.B2CShowPart, ShowPrice: d.B2CShowPrice},
	}
}
