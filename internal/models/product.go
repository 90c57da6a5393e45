package models

// CSVRow is one spreadsheet record keyed by header name
type CSVRow map[string]string

// Product import column names
const (
	ColSource      = "Source"
	ColPartNumber  = "IPCCode/Part #"
	ColItemName    = "ItemName"
	ColMake        = "Make"
	ColWidth       = "Width"
	ColProfile     = "Profile"
	ColRim         = "Rim"
	ColLoadIndex   = "LoadIndex"
	ColSpeedRating = "SpeedRating"
	ColLoadRange   = "Load Range"
	ColSidewall    = "Sidewall"
	ColUTQG        = "UTQG"
	ColWarranty    = "Warranty"
	ColTreadDepth  = "Tread Depth"
	ColPrice       = "Price"
	ColStock       = "Stock"
)

// ProductPayload is the vendor product creation body
type ProductPayload struct {
	BranchID                 string      `json:"branchId"`
	AccountCodeID            string      `json:"accountCodeId"`
	SalesClassID             string      `json:"salesClassId"`
	ProductNumber            string      `json:"productNumber"`
	Description              string      `json:"description"`
	ProductTypeID            int         `json:"productTypeId"`
	Tire                     bool        `json:"tire"`
	IncludeInTireQuoteScreen bool        `json:"includeInTireQuoteScreen"`
	Discountable             bool        `json:"discountable"`
	AllowDecimalQuantity     bool        `json:"allowDecimalQuantity"`
	Inventoriable            bool        `json:"inventoriable"`
	IsQuickAdd               bool        `json:"isQuickAdd"`
	TyreGroupForTax          int         `json:"tyreGroupForTax"`
	ManufacturerID           string      `json:"manufacturerId"`
	TireDetails              TireDetails `json:"tireDetails"`
	Pricing                  Pricing     `json:"pricing"`
	BusinessToBusiness       Visibility  `json:"businessToBusiness"`
	BusinessToCustomer       Visibility  `json:"businessToCustomer"`
	WarrantyInfo             struct{}    `json:"warrantyInfo"`
	Wheel                    struct{}    `json:"wheel"`
	Batteries                struct{}    `json:"batteries"`
	Chains                   struct{}    `json:"chains"`
	CommodityCodes           struct{}    `json:"commodityCodes"`
}

type TireDetails struct {
	CatalogSize               string  `json:"catalogSize"`
	SearchSize                string  `json:"searchSize"`
	TireWidth                 string  `json:"tireWidth"`
	TireRatio                 string  `json:"tireRatio"`
	TireRim                   string  `json:"tireRim"`
	LoadIndex                 string  `json:"loadIndex"`
	Rate                      string  `json:"rate"`
	LoadRange                 string  `json:"loadRange"`
	WallCode                  string  `json:"wallCode"`
	UniformTireQualityGrading string  `json:"uniformTireQualityGrading"`
	ManufacturerWarrantyMiles float64 `json:"manufacturerWarrantyMiles"`
	TireTread                 float64 `json:"tireTread"`
	MSRated                   bool    `json:"msRated"`
	PassengerAndLightTruck    string  `json:"passengerAndLightTruck"`
	Discontinued              string  `json:"discontinued"`
}

type Pricing struct {
	PublishedCost         float64 `json:"publishedCost"`
	ListPrice             float64 `json:"listPrice"`
	LaborAmount           float64 `json:"laborAmount"`
	ProductAddon          float64 `json:"productAddon"`
	LaborAddon            float64 `json:"laborAddon"`
	HasCore               bool    `json:"hasCore"`
	LabourPayableHoursMin float64 `json:"labourPayableHoursMin"`
	LabourPayableHoursMax float64 `json:"labourPayableHoursMax"`
	CoreValue             float64 `json:"coreValue"`
	WorkHours             float64 `json:"workHours"`
}

type Visibility struct {
	ShowPart  bool `json:"showPart"`
	ShowPrice bool `json:"showPrice"`
}
