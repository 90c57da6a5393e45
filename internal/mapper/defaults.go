package mapper

// ProductDefaults holds the vendor business constants injected into every
// product payload. They are not read from the CSV.
type ProductDefaults struct {
	AccountCodeID            string
	SalesClassID             string
	ProductTypeID            int
	Tire                     bool
	IncludeInTireQuoteScreen bool
	Discountable             bool
	AllowDecimalQuantity     bool
	Inventoriable            bool
	IsQuickAdd               bool
	TyreGroupForTax          int
	MSRated                  bool
	B2BShowPart              bool
	B2BShowPrice             bool
	B2CShowPart              bool
	B2CShowPrice             bool
}

// DefaultProductDefaults are the tire catalogue defaults used by the vendor.
func DefaultProductDefaults() ProductDefaults {
	return ProductDefaults{
		AccountCodeID:            "0520000",
		SalesClassID:             "052",
		ProductTypeID:            1,
		Tire:                     true,
		IncludeInTireQuoteScreen: true,
		Discountable:             true,
		AllowDecimalQuantity:     true,
		Inventoriable:            true,
		IsQuickAdd:               true,
		TyreGroupForTax:          1,
		MSRated:                  false,
		B2BShowPart:              true,
		B2BShowPrice:             true,
		B2CShowPart:              true,
		B2CShowPrice:             true,
	}
}

// DefaultReasonID is the stock adjustment reason sent with every line.
const DefaultReasonID = "5"
