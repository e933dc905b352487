package catalog

import (
	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/shopspring/decimal"
)

// PriceRange returns the minimum and maximum zone price. Both are invalid
// (NULL) when there are no zones.
func PriceRange(zones []v1.Zone) (minPrice, maxPrice decimal.NullDecimal) {
	for i, z := range zones {
		if i == 0 {
			minPrice = decimal.NewNullDecimal(z.Price)
			maxPrice = decimal.NewNullDecimal(z.Price)
			continue
		}
		if z.Price.LessThan(minPrice.Decimal) {
			minPrice.Decimal = z.Price
		}
		if z.Price.GreaterThan(maxPrice.Decimal) {
			maxPrice.Decimal = z.Price
		}
	}
	return minPrice, maxPrice
}

// BuildSummary derives the summary of evt for a base event titled title.
func BuildSummary(evt v1.Event, title string) v1.Summary {
	minPrice, maxPrice := PriceRange(evt.Zones)
	return v1.Summary{
		EventID:  evt.ID,
		Title:    title,
		StartsAt: evt.StartsAt,
		EndsAt:   evt.EndsAt,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}
}

// SummaryEqual reports whether two summaries carry the same values.
// Times and prices compare by value, not representation.
func SummaryEqual(a, b v1.Summary) bool {
	return a.EventID == b.EventID &&
		a.Title == b.Title &&
		a.StartsAt.Equal(b.StartsAt) &&
		a.EndsAt.Equal(b.EndsAt) &&
		nullDecimalEqual(a.MinPrice, b.MinPrice) &&
		nullDecimalEqual(a.MaxPrice, b.MaxPrice)
}

func nullDecimalEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
