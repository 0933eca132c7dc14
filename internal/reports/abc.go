package reports

import (
	"sort"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// ABCCategory tiers a product by cumulative value share.
type ABCCategory string

const (
	// ABCCategoryA covers the first 80% of cumulative value.
	ABCCategoryA ABCCategory = "A"
	// ABCCategoryB covers the 80-95% band.
	ABCCategoryB ABCCategory = "B"
	// ABCCategoryC covers the remainder.
	ABCCategoryC ABCCategory = "C"
)

const (
	abcCutA = 80
	abcCutB = 95
)

// ABCItem is one classified product, ordered by descending value.
type ABCItem struct {
	Product              inventory.Product
	Value                float64
	Percentage           float64
	CumulativePercentage float64
	Category             ABCCategory
}

// ABCSummary aggregates one category band.
type ABCSummary struct {
	Category   ABCCategory
	Count      int
	Value      float64
	Percentage float64
}

// ABCClassification is the full Pareto classification result.
type ABCClassification struct {
	Items      []ABCItem
	Summary    map[ABCCategory]ABCSummary
	TotalValue float64
}

// ClassifyABC runs the Pareto classification over the product set. Products
// with non-positive value are discarded; when nothing remains the result is
// an empty classification, never a division by zero.
func ClassifyABC(products []inventory.Product) ABCClassification {
	result := ABCClassification{Summary: map[ABCCategory]ABCSummary{
		ABCCategoryA: {Category: ABCCategoryA},
		ABCCategoryB: {Category: ABCCategoryB},
		ABCCategoryC: {Category: ABCCategoryC},
	}}

	items := make([]ABCItem, 0, len(products))
	for _, p := range products {
		value := p.Value()
		if value <= 0 {
			continue
		}
		items = append(items, ABCItem{Product: p, Value: value})
		result.TotalValue += value
	}
	if result.TotalValue == 0 {
		return result
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})

	var cumulative float64
	for i := range items {
		cumulative += items[i].Value
		items[i].Percentage = percentage(items[i].Value, result.TotalValue)
		items[i].CumulativePercentage = percentage(cumulative, result.TotalValue)
		switch {
		case items[i].CumulativePercentage <= abcCutA:
			items[i].Category = ABCCategoryA
		case items[i].CumulativePercentage <= abcCutB:
			items[i].Category = ABCCategoryB
		default:
			items[i].Category = ABCCategoryC
		}

		summary := result.Summary[items[i].Category]
		summary.Count++
		summary.Value += items[i].Value
		summary.Percentage += items[i].Percentage
		result.Summary[items[i].Category] = summary
	}

	result.Items = items
	return result
}
