package reports

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

func valuedProduct(id int64, value float64) inventory.Product {
	return inventory.Product{ID: id, Code: "P", Name: "Product", StockCurrent: 1, CostPrice: value}
}

func TestClassifyABC(t *testing.T) {
	products := []inventory.Product{
		valuedProduct(1, 1000),
		valuedProduct(2, 500),
		valuedProduct(3, 300),
		valuedProduct(4, 150),
		valuedProduct(5, 50),
	}

	result := ClassifyABC(products)
	require.Len(t, result.Items, 5)
	require.InDelta(t, 2000, result.TotalValue, 0.0001)

	categories := make([]ABCCategory, 0, len(result.Items))
	for _, item := range result.Items {
		categories = append(categories, item.Category)
	}
	require.Equal(t, []ABCCategory{ABCCategoryA, ABCCategoryA, ABCCategoryB, ABCCategoryC, ABCCategoryC}, categories)

	require.InDelta(t, 50, result.Items[0].CumulativePercentage, 0.0001)
	require.InDelta(t, 75, result.Items[1].CumulativePercentage, 0.0001)
	require.InDelta(t, 90, result.Items[2].CumulativePercentage, 0.0001)
	require.InDelta(t, 100, result.Items[4].CumulativePercentage, 0.0001)

	require.Equal(t, 2, result.Summary[ABCCategoryA].Count)
	require.InDelta(t, 1500, result.Summary[ABCCategoryA].Value, 0.0001)
	require.Equal(t, 1, result.Summary[ABCCategoryB].Count)
	require.Equal(t, 2, result.Summary[ABCCategoryC].Count)
}

func TestClassifyABCSortsByValue(t *testing.T) {
	products := []inventory.Product{
		valuedProduct(1, 10),
		valuedProduct(2, 900),
		valuedProduct(3, 90),
	}

	result := ClassifyABC(products)
	require.Len(t, result.Items, 3)
	require.Equal(t, int64(2), result.Items[0].Product.ID)
	require.Equal(t, int64(3), result.Items[1].Product.ID)
	require.Equal(t, int64(1), result.Items[2].Product.ID)
}

func TestClassifyABCDiscardsNonPositiveValue(t *testing.T) {
	products := []inventory.Product{
		valuedProduct(1, 100),
		{ID: 2, StockCurrent: 0, CostPrice: 50},
		{ID: 3, StockCurrent: 10, CostPrice: 0},
	}

	result := ClassifyABC(products)
	require.Len(t, result.Items, 1)
	require.Equal(t, int64(1), result.Items[0].Product.ID)
	require.Equal(t, ABCCategoryA, result.Items[0].Category)
}

func TestClassifyABCEmptySet(t *testing.T) {
	result := ClassifyABC(nil)
	require.Empty(t, result.Items)
	require.Zero(t, result.TotalValue)
	require.Equal(t, 0, result.Summary[ABCCategoryA].Count)
	require.Equal(t, 0, result.Summary[ABCCategoryB].Count)
	require.Equal(t, 0, result.Summary[ABCCategoryC].Count)
}

func TestClassifyABCPrefersSalePrice(t *testing.T) {
	sale := 200.0
	products := []inventory.Product{
		{ID: 1, StockCurrent: 2, CostPrice: 50, SalePrice: &sale},
	}

	result := ClassifyABC(products)
	require.Len(t, result.Items, 1)
	require.InDelta(t, 400, result.Items[0].Value, 0.0001)
}
