// Package reports registers the fixed report catalog with the core registry.
// Import this package to ensure every report is registered.
//
// Each producer is a pure function of core.Inputs. Grouped reports emit one
// row per non-null key in ascending key order; ordered reports then sort
// stably on the aggregate, so ties keep ascending key order.
package reports

import "github.com/JonMunkholm/FoodShare/internal/core"

// Result column names shared by several reports.
const (
	colCount       = "Count"
	colQuantity    = "Quantity"
	colTotalClaims = "Total Claims"
)

func init() {
	for _, def := range catalog {
		core.RegisterReport(def)
	}
}

var catalog = []core.ReportDefinition{
	{
		Number:  1,
		Key:     "providers-by-type",
		Name:    "Providers by Type",
		Title:   "Number of Providers by Type",
		Produce: providersByType,
	},
	{
		Number:  2,
		Key:     "claimed-quantity-by-city",
		Name:    "Claimed quantity by City",
		Title:   "Total Claimed Food Quantity by City",
		Produce: claimedQuantityByCity,
	},
	{
		Number:  3,
		Key:     "most-claimed-meal-types",
		Name:    "Most claimed meal types",
		Title:   "Most Claimed Meal Types",
		Produce: mostClaimedMealTypes,
	},
	{
		Number:  4,
		Key:     "top-receivers-by-claims",
		Name:    "Top receivers by claim count",
		Title:   "Top 5 Receivers by Claims",
		Produce: topReceiversByClaims,
	},
	{
		Number:  5,
		Key:     "quantity-by-food-type",
		Name:    "Quantity by Food_Type",
		Title:   "Food Quantity by Food Type",
		Produce: quantityByFoodType,
	},
	{
		Number:  6,
		Key:     "providers-with-most-listings",
		Name:    "Providers with most listings",
		Title:   "Providers with the Most Listings",
		Produce: providersWithMostListings,
	},
	{
		Number:  7,
		Key:     "receivers-by-city",
		Name:    "Receivers by City",
		Title:   "Receivers by City",
		Produce: receiversByCity,
	},
	{
		Number:  8,
		Key:     "claims-per-meal-type",
		Name:    "Claims per Meal_Type",
		Title:   "Claims per Meal Type",
		Produce: claimsPerMealType,
	},
	{
		Number:  9,
		Key:     "listings-by-location",
		Name:    "Listings by Location",
		Title:   "Total Listings by Location",
		Produce: listingsByLocation,
	},
	{
		Number:  10,
		Key:     "quantity-by-provider-type",
		Name:    "Listing quantity per Provider Type",
		Title:   "Food Listings Quantity per Provider Type",
		Produce: quantityByProviderType,
	},
	{
		Number:  11,
		Key:     "most-active-receiver",
		Name:    "Most active receiver by quantity",
		Title:   "Most Active Receiver (by Quantity)",
		Produce: mostActiveReceiver,
	},
	{
		Number:  12,
		Key:     "claims-by-food-type",
		Name:    "Claims by Food_Type",
		Title:   "Total Claims by Food Type",
		Produce: claimsByFoodType,
	},
	{
		Number:  13,
		Key:     "average-quantity-by-meal-type",
		Name:    "Average quantity per Meal_Type",
		Title:   "Average Quantity Listed per Meal Type",
		Produce: averageQuantityByMealType,
	},
	{
		Number:  14,
		Key:     "unique-providers-by-city",
		Name:    "Unique providers per City",
		Title:   "Number of Unique Providers per City",
		Produce: uniqueProvidersByCity,
	},
	{
		Number:  15,
		Key:     "most-frequent-location",
		Name:    "Most frequent listing location",
		Title:   "Most Frequent Listing Location",
		Produce: mostFrequentLocation,
	},
}

// top groups t, sorts descending on the aggregate column and keeps n rows.
func top(t *core.Table, key string, agg core.Aggregate, n int) (*core.Table, error) {
	g, err := core.GroupBy(t, key, agg)
	if err != nil {
		return nil, err
	}
	sorted, err := core.SortBy(g, agg.As, true)
	if err != nil {
		return nil, err
	}
	return core.Limit(sorted, n), nil
}

func providersByType(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.Providers, "Type", core.Count(colCount))
}

func claimedQuantityByCity(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.ClaimsDetail, "City", core.Sum("Quantity", colQuantity))
}

func mostClaimedMealTypes(in core.Inputs) (*core.Table, error) {
	return top(in.Listings, "Meal_Type", core.Sum("Quantity", colQuantity), -1)
}

func topReceiversByClaims(in core.Inputs) (*core.Table, error) {
	return top(in.Claims, "Receiver_ID", core.Count(colTotalClaims), 5)
}

func quantityByFoodType(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.Listings, "Food_Type", core.Sum("Quantity", colQuantity))
}

func providersWithMostListings(in core.Inputs) (*core.Table, error) {
	return top(in.ListingsWithProvider, "Provider_Name", core.Count("Listings Count"), 5)
}

func receiversByCity(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.Receivers, "City", core.Count("Receiver Count"))
}

func claimsPerMealType(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.ClaimsDetail, "Meal_Type", core.Count(colTotalClaims))
}

func listingsByLocation(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.Listings, "Location", core.Count("Total Listings"))
}

// quantityByProviderType sums listing quantity by the owning provider's
// Type. Listings whose provider is unknown are dropped.
func quantityByProviderType(in core.Inputs) (*core.Table, error) {
	types, err := core.Project(in.Providers, "Provider_ID", "Type")
	if err != nil {
		return nil, err
	}
	joined, err := core.InnerJoin(in.Listings, types, "Provider_ID")
	if err != nil {
		return nil, err
	}
	return core.GroupBy(joined, "Type", core.Sum("Quantity", colQuantity))
}

func mostActiveReceiver(in core.Inputs) (*core.Table, error) {
	return top(in.ClaimsDetail, "Receiver_ID", core.Sum("Quantity", colQuantity), 1)
}

func claimsByFoodType(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.ClaimsDetail, "Food_Type", core.Count(colTotalClaims))
}

func averageQuantityByMealType(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.Listings, "Meal_Type", core.Mean("Quantity", "Average Quantity"))
}

func uniqueProvidersByCity(in core.Inputs) (*core.Table, error) {
	return core.GroupBy(in.Providers, "City", core.CountDistinct("Provider_ID", "Unique Providers"))
}

func mostFrequentLocation(in core.Inputs) (*core.Table, error) {
	return top(in.Listings, "Location", core.Count(colCount), 1)
}
