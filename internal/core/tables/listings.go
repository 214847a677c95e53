package tables

import "github.com/JonMunkholm/FoodShare/internal/core"

func init() {
	core.RegisterTable(core.TableSpec{
		Name:  core.TableListings,
		Label: "Food Listings",
		Key:   "Food_ID",
		FieldSpecs: []core.FieldSpec{
			{Name: "Food_ID", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "Food_Name", Type: core.FieldText, Normalizer: NormalizeSpaces},
			{Name: "Quantity", Type: core.FieldNumeric, Required: true, NonNegative: true},
			{Name: "Expiry_Date", Type: core.FieldText},
			{Name: "Provider_ID", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "Provider_Type", Type: core.FieldText, Normalizer: NormalizeSpaces},
			{Name: "Location", Type: core.FieldText, Required: true, Normalizer: NormalizeSpaces},
			{Name: "Food_Type", Type: core.FieldText, Required: true, Normalizer: NormalizeSpaces},
			{Name: "Meal_Type", Type: core.FieldText, Required: true, Normalizer: NormalizeSpaces},
		},
	})
}
