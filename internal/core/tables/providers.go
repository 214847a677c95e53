package tables

import "github.com/JonMunkholm/FoodShare/internal/core"

func init() {
	core.RegisterTable(core.TableSpec{
		Name:  core.TableProviders,
		Label: "Providers",
		Key:   "Provider_ID",
		FieldSpecs: []core.FieldSpec{
			{Name: "Provider_ID", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "Name", Type: core.FieldText, Required: true, Normalizer: NormalizeSpaces},
			{Name: "Type", Type: core.FieldText, Required: true, Normalizer: NormalizeSpaces},
			{Name: "Address", Type: core.FieldText},
			{Name: "City", Type: core.FieldText, Required: true, Normalizer: NormalizeSpaces},
			{Name: "Contact", Type: core.FieldText, Required: true},
		},
	})
}
