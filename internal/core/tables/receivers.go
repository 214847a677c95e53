package tables

import "github.com/JonMunkholm/FoodShare/internal/core"

func init() {
	core.RegisterTable(core.TableSpec{
		Name:  core.TableReceivers,
		Label: "Receivers",
		Key:   "Receiver_ID",
		FieldSpecs: []core.FieldSpec{
			{Name: "Receiver_ID", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "Name", Type: core.FieldText, Normalizer: NormalizeSpaces},
			{Name: "Type", Type: core.FieldText, Normalizer: NormalizeSpaces},
			{Name: "City", Type: core.FieldText, Required: true, Normalizer: NormalizeSpaces},
			{Name: "Contact", Type: core.FieldText},
		},
	})
}
