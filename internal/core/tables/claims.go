package tables

import "github.com/JonMunkholm/FoodShare/internal/core"

func init() {
	core.RegisterTable(core.TableSpec{
		Name:  core.TableClaims,
		Label: "Claims",
		Key:   "Claim_ID",
		FieldSpecs: []core.FieldSpec{
			{Name: "Claim_ID", Type: core.FieldText, Normalizer: NormalizeID},
			{Name: "Food_ID", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "Receiver_ID", Type: core.FieldText, Required: true, Normalizer: NormalizeID},
			{Name: "Status", Type: core.FieldText, Normalizer: NormalizeClaimStatus},
			{Name: "Timestamp", Type: core.FieldText},
		},
	})
}
