package tables

import (
	"testing"

	"github.com/JonMunkholm/FoodShare/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTablesRegistered(t *testing.T) {
	for _, name := range []string{core.TableProviders, core.TableReceivers, core.TableClaims, core.TableListings} {
		spec, ok := core.LookupTable(name)
		require.True(t, ok, "table %s not registered", name)
		assert.NotEmpty(t, spec.Label)
		assert.NotEmpty(t, spec.FieldSpecs)
	}
}

func TestRequiredColumns(t *testing.T) {
	want := map[string][]string{
		core.TableProviders: {"Provider_ID", "Name", "Type", "City", "Contact"},
		core.TableReceivers: {"Receiver_ID", "City"},
		core.TableListings:  {"Food_ID", "Quantity", "Provider_ID", "Location", "Food_Type", "Meal_Type"},
		core.TableClaims:    {"Food_ID", "Receiver_ID"},
	}

	for name, cols := range want {
		spec, _ := core.LookupTable(name)
		var got []string
		for _, fs := range spec.FieldSpecs {
			if fs.Required {
				got = append(got, fs.Name)
			}
		}
		assert.ElementsMatch(t, cols, got, name)
	}
}

func TestListingQuantityIsNonNegativeNumeric(t *testing.T) {
	spec, _ := core.LookupTable(core.TableListings)
	fs, ok := spec.Spec("quantity")
	require.True(t, ok)
	assert.Equal(t, core.FieldNumeric, fs.Type)
	assert.True(t, fs.NonNegative)
}

func TestNormalizeSpaces(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Fast Food", "Fast Food"},
		{"Fast   Food", "Fast Food"},
		{"  Grocery\tStore ", "Grocery Store"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSpaces(tt.input))
		})
	}
}

func TestNormalizeClaimStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"pending", "Pending"},
		{"COMPLETED", "Completed"},
		{"Canceled", "Cancelled"},
		{"On  Hold", "On Hold"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeClaimStatus(tt.input))
		})
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12", "12"},
		{"12.0", "12"},
		{"12.5", "12.5"},
		{"A1.0", "A1.0"},
		{".0", ".0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeID(tt.input))
		})
	}
}
