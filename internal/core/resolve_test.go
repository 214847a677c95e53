package core_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/FoodShare/internal/core"
	"github.com/JonMunkholm/FoodShare/internal/core/coretest"
)

// valueComparer lets cmp compare Values, whose fields are unexported.
var valueComparer = cmp.Comparer(func(a, b core.Value) bool { return a.Equal(b) })

func TestResolve(t *testing.T) {
	ds := coretest.Dataset(t)

	lwp, detail, err := core.Resolve(ds.Providers, ds.Receivers, ds.Claims, ds.Listings)
	require.NoError(t, err)

	assert.Equal(t, core.ViewListingsWithProvider, lwp.Name)
	assert.Equal(t, ds.Listings.Len(), lwp.Len())
	assert.Equal(t, append(append([]string{}, ds.Listings.Columns...), "Provider_Name"), lwp.Columns)

	names, err := lwp.Column("Provider_Name")
	require.NoError(t, err)
	assert.Equal(t, []core.Value{
		core.Text("Green Bowl"),
		core.Text("Sunrise Bakery"),
		core.Text("Lotus Kitchen"),
		core.Text("Hill Market"),
		core.Text("Green Bowl"),
		core.Null(),
	}, names)

	assert.Equal(t, core.ViewClaimsDetail, detail.Name)
	assert.LessOrEqual(t, detail.Len(), ds.Claims.Len())

	claimIDs, err := detail.Column("Claim_ID")
	require.NoError(t, err)
	assert.Equal(t, []core.Value{
		core.Text("1"), core.Text("2"), core.Text("3"), core.Text("4"), core.Text("5"),
	}, claimIDs, "claims 6 and 7 do not resolve")

	for _, col := range []string{"Quantity", "Meal_Type", "Food_Type", "Provider_Name", "City", "Receiver_ID"} {
		assert.True(t, detail.HasColumn(col), "claims_detail has %s", col)
	}

	cities, err := detail.Column("City")
	require.NoError(t, err)
	assert.Equal(t, core.Text("Delhi"), cities[2], "City comes from the receiver")
}

func TestResolveLeavesBaseTablesUnchanged(t *testing.T) {
	ds := coretest.Dataset(t)
	before := *ds.Listings
	beforeRows := append([]core.Row(nil), ds.Listings.Rows...)

	_, _, err := core.Resolve(ds.Providers, ds.Receivers, ds.Claims, ds.Listings)
	require.NoError(t, err)

	if diff := cmp.Diff(before.Columns, ds.Listings.Columns); diff != "" {
		t.Errorf("listings columns changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(beforeRows, ds.Listings.Rows, valueComparer); diff != "" {
		t.Errorf("listings rows changed (-before +after):\n%s", diff)
	}
}

func TestResolveDuplicateKeys(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		override string
		column   string
	}{
		{
			name:  "duplicate provider",
			table: core.TableProviders,
			override: coretest.ProvidersCSV +
				"1,Other Bowl,Restaurant,1 Main St,Pune,+91-9000000009\n",
			column: "Provider_ID",
		},
		{
			name:  "duplicate listing",
			table: core.TableListings,
			override: coretest.ListingsCSV +
				"1,Rice,3,2025-03-17,1,Restaurant,Mumbai,Vegetarian,Lunch\n",
			column: "Food_ID",
		},
		{
			name:  "duplicate receiver",
			table: core.TableReceivers,
			override: coretest.ReceiversCSV +
				"2,Food Bank South,NGO,Chennai,+91-8000000009\n",
			column: "Receiver_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := coretest.Source(t, map[string]string{tt.table: tt.override})
			ds, err := core.Load(t.Context(), src)
			require.NoError(t, err, "duplicates are a join-time error, not a load error")

			_, _, err = core.Resolve(ds.Providers, ds.Receivers, ds.Claims, ds.Listings)
			var dke *core.DuplicateKeyError
			require.True(t, errors.As(err, &dke), "got %v", err)
			assert.Equal(t, tt.column, dke.Column)
		})
	}
}

func TestResolveMissingJoinColumn(t *testing.T) {
	ds := coretest.Dataset(t)
	noID, err := core.Project(ds.Receivers, "Name", "City")
	require.NoError(t, err)

	_, _, err = core.Resolve(ds.Providers, noID, ds.Claims, ds.Listings)
	var mce *core.MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "Receiver_ID", mce.Column)
}
