// Package coretest provides a small, fully known dataset for tests.
//
// The fixture is hand-sized so report results can be checked by eye:
// listing 6 belongs to an unknown provider and has no quantity, claim 6
// points at an unknown listing and claim 7 at an unknown receiver.
package coretest

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/FoodShare/internal/core"
	_ "github.com/JonMunkholm/FoodShare/internal/core/tables" // Register all tables
)

// ProvidersCSV has four providers in three cities.
const ProvidersCSV = `Provider_ID,Name,Type,Address,City,Contact
1,Green Bowl,Restaurant,12 Park St,Mumbai,+91-9000000001
2,Hill Market,Grocery Store,4 Hill Rd,Pune,+91-9000000002
3,Sunrise Bakery,Restaurant,9 Lake Ave,Mumbai,+91-9000000003
4,Lotus Kitchen,Catering Service,77 Ring Rd,Delhi,+91-9000000004
`

// ReceiversCSV has three receivers.
const ReceiversCSV = `Receiver_ID,Name,Type,City,Contact
1,Asha Shelter,Shelter,Mumbai,+91-8000000001
2,Food Bank North,NGO,Delhi,+91-8000000002
3,Ravi Kumar,Individual,Mumbai,+91-8000000003
`

// ListingsCSV has six listings; the last has an unknown provider and an
// empty quantity.
const ListingsCSV = `Food_ID,Food_Name,Quantity,Expiry_Date,Provider_ID,Provider_Type,Location,Food_Type,Meal_Type
1,Rice,10,2025-03-17,1,Restaurant,Mumbai,Vegetarian,Lunch
2,Bread,20,2025-03-18,3,Restaurant,Mumbai,Vegan,Breakfast
3,Chicken Curry,15,2025-03-16,4,Catering Service,Delhi,Non-Vegetarian,Dinner
4,Apples,30,2025-03-20,2,Grocery Store,Pune,Vegan,Snacks
5,Dal,5,2025-03-17,1,Restaurant,Mumbai,Vegetarian,Dinner
6,Soup,,2025-03-19,9,Restaurant,Mumbai,Vegetarian,Dinner
`

// ClaimsCSV has seven claims; the last two do not resolve.
const ClaimsCSV = `Claim_ID,Food_ID,Receiver_ID,Status,Timestamp
1,1,1,Completed,2025-03-15 10:00
2,2,1,Pending,2025-03-15 11:00
3,3,2,Completed,2025-03-15 12:00
4,4,3,Cancelled,2025-03-15 13:00
5,1,3,Completed,2025-03-15 14:00
6,99,2,Pending,2025-03-15 15:00
7,5,7,Completed,2025-03-15 16:00
`

// Files maps each dataset name to its CSV text.
func Files() map[string]string {
	return map[string]string{
		core.TableProviders: ProvidersCSV,
		core.TableReceivers: ReceiversCSV,
		core.TableClaims:    ClaimsCSV,
		core.TableListings:  ListingsCSV,
	}
}

// Source returns the fixture as an in-memory source. overrides replaces
// the CSV text of individual datasets.
func Source(t testing.TB, overrides map[string]string) core.MapSource {
	t.Helper()

	files := Files()
	for name, text := range overrides {
		files[name] = text
	}

	src := make(core.MapSource, len(files))
	for name, text := range files {
		records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
		if err != nil {
			t.Fatalf("parse fixture %s: %v", name, err)
		}
		raw := &core.RawTable{Source: name + ".csv"}
		if len(records) > 0 {
			raw.Header = records[0]
			raw.Rows = records[1:]
		}
		src[name] = raw
	}
	return src
}

// Dataset loads the fixture.
func Dataset(t testing.TB) *core.Dataset {
	t.Helper()

	ds, err := core.Load(context.Background(), Source(t, nil))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return ds
}

// Inputs loads the fixture and resolves both views.
func Inputs(t testing.TB) core.Inputs {
	t.Helper()

	ds := Dataset(t)
	lwp, detail, err := core.Resolve(ds.Providers, ds.Receivers, ds.Claims, ds.Listings)
	if err != nil {
		t.Fatalf("resolve fixture: %v", err)
	}
	return core.Inputs{
		Providers:            ds.Providers,
		Receivers:            ds.Receivers,
		Claims:               ds.Claims,
		Listings:             ds.Listings,
		ListingsWithProvider: lwp,
		ClaimsDetail:         detail,
	}
}

// WriteFiles writes the fixture CSVs into dir and returns their paths in
// providers, receivers, claims, listings order.
func WriteFiles(t testing.TB, dir string) (providers, receivers, claims, listings string) {
	t.Helper()

	write := func(name, text string) string {
		path := filepath.Join(dir, name+".csv")
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", path, err)
		}
		return path
	}

	files := Files()
	return write(core.TableProviders, files[core.TableProviders]),
		write(core.TableReceivers, files[core.TableReceivers]),
		write(core.TableClaims, files[core.TableClaims]),
		write(core.TableListings, files[core.TableListings])
}
