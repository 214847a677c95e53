package core

import "fmt"

// Resolve builds the two derived views from the base tables.
//
// listings_with_provider is every listing with the owning provider's name
// added as Provider_Name (null when no provider matches). claims_detail is
// every claim that matches both a listing and a receiver, carrying the
// listing, provider name and receiver columns. Claims without a match on
// either side are dropped.
//
// A repeated Provider_ID, Food_ID or Receiver_ID on the lookup side is a
// *DuplicateKeyError.
func Resolve(providers, receivers, claims, listings *Table) (lwp, detail *Table, err error) {
	lwp, err = ListingsWithProvider(listings, providers)
	if err != nil {
		return nil, nil, err
	}

	detail, err = ClaimsDetail(claims, lwp, receivers)
	if err != nil {
		return nil, nil, err
	}

	return lwp, detail, nil
}

// ListingsWithProvider left-joins listings to providers on Provider_ID.
// The result has exactly listings.Len() rows.
func ListingsWithProvider(listings, providers *Table) (*Table, error) {
	names, err := Project(providers, "Provider_ID", "Name")
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ViewListingsWithProvider, err)
	}
	names, err = Rename(names, map[string]string{"Name": "Provider_Name"})
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ViewListingsWithProvider, err)
	}
	names = Named(names, providers.Name)

	joined, err := LeftJoin(listings, names, "Provider_ID")
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ViewListingsWithProvider, err)
	}
	return Named(joined, ViewListingsWithProvider), nil
}

// ClaimsDetail inner-joins claims to listings on Food_ID and then to
// receivers on Receiver_ID. listings may be the base table or
// listings_with_provider.
func ClaimsDetail(claims, listings, receivers *Table) (*Table, error) {
	withListing, err := InnerJoin(claims, Named(listings, TableListings), "Food_ID")
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ViewClaimsDetail, err)
	}

	joined, err := InnerJoin(withListing, receivers, "Receiver_ID")
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ViewClaimsDetail, err)
	}
	return Named(joined, ViewClaimsDetail), nil
}
