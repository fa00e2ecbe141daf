package listings

import "net/url"

// Sentinel values meaning "no constraint". Filters at their sentinel are
// omitted from the serialized query string, so a reset visibly clears the
// address bar.
const (
	SentinelType = "All Types"
	SentinelBeds = "Any"
	SentinelSort = "Most Recent"
)

// PageSize is the fixed page size of the listings grid.
const PageSize = 10

// Sort labels offered by the listings page.
const (
	SortPriceAsc  = "Price Low to High"
	SortPriceDesc = "Price High to Low"
	SortPopular   = "Most Popular"
)

// FilterState holds the listings page's committed filters. The URL query
// string is always derivable from it: Values then ParseValues round-trips
// to the same effective filter.
type FilterState struct {
	Search   string
	Type     string
	MinPrice string
	MaxPrice string
	Beds     string
	Country  string
	City     string
	SortBy   string
}

// DefaultFilters returns the unconstrained state.
func DefaultFilters() FilterState {
	return FilterState{
		Type:   SentinelType,
		Beds:   SentinelBeds,
		SortBy: SentinelSort,
	}
}

// Values serializes the state for both the address bar and the backend
// query. Keys at their sentinel value are absent, not empty.
func (f FilterState) Values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Type != "" && f.Type != SentinelType {
		v.Set("type", f.Type)
	}
	if f.MinPrice != "" {
		v.Set("minPrice", f.MinPrice)
	}
	if f.MaxPrice != "" {
		v.Set("maxPrice", f.MaxPrice)
	}
	if f.Beds != "" && f.Beds != SentinelBeds {
		v.Set("beds", f.Beds)
	}
	if f.Country != "" {
		v.Set("country", f.Country)
	}
	if f.City != "" {
		v.Set("city", f.City)
	}
	if sortKey, order, ok := sortParams(f.SortBy); ok {
		v.Set("sort", sortKey)
		v.Set("order", order)
	}
	return v
}

// ParseValues hydrates a FilterState from a query string. Missing keys
// come back at their sentinel, so parse(serialize(f)) == f for any state
// produced by the UI.
func ParseValues(v url.Values) FilterState {
	f := DefaultFilters()
	f.Search = v.Get("search")
	if t := v.Get("type"); t != "" {
		f.Type = t
	}
	f.MinPrice = v.Get("minPrice")
	f.MaxPrice = v.Get("maxPrice")
	if beds := v.Get("beds"); beds != "" {
		f.Beds = beds
	}
	f.Country = v.Get("country")
	f.City = v.Get("city")
	if label, ok := sortLabel(v.Get("sort"), v.Get("order")); ok {
		f.SortBy = label
	}
	return f
}

// sortParams maps a sort label to backend sort/order parameters.
// "Most Recent" maps to none; the server default is newest first.
func sortParams(label string) (sortKey, order string, ok bool) {
	switch label {
	case SortPriceAsc:
		return "price", "asc", true
	case SortPriceDesc:
		return "price", "desc", true
	case SortPopular:
		return "views", "desc", true
	default:
		return "", "", false
	}
}

func sortLabel(sortKey, order string) (string, bool) {
	switch {
	case sortKey == "price" && order == "asc":
		return SortPriceAsc, true
	case sortKey == "price" && order == "desc":
		return SortPriceDesc, true
	case sortKey == "views" && order == "desc":
		return SortPopular, true
	default:
		return "", false
	}
}
