package order

// Key is a result sort key with direction.
type Key string

// Sort key constants.
const (
	PriceAsc   Key = "price_asc"
	PriceDesc  Key = "price_desc"
	RatingAsc  Key = "rating_asc"
	RatingDesc Key = "rating_desc"
	// NameAsc orders by raw byte-wise name, no case folding.
	NameAsc  Key = "name_asc"
	NameDesc Key = "name_desc"
)

// Keys lists every supported sort key.
func Keys() []Key {
	return []Key{PriceAsc, PriceDesc, RatingAsc, RatingDesc, NameAsc, NameDesc}
}

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	switch k {
	case PriceAsc, PriceDesc, RatingAsc, RatingDesc, NameAsc, NameDesc:
		return true
	}
	return false
}

// Descending reports whether the key sorts high-to-low.
func (k Key) Descending() bool {
	return k == PriceDesc || k == RatingDesc || k == NameDesc
}
