package prodsearch

// QueryBuilder is a fluent builder for typed catalog queries.
type QueryBuilder[T any] struct {
	tc *TypedCatalog[T]
	c  Criteria
}

// Category restricts results to one category.
func (b *QueryBuilder[T]) Category(c Category) *QueryBuilder[T] {
	b.c.Category = c
	return b
}

// PriceBetween sets inclusive price bounds.
func (b *QueryBuilder[T]) PriceBetween(lo, hi float64) *QueryBuilder[T] {
	b.c.MinPrice, b.c.MaxPrice = &lo, &hi
	return b
}

// MaxPrice sets the inclusive upper price bound.
func (b *QueryBuilder[T]) MaxPrice(v float64) *QueryBuilder[T] {
	b.c.MaxPrice = &v
	return b
}

// MinRating sets the inclusive lower rating bound.
func (b *QueryBuilder[T]) MinRating(v float64) *QueryBuilder[T] {
	b.c.MinRating = &v
	return b
}

// InStock excludes out-of-stock items.
func (b *QueryBuilder[T]) InStock() *QueryBuilder[T] {
	b.c.InStockOnly = true
	return b
}

// Keywords adds name substrings; all must match.
func (b *QueryBuilder[T]) Keywords(kw ...string) *QueryBuilder[T] {
	b.c.Keywords = append(b.c.Keywords, kw...)
	return b
}

// SortBy sets the result order.
func (b *QueryBuilder[T]) SortBy(k SortKey) *QueryBuilder[T] {
	b.c.SortBy = k
	return b
}

// Limit sets the maximum number of results.
func (b *QueryBuilder[T]) Limit(n int) *QueryBuilder[T] {
	b.c.Limit = n
	return b
}

// Extreme switches to an extreme query; ranges, sort and limit are then ignored.
func (b *QueryBuilder[T]) Extreme(k ExtremeKind) *QueryBuilder[T] {
	b.c.FindExtreme = k
	return b
}

// Criteria returns the criteria built so far.
func (b *QueryBuilder[T]) Criteria() Criteria {
	return b.c
}

// Do evaluates the query.
func (b *QueryBuilder[T]) Do() ([]T, error) {
	return b.tc.Filter(b.c)
}
