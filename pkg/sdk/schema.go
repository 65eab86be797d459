package prodsearch

import (
	"fmt"
	"reflect"
)

const tagKey = "prodsearch"

// Struct tag roles.
const (
	roleName     = "name"
	roleCategory = "category"
	rolePrice    = "price"
	roleRating   = "rating"
	roleInStock  = "in_stock"
)

// schemaMeta holds parsed struct tag metadata, cached per TypedCatalog.
type schemaMeta struct {
	typ reflect.Type

	// Field index in the struct for each role; -1 if absent.
	nameIdx     int
	categoryIdx int
	priceIdx    int
	ratingIdx   int
	inStockIdx  int
}

// parseSchema reflects on T and extracts prodsearch struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("prodsearch: type parameter must be a struct")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("prodsearch: type %s is not a struct", t)
	}

	meta := &schemaMeta{
		typ: t, nameIdx: -1, categoryIdx: -1,
		priceIdx: -1, ratingIdx: -1, inStockIdx: -1,
	}

	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, i, f, tag); err != nil {
			return nil, err
		}
	}

	return validateSchema(meta, t)
}

// applyTag binds a single struct field to its role after checking its kind.
func applyTag(meta *schemaMeta, idx int, f reflect.StructField, role string) error {
	var (
		slot *int
		ok   bool
	)
	switch role {
	case roleName:
		slot, ok = &meta.nameIdx, f.Type.Kind() == reflect.String
	case roleCategory:
		slot, ok = &meta.categoryIdx, f.Type.Kind() == reflect.String
	case rolePrice:
		slot, ok = &meta.priceIdx, isNumeric(f.Type.Kind())
	case roleRating:
		slot, ok = &meta.ratingIdx, isNumeric(f.Type.Kind())
	case roleInStock:
		slot, ok = &meta.inStockIdx, f.Type.Kind() == reflect.Bool
	default:
		return fmt.Errorf("prodsearch: unknown role %q on field %s", role, f.Name)
	}
	if !ok {
		return fmt.Errorf("prodsearch: field %s has kind %s, unsupported for %s", f.Name, f.Type.Kind(), role)
	}
	if *slot != -1 {
		return fmt.Errorf("prodsearch: duplicate %s tag on field %s", role, f.Name)
	}
	*slot = idx
	return nil
}

// validateSchema requires every role but in_stock, which defaults to in stock.
func validateSchema(meta *schemaMeta, t reflect.Type) (*schemaMeta, error) {
	required := []struct {
		role string
		idx  int
	}{
		{roleName, meta.nameIdx},
		{roleCategory, meta.categoryIdx},
		{rolePrice, meta.priceIdx},
		{roleRating, meta.ratingIdx},
	}
	for _, r := range required {
		if r.idx == -1 {
			return nil, fmt.Errorf("prodsearch: no field with `prodsearch:%q` tag in %s", r.role, t)
		}
	}
	return meta, nil
}

// toProduct reads a typed struct into the public Product shape.
// It reports false for a nil pointer item.
func (m *schemaMeta) toProduct(item any) (Product, bool) {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Product{}, false
		}
		v = v.Elem()
	}

	p := Product{
		Name:     v.Field(m.nameIdx).String(),
		Category: Category(v.Field(m.categoryIdx).String()),
		Price:    toFloat64(v.Field(m.priceIdx)),
		Rating:   toFloat64(v.Field(m.ratingIdx)),
		InStock:  true,
	}
	if m.inStockIdx != -1 {
		p.InStock = v.Field(m.inStockIdx).Bool()
	}
	return p, true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func toFloat64(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return 0
	}
}
