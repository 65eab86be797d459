package product

// Category is the fixed product category enumeration.
type Category string

// Category constants.
const (
	Electronics Category = "Electronics"
	Fitness     Category = "Fitness"
	Kitchen     Category = "Kitchen"
	Books       Category = "Books"
	Clothing    Category = "Clothing"
)

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{Electronics, Fitness, Kitchen, Books, Clothing}
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case Electronics, Fitness, Kitchen, Books, Clothing:
		return true
	}
	return false
}
