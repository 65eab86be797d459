package extreme

// Kind selects which extreme value an extreme query resolves.
type Kind string

// Extreme kind constants.
const (
	LowestRating  Kind = "lowest_rating"
	HighestRating Kind = "highest_rating"
	Cheapest      Kind = "cheapest"
	MostExpensive Kind = "most_expensive"
)

// Kinds lists every supported extreme kind.
func Kinds() []Kind {
	return []Kind{LowestRating, HighestRating, Cheapest, MostExpensive}
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case LowestRating, HighestRating, Cheapest, MostExpensive:
		return true
	}
	return false
}
