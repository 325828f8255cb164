package types

import "fmt"

// Category is the fixed taxonomy of regulatory domains
type Category string

const (
	CategorySafety       Category = "safety"
	CategoryEnvironment  Category = "environment"
	CategoryLabor        Category = "labor"
	CategoryQuality      Category = "quality"
	CategoryEnergy       Category = "energy"
	CategoryPublicHealth Category = "public_health"
)

// AllCategories returns the full taxonomy in its canonical order
func AllCategories() []Category {
	return []Category{
		CategorySafety,
		CategoryEnvironment,
		CategoryLabor,
		CategoryQuality,
		CategoryEnergy,
		CategoryPublicHealth,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategorySafety,
		CategoryEnvironment,
		CategoryLabor,
		CategoryQuality,
		CategoryEnergy,
		CategoryPublicHealth:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
