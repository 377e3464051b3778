package models

import (
	"fmt"
	"strings"
)

// Category is the advisory verdict attached to a file.
type Category int

// Categories ordered from least to most cautious about removal.
const (
	LikelySafe  Category = iota // Temporary or long-untouched file
	BeCareful                   // Worth a second look before removing
	DoNotDelete                 // Recently used or not enough signal
)

// AllCategories lists every category in reporting order.
var AllCategories = []Category{LikelySafe, BeCareful, DoNotDelete}

// String returns the machine name of the category.
func (c Category) String() string {
	switch c {
	case LikelySafe:
		return "LikelySafe"
	case BeCareful:
		return "BeCareful"
	case DoNotDelete:
		return "DoNotDelete"
	default:
		return "Unknown"
	}
}

// Description returns the label used in exported reports.
func (c Category) Description() string {
	switch c {
	case LikelySafe:
		return "Likely Safe to Delete"
	case BeCareful:
		return "Be Careful"
	case DoNotDelete:
		return "Do Not Delete"
	default:
		return "Unknown"
	}
}

// MarshalText renders the machine name so JSON and YAML output stay readable.
func (c Category) MarshalText() ([]byte, error) {
	if c < LikelySafe || c > DoNotDelete {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts anything ParseCategory accepts.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory accepts either the machine name or the report label,
// case-insensitively. A few short aliases are accepted for CLI use.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCategories {
		if normalized == strings.ToLower(c.String()) || normalized == strings.ToLower(c.Description()) {
			return c, nil
		}
	}

	switch normalized {
	case "safe":
		return LikelySafe, nil
	case "careful", "caution":
		return BeCareful, nil
	case "keep", "preserve":
		return DoNotDelete, nil
	}

	return 0, fmt.Errorf("unknown category %q", s)
}
