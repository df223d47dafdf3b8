package valueobject

import "fmt"

// Classification tells whether an account is held by an individual or an entity.
// The zero value is Personal.
type Classification int

const (
	ClassificationPersonal Classification = iota
	ClassificationBusiness
)

// ParseClassification converts "Personal" or "Business" to a Classification.
func ParseClassification(s string) (Classification, error) {
	switch s {
	case "Personal":
		return ClassificationPersonal, nil
	case "Business":
		return ClassificationBusiness, nil
	default:
		return ClassificationPersonal, fmt.Errorf("%s is not classification variant", s)
	}
}

// String returns "Personal" or "Business".
func (c Classification) String() string {
	if c == ClassificationBusiness {
		return "Business"
	}
	return "Personal"
}

// MarshalText implements encoding.TextMarshaler.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Classification) UnmarshalText(text []byte) error {
	parsed, err := ParseClassification(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
