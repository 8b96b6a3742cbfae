package model

// OptionRegistry names one of the extensible dropdown lists
type OptionRegistry string

// Option registries
const (
	OptionRegistryAPI   OptionRegistry = "api"
	OptionRegistryIssue OptionRegistry = "issue"
)

// Valid reports whether the registry is a known one.
func (r OptionRegistry) Valid() bool {
	return r == OptionRegistryAPI || r == OptionRegistryIssue
}

// ParseOptionRegistry converts a string into an OptionRegistry.
func ParseOptionRegistry(v string) (OptionRegistry, error) {
	r := OptionRegistry(v)
	if !r.Valid() {
		return "", ValidationErrorFmt("unknown option registry: %s", v)
	}
	return r, nil
}

// Default registry contents, inserted on every start without touching values
// added later.
var (
	DefaultAPIOptions = []string{
		"Catalog API",
		"Feeds API",
		"Listings Items API",
		"Orders API",
	}
	DefaultIssueOptions = []string{
		"Account Health",
		"Catalog Mapping",
		"Image Upload",
		"Inventory Sync",
		"Listing Creation",
		"Order Management",
		"Pricing",
	}
)

// Option is one allowed value of an option registry.
type Option struct {
	Registry OptionRegistry `gorm:"primaryKey;size:16" json:"registry"`
	Value    string         `gorm:"primaryKey;size:191" json:"value"`
}

// OptionStore abstracts the option registries.
type OptionStore interface {
	// List returns all values of a registry, sorted case-insensitively
	List(registry OptionRegistry) ([]string, error)
	// Add inserts a value if it is not present yet
	Add(registry OptionRegistry, value string) error
	// UnknownValues returns the values that are not part of the registry
	UnknownValues(registry OptionRegistry, values []string) ([]string, error)
}
