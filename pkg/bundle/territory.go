package bundle

// Territory is a physical address or lot record independent of residents.
type Territory struct {
	ID           string `json:"id" yaml:"id"`
	Neighborhood string `json:"neighborhood" yaml:"neighborhood"`
	Street       string `json:"street" yaml:"street"`
	Number       string `json:"number" yaml:"number"`
	Block        string `json:"block" yaml:"block"`
	Lot          string `json:"lot" yaml:"lot"`
	Notes        string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// AddressKey identifies the physical address of a territory for merging.
// Neighborhood and city are not part of it, so equal street and number
// pairs in different neighborhoods collide.
type AddressKey struct {
	Street string
	Number string
}

// Key returns the merge identity of t.
func (t Territory) Key() AddressKey {
	return AddressKey{Street: t.Street, Number: t.Number}
}
