package bundle

// SystemMode is the role a device plays in synchronization.
type SystemMode string

// System modes.
const (
	ModeServer  SystemMode = "SERVER_CENTRAL"
	ModeStation SystemMode = "COLLECTION_STATION"
)

// IsServer reports whether the device consolidates station data.
func (m SystemMode) IsServer() bool {
	return m == ModeServer
}

// IsValid reports whether m is a known mode.
func (m SystemMode) IsValid() bool {
	return m == ModeServer || m == ModeStation
}

// Institution is the profile of the organization operating the registry.
type Institution struct {
	Name             string     `json:"name" yaml:"name"`
	LogoURL          string     `json:"logoUrl" yaml:"logoUrl"`
	CNPJ             string     `json:"cnpj" yaml:"cnpj"`
	City             string     `json:"city" yaml:"city"`
	SystemMode       SystemMode `json:"systemMode" yaml:"systemMode"`
	DeveloperName    string     `json:"developerName,omitempty" yaml:"developerName,omitempty"`
	DeveloperContact string     `json:"developerContact,omitempty" yaml:"developerContact,omitempty"`
	DeveloperBio     string     `json:"developerBio,omitempty" yaml:"developerBio,omitempty"`
}
