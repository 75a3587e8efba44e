package bundle

// Relationship is a resident's role within the household.
type Relationship string

// Household relationship roles.
const (
	RelationshipHead        Relationship = "Head"
	RelationshipSpouse      Relationship = "Spouse"
	RelationshipChild       Relationship = "Child"
	RelationshipParent      Relationship = "Parent"
	RelationshipGrandparent Relationship = "Grandparent"
	RelationshipGrandchild  Relationship = "Grandchild"
	RelationshipSibling     Relationship = "Sibling"
	RelationshipUncleAunt   Relationship = "Uncle/Aunt"
	RelationshipNephewNiece Relationship = "Nephew/Niece"
	RelationshipStepchild   Relationship = "Stepchild"
	RelationshipOther       Relationship = "Other"
)

// Relationships lists every household role in display order.
var Relationships = []Relationship{
	RelationshipHead, RelationshipSpouse, RelationshipChild, RelationshipParent,
	RelationshipGrandparent, RelationshipGrandchild, RelationshipSibling,
	RelationshipUncleAunt, RelationshipNephewNiece, RelationshipStepchild,
	RelationshipOther,
}

// IsValid reports whether r is a known household role.
func (r Relationship) IsValid() bool {
	for _, known := range Relationships {
		if r == known {
			return true
		}
	}
	return false
}

// CivilStatus is a resident's marital status.
type CivilStatus string

// Civil statuses.
const (
	CivilStatusSingle      CivilStatus = "Single"
	CivilStatusMarried     CivilStatus = "Married"
	CivilStatusDivorced    CivilStatus = "Divorced"
	CivilStatusWidowed     CivilStatus = "Widowed"
	CivilStatusStableUnion CivilStatus = "Stable Union"
)

// Education is the schooling record embedded in a resident.
type Education struct {
	IsStudying        bool   `json:"isStudying" yaml:"isStudying"`
	SchoolName        string `json:"schoolName,omitempty" yaml:"schoolName,omitempty"`
	Grade             string `json:"grade,omitempty" yaml:"grade,omitempty"`
	ReasonNotStudying string `json:"reasonNotStudying,omitempty" yaml:"reasonNotStudying,omitempty"`
}

// Resident is a natural person tracked by the registry. CPF is the
// national ID and the identity key used when merging bundles.
type Resident struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	BirthDate    string       `json:"birthDate" yaml:"birthDate"`
	Relationship Relationship `json:"relationship" yaml:"relationship"`
	Gender       string       `json:"gender" yaml:"gender"`
	CPF          string       `json:"cpf" yaml:"cpf"`
	RG           string       `json:"rg" yaml:"rg"`
	CivilStatus  CivilStatus  `json:"civilStatus,omitempty" yaml:"civilStatus,omitempty"`

	Email               string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone               string `json:"phone,omitempty" yaml:"phone,omitempty"`
	GeneralObservations string `json:"generalObservations,omitempty" yaml:"generalObservations,omitempty"`

	Address      string `json:"address,omitempty" yaml:"address,omitempty"`
	Street       string `json:"street,omitempty" yaml:"street,omitempty"`
	Number       string `json:"number,omitempty" yaml:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty"`
	City         string `json:"city,omitempty" yaml:"city,omitempty"`
	State        string `json:"state,omitempty" yaml:"state,omitempty"`
	Block        string `json:"block,omitempty" yaml:"block,omitempty"`
	Lot          string `json:"lot,omitempty" yaml:"lot,omitempty"`

	Education *Education `json:"education,omitempty" yaml:"education,omitempty"`
}

// Clone returns a deep copy of r.
func (r Resident) Clone() Resident {
	if r.Education != nil {
		edu := *r.Education
		r.Education = &edu
	}
	return r
}
