package bundle

// AgentRole is the permission level of an operator account.
type AgentRole string

// Agent roles.
const (
	RoleAdmin    AgentRole = "Admin"
	RoleOperator AgentRole = "Operator"
)

// Agent is an operator or administrator account.
type Agent struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CPF       string    `json:"cpf" yaml:"cpf"`
	Email     string    `json:"email" yaml:"email"`
	Username  string    `json:"username" yaml:"username"`
	Password  string    `json:"password,omitempty" yaml:"password,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`
	Role      AgentRole `json:"role" yaml:"role"`
}

// IsAdmin reports whether the agent has administrator rights.
func (a Agent) IsAdmin() bool {
	return a.Role == RoleAdmin
}
