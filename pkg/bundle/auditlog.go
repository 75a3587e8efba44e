package bundle

// Action is the kind of state change an audit log entry records.
type Action string

// Audit actions.
const (
	ActionCreate      Action = "CREATE"
	ActionEdit        Action = "EDIT"
	ActionDelete      Action = "DELETE"
	ActionLogin       Action = "LOGIN"
	ActionLogout      Action = "LOGOUT"
	ActionBackup      Action = "BACKUP"
	ActionGenerateKey Action = "GENERATE_KEY"
	ActionSync        Action = "SYNC"
)

// TargetType is the kind of record an audit log entry refers to.
type TargetType string

// Audit targets.
const (
	TargetResident  TargetType = "RESIDENT"
	TargetAgent     TargetType = "AGENT"
	TargetSystem    TargetType = "SYSTEM"
	TargetTerritory TargetType = "TERRITORY"
	TargetLicense   TargetType = "LICENSE"
)

// AuditLog is an immutable record of one state-changing action.
type AuditLog struct {
	ID         string     `json:"id" yaml:"id"`
	AgentID    string     `json:"agentId" yaml:"agentId"`
	AgentName  string     `json:"agentName" yaml:"agentName"`
	Action     Action     `json:"action" yaml:"action"`
	TargetType TargetType `json:"targetType" yaml:"targetType"`
	TargetName string     `json:"targetName" yaml:"targetName"`
	Timestamp  string     `json:"timestamp" yaml:"timestamp"`
}
