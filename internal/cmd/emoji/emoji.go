// Package emoji provides the symbols the CLI prints next to statuses,
// alerts and hints, so every command speaks the same visual language.
package emoji

// Status symbols.
const (
	// Success marks a completed flow: a merged package, a written backup.
	Success = "✓"

	// Error marks a rejected package or a failed write.
	Error = "✗"

	// Warning marks data that needs attention, such as a resident with
	// no national ID or a backup that is due.
	Warning = "!"

	// Info marks neutral information.
	Info = "i"

	// Optional marks an empty or not-informed field.
	Optional = "-"
)

// Guidance symbols.
const (
	// Hint prefixes a suggested next step.
	Hint = "💡"

	// Student marks a resident currently enrolled in school.
	Student = "🎓"

	// Head marks the head of a household.
	Head = "🏠"
)
