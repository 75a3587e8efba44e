package errors_test

import (
	"fmt"

	"github.com/agentstation/cadastro/pkg/errors"
)

// Example demonstrates how a caller recognizes a save refused by a
// read-only store through the wrapping resource error.
func Example() {
	err := errors.WrapResource("save", "state", "", errors.ErrReadOnly)

	if errors.Is(err, errors.ErrReadOnly) {
		fmt.Println("state kept in memory")
	}

	// Output: state kept in memory
}

// Example_formatError demonstrates how a sync caller distinguishes a
// rejected bundle from an unreadable one.
func Example_formatError() {
	var err error = errors.NewFormatError("residents", "is missing or not an array")

	switch {
	case errors.IsFormatError(err):
		fmt.Println("bundle rejected:", err)
	case errors.IsParseError(err):
		fmt.Println("not a registry export")
	}

	// Output: bundle rejected: incompatible data format: residents is missing or not an array
}
