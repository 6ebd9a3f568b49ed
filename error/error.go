package error

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedExpression matches every error reported for a license string that doesn't conform to
// the grammar it was parsed with.
var ErrMalformedExpression = errors.New("malformed license expression")

type ExprError struct {
	Cause  error
	Detail string

	// Format is the name of the format the source was parsed as.
	Format string
	Source string

	// Col is a 1-based column, counted in code points, of the token that caused the error.
	// 0 means the position is unknown.
	Col int
}

func (e *ExprError) Error() string {
	var b strings.Builder
	if e.Format != "" {
		fmt.Fprintf(&b, "%v: ", e.Format)
	}
	if e.Col != 0 {
		fmt.Fprintf(&b, "%v: ", e.Col)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	if e.Source != "" && !strings.ContainsAny(e.Source, "\r\n") {
		fmt.Fprintf(&b, "\n    %v", e.Source)
		if e.Col > 0 {
			fmt.Fprintf(&b, "\n    %v^", strings.Repeat(" ", e.Col-1))
		}
	}

	return b.String()
}

func (e *ExprError) Unwrap() []error {
	return []error{ErrMalformedExpression, e.Cause}
}
