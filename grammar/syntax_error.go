package grammar

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken = newSyntaxError("invalid token")

	// syntax errors
	synErrEmptyExpression = newSyntaxError("a license string must include at least one identifier")
	synErrNoOperand       = newSyntaxError("an identifier or a parenthesized expression is missing")
	synErrEmptyGroup      = newSyntaxError("a parenthesized group must include an expression")
	synErrUnclosedGroup   = newSyntaxError("a parenthesized group must be closed by )")
	synErrTrailingInput   = newSyntaxError("an operator or the end of the license string is expected")
)
