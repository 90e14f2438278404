package serrors

import "fmt"

// Error is a coded error shared across service boundaries. Code is stable and
// machine-readable; Message is safe to show to callers; Hint is optional
// operator guidance.
type Error struct {
	Code    string
	Message string
	Hint    string
}

func NewError(code, message, hint string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches by code so wrapped instances compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy carrying a contextualized message but the same code.
func (e *Error) WithMessage(format string, args ...any) *Error {
	return &Error{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Hint:    e.Hint,
	}
}
