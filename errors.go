package tracker

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	ConfigurationError Kind = iota + 1
	NetworkError
	ParseError
	LookupError
	FormatError
	OutputError
)

func (k Kind) String() string {
	switch k {
	case ConfigurationError:
		return "ConfigurationError"
	case NetworkError:
		return "NetworkError"
	case ParseError:
		return "ParseError"
	case LookupError:
		return "LookupError"
	case FormatError:
		return "FormatError"
	case OutputError:
		return "OutputError"
	}

	return "UnknownError"
}

type (
	// Error is a failure of one stage of the run. Message describes the stage,
	// Err is the underlying cause and may be nil.
	Error struct {
		Kind    Kind
		Message string
		Err     error
		origin  error
	}

	stackTracer interface {
		StackTrace() errors.StackTrace
	}
)

func NewError(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
		origin:  errors.New(message),
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Backtrace returns the stack recorded when the error was created.
func (e *Error) Backtrace() string {
	st, ok := e.origin.(stackTracer)

	if !ok {
		return ""
	}

	return fmt.Sprintf("%+v", st.StackTrace())
}

func IsKind(err error, kind Kind) bool {
	var e *Error

	return errors.As(err, &e) && e.Kind == kind
}

// Causes flattens err into its chain of messages, outermost first.
// Errors that carry their own message are listed one per level; the first
// foreign error ends the chain with its full text.
func Causes(err error) []string {
	messages := make([]string, 0, 2)

	for err != nil {
		e, ok := err.(*Error)

		if !ok {
			messages = append(messages, err.Error())
			break
		}

		messages = append(messages, e.Message)
		err = e.Err
	}

	return messages
}

// Backtrace returns the stack of the outermost *Error in err's chain.
func Backtrace(err error) string {
	var e *Error

	if !errors.As(err, &e) {
		return ""
	}

	return e.Backtrace()
}
