package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in a boundary operation the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // artifact loading and instantiation
	PhaseCall     Phase = "call"     // invoking an engine export
	PhaseDecode   Phase = "decode"   // reading results out of scratch memory
	PhaseValidate Phase = "validate" // host-side input validation
)

// Kind categorizes the error
type Kind string

const (
	KindStatus          Kind = "status"            // non-zero engine status code
	KindUseAfterRelease Kind = "use_after_release" // handle accessed after Close
	KindConstViolation  Kind = "const_violation"   // mutator on a const handle
	KindMissingExport   Kind = "missing_export"    // artifact lacks a declared symbol
	KindInvalidInput    Kind = "invalid_input"     // bad host-side argument
	KindOutOfBounds     Kind = "out_of_bounds"     // memory or index range violation
	KindAllocation      Kind = "allocation"        // scratch or guest allocation failure
	KindNotLoaded       Kind = "not_loaded"        // engine not set up yet
)

// StatusCode is an engine status code, as defined by the chemfiles C API.
// Zero means success.
type StatusCode int32

const (
	StatusSuccess       StatusCode = 0
	StatusMemoryError   StatusCode = 1
	StatusFileError     StatusCode = 2
	StatusFormatError   StatusCode = 3
	StatusSelectionErr  StatusCode = 4
	StatusConfigError   StatusCode = 5
	StatusOutOfBounds   StatusCode = 6
	StatusPropertyError StatusCode = 7
	StatusGenericError  StatusCode = 254
	StatusCXXError      StatusCode = 255
)

func (s StatusCode) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusMemoryError:
		return "memory error"
	case StatusFileError:
		return "file error"
	case StatusFormatError:
		return "format error"
	case StatusSelectionErr:
		return "selection error"
	case StatusConfigError:
		return "configuration error"
	case StatusOutOfBounds:
		return "out of bounds"
	case StatusPropertyError:
		return "property error"
	case StatusGenericError:
		return "generic error"
	case StatusCXXError:
		return "internal C++ error"
	default:
		return fmt.Sprintf("unknown status %d", int32(s))
	}
}

// Error is the structured error type used throughout the binding
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Object string // facade type name, e.g. "Atom"
	Symbol string // boundary function name, e.g. "chfl_atom_mass"
	Status StatusCode
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Object != "" {
		b.WriteString(" on ")
		b.WriteString(e.Object)
	}
	if e.Symbol != "" {
		b.WriteString(" in ")
		b.WriteString(e.Symbol)
	}
	if e.Kind == KindStatus {
		b.WriteString(" (")
		b.WriteString(e.Status.String())
		b.WriteByte(')')
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error on phase and kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Object sets the facade type name
func (b *Builder) Object(name string) *Builder {
	b.err.Object = name
	return b
}

// Symbol sets the boundary function name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Status wraps a non-zero engine status code. The message is the engine's
// last-error string, fetched by the first failing call.
func Status(symbol string, code StatusCode, lastError string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindStatus,
		Symbol: symbol,
		Status: code,
		Detail: lastError,
	}
}

// IsStatus reports whether err is a boundary status error with the given code
func IsStatus(err error, code StatusCode) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindStatus && e.Status == code
}

// UseAfterRelease signals access to a handle that was already released
func UseAfterRelease(object string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUseAfterRelease,
		Object: object,
		Detail: "used after release",
	}
}

// ConstViolation signals a mutator call on a const handle
func ConstViolation(object string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindConstViolation,
		Object: object,
		Detail: fmt.Sprintf("this %s cannot be modified", object),
	}
}

// NullHandle signals a construction call that returned a zero handle
func NullHandle(object, symbol, lastError string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindAllocation,
		Object: object,
		Symbol: symbol,
		Detail: lastError,
	}
}

// MissingExport signals an artifact that lacks a declared boundary function
func MissingExport(symbol string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingExport,
		Symbol: symbol,
		Detail: "not exported by the artifact",
	}
}

// InvalidInput creates a host-side validation error
func InvalidInput(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: detail,
	}
}

// Allocation creates a scratch or guest allocation failure
func Allocation(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindAllocation,
		Detail: detail,
		Cause:  cause,
	}
}

// NotLoaded signals that the engine has not been set up
func NotLoaded() *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindNotLoaded,
		Detail: "chemfiles engine is not loaded, call Setup first",
	}
}

// Load creates an artifact loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
