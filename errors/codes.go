package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline errors
const (
	// ErrCodeCallback indicates a caller-supplied function failed.
	ErrCodeCallback ErrorCode = "CALLBACK_FAILED"
	// ErrCodeLeafType indicates a flattened leaf had an unexpected type.
	ErrCodeLeafType ErrorCode = "LEAF_TYPE"
	// ErrCodeCancelled indicates the context ended while pulling.
	ErrCodeCancelled ErrorCode = "CANCELLED"
	// ErrCodeIO indicates reading an underlying source failed.
	ErrCodeIO ErrorCode = "IO"
)

// Input errors
const (
	// ErrCodeInvalidArgument indicates an argument is out of range.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

var exitCodes = map[ErrorCode]int{
	ErrCodeCallback:        1,
	ErrCodeLeafType:        1,
	ErrCodeIO:              1,
	ErrCodeCancelled:       130,
	ErrCodeInvalidArgument: 2,
	ErrCodeInvalidConfig:   2,
}

// ExitCode returns the process exit status a command line tool should use
// for code. Unknown codes map to 1.
func ExitCode(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return 1
}
