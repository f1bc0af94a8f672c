// Package errors provides the structured error type used across seqkit.
//
// Pipeline operators never define failures of their own beyond wrapping:
// a fault returned by a caller-supplied callback is wrapped in an
// *AppError naming the operator, and the original cause stays reachable
// through errors.Is and errors.As.
package errors
