// Package errors provides the structured error type used across seqkit.
// Pipeline definition problems, type mismatches between stages and
// configuration failures are reported as *AppError values carrying a
// machine-readable code.
package errors
