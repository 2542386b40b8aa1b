package models

import "fmt"

// FileAccessError indicates a single file could not be read or hashed.
// It is non-fatal: the file is reported as uncomparable and the run
// continues.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ScanError indicates a tree root could not be enumerated. Fatal.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("cannot scan tree %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ExtractionError indicates an input archive could not be resolved to
// a directory tree. Fatal for the run.
type ExtractionError struct {
	Input string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot resolve image %s: %v", e.Input, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ExternalToolError indicates the external diff tool is missing or an
// invocation of it failed. Missing tool is fatal before comparison
// begins; a failed invocation only suppresses that file's extra output.
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("external tool %s: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// ValidationError represents a configuration or argument validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
