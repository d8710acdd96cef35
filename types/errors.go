package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller mistakes such as a non-positive top_k.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFolderNotFound is returned when the ingest folder does not exist.
	ErrFolderNotFound = errors.New("folder not found")
)

// AuthenticationError reports a rejected mail login. It is fatal for the run
// but leaves the ledger untouched.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("login failed, check your email and app password: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// IndexProvisionError reports a provider-side failure while creating or
// checking the index.
type IndexProvisionError struct {
	Index string
	Err   error
}

func (e *IndexProvisionError) Error() string {
	return fmt.Sprintf("failed to provision index %s: %v", e.Index, e.Err)
}

func (e *IndexProvisionError) Unwrap() error { return e.Err }

// UpsertError reports a rejected upsert batch. Applied carries how many
// records the provider accepted before failing.
type UpsertError struct {
	Applied int
	Err     error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("upsert failed after %d records: %v", e.Applied, e.Err)
}

func (e *UpsertError) Unwrap() error { return e.Err }

// SearchError reports a provider or network failure during search. An empty
// result set is not a SearchError.
type SearchError struct {
	Err error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed: %v", e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// GenerationError reports a failed or empty response from the generation
// collaborator.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
