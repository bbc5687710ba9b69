package domain

import "errors"

var (
	// ErrMalformedID is returned when a composite id cannot be parsed
	ErrMalformedID = errors.New("malformed composite id")

	// ErrUnknownNetwork is returned when a network has no configured endpoint
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrGraphQL is returned when the subgraph answers with GraphQL-level errors
	ErrGraphQL = errors.New("graphql error")

	// ErrStoreUnavailable is returned when the local record store has no backing database
	ErrStoreUnavailable = errors.New("record store unavailable")
)
