package domain

import "errors"

var (
	// ErrNotInitialized signals an index queried before its backing data is loaded.
	ErrNotInitialized = errors.New("index not initialized")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStorage signals a persistent-store read/write failure.
	ErrStorage = errors.New("storage failure")
	// ErrExternalService signals a language-model or embedding-service failure.
	ErrExternalService = errors.New("external service failure")
	// ErrMalformedResponse signals non-JSON or schema-violating external output.
	ErrMalformedResponse = errors.New("malformed external response")
	// ErrVectorDimMismatch signals an embedding dimension mismatch.
	ErrVectorDimMismatch = errors.New("embedding dimension mismatch")
	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRetrievalFailed signals that every retrieval path failed outright.
	ErrRetrievalFailed = errors.New("all retrieval paths failed")
)
