package metadata

import "errors"

var (
	// ErrNotConfigured indicates the provider has no usable API key.
	ErrNotConfigured = errors.New("metadata provider API key not configured")

	// ErrUnsupportedSource indicates an unknown data source was requested.
	ErrUnsupportedSource = errors.New("unsupported data source")
)
