package jobs

import "errors"

// ErrJobNotFound is returned when no job has the requested ID.
var ErrJobNotFound = errors.New("job not found")

// Per-file messages recorded in Result.Error.
const (
	msgNoMatch      = "No match found"
	msgFileNotFound = "File not found"
)
