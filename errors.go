package tst

import "errors"

// Sentinel error kinds surfaced only at Open time. Apart from Close, Clear
// and Optimize, which report failures of the underlying file operations,
// every other operation in this package is total over its inputs and
// never returns an error.
var (
	// ErrCannotOpen means the underlying FileStore refused to open
	// (permissions, missing directory, and the like).
	ErrCannotOpen = errors.New("tst: cannot open database")

	// ErrNotADatabase means the file exists but its header doesn't
	// match the expected "TSTDB\n".
	ErrNotADatabase = errors.New("tst: not a database")

	// ErrCorrupt means the log is damaged beyond the recoverable
	// trailing-truncation case; Open's wrapped error names the line
	// number and a snippet of the last successfully read key.
	ErrCorrupt = errors.New("tst: corrupt database")

	// ErrLocked means the advisory lock for this path is already held.
	ErrLocked = errors.New("tst: database is locked")
)
