package idgen

import "github.com/google/uuid"

// sessionIDLength is the number of leading UUID characters used as a session
// token. Long enough to keep a handful of concurrent sessions apart, short
// enough to stay readable in generated directory names.
const sessionIDLength = 6

// NewFunc returns a new globally unique identifier as string. It is
// implemented as a thin wrapper so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// SessionID returns a short token suitable for namespacing one test
// session's generated artifacts.
func SessionID() string {
	id := NewFunc()
	if len(id) > sessionIDLength {
		id = id[:sessionIDLength]
	}
	return id
}
