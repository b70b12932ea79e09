package app

import (
	"strings"

	"github.com/google/uuid"
)

// newID returns a time-ordered id with the collection prefix, e.g. "G0192…".
// UUIDv7 sorts by creation time like the millisecond ids the UI expects.
func newID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + strings.ReplaceAll(id.String(), "-", "")
}

// freshID draws ids until taken reports the id as unused.
func freshID(prefix string, taken func(string) bool) string {
	for {
		id := newID(prefix)
		if !taken(id) {
			return id
		}
	}
}
