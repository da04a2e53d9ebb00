package store

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Key addresses an entity by id or by slug. Exactly one field is set.
// ID is a string so one type covers integer ids and data file UUIDs.
type Key struct {
	ID   string
	Slug string
}

// ParseKey classifies user input: all digits or a UUID is an id, anything
// else is a slug. Slugs are stored lower case, so the slug is lowered here.
func ParseKey(s string) Key {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Key{ID: s}
	}
	if _, err := uuid.Parse(s); err == nil {
		return Key{ID: s}
	}
	return Key{Slug: strings.ToLower(s)}
}

// IntID returns the key's id as an integer, or false if it is not one.
func (k Key) IntID() (int64, bool) {
	if k.ID == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(k.ID, 10, 64)
	return id, err == nil
}

func (k Key) String() string {
	if k.ID != "" {
		return k.ID
	}
	return k.Slug
}
