package dice

import "github.com/google/uuid"

// NewID returns a random object id of the form "<prefix>-<uuid>", or a bare
// uuid when prefix is empty. Objects never generate ids themselves; this is
// for callers that spawn objects at runtime.
func NewID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
