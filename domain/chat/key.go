package chat

import "strconv"

// KeySegment encodes an id as "<len>:<id>:" so that a storage key built
// from several ids stays unambiguous whatever the ids contain.
func KeySegment(id string) string {
	return strconv.Itoa(len(id)) + ":" + id + ":"
}
