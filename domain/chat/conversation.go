// Package chat holds the conversation-centric model of the message store.
// A conversation exists at most once per unordered pair of users and is
// never updated once created. Messages are immutable.
package chat

import (
	"slices"
	"time"
)

type UserID string
type ConversationID string

type Conversation struct {
	ID           ConversationID
	ParticipantA UserID
	ParticipantB UserID
	CreatedAt    time.Time
}

// Has reports whether the user is one of the two participants.
func (c Conversation) Has(userID UserID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// Other returns the participant that is not userID.
func (c Conversation) Other(userID UserID) UserID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

func (c Conversation) PairKey() PairKey {
	return NewPairKey(c.ParticipantA, c.ParticipantB)
}

// PairKey is the order-independent identity of a pair of users.
// Low is always lexicographically lower or equal to High.
type PairKey struct {
	Low  UserID
	High UserID
}

func NewPairKey(a, b UserID) PairKey {
	ids := []UserID{a, b}
	slices.Sort(ids)
	return PairKey{Low: ids[0], High: ids[1]}
}

// String encodes the pair with a length prefix so that ids containing
// the separator cannot collide: ("a:b","c") and ("a","b:c") differ.
func (p PairKey) String() string {
	return KeySegment(string(p.Low)) + string(p.High)
}

// IsSelf reports a degenerate pair made of the same user twice.
func (p PairKey) IsSelf() bool {
	return p.Low == p.High
}
