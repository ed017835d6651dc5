package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPairKey_Symmetric(t *testing.T) {
	req := require.New(t)
	ab := NewPairKey("alice", "bob")
	ba := NewPairKey("bob", "alice")

	req.Equal(ab, ba)
	req.Equal(ab.String(), ba.String())
	req.Equal(UserID("alice"), ab.Low)
	req.Equal(UserID("bob"), ab.High)
	req.False(ab.IsSelf())
}

func TestPairKey_String_NoSeparatorCollision(t *testing.T) {
	req := require.New(t)
	first := NewPairKey("a:b", "c")
	second := NewPairKey("a", "b:c")

	req.NotEqual(first.String(), second.String())
}

func TestPairKey_IsSelf(t *testing.T) {
	req := require.New(t)
	req.True(NewPairKey("u1", "u1").IsSelf())
}

func TestConversation_Participants(t *testing.T) {
	req := require.New(t)
	c := Conversation{ID: "c1", ParticipantA: "u2", ParticipantB: "u1"}

	req.True(c.Has("u1"))
	req.True(c.Has("u2"))
	req.False(c.Has("u3"))
	req.Equal(UserID("u2"), c.Other("u1"))
	req.Equal(UserID("u1"), c.Other("u2"))
	req.Equal(NewPairKey("u1", "u2"), c.PairKey())
}

func TestKeySegment(t *testing.T) {
	req := require.New(t)
	req.Equal("5:alice:", KeySegment("alice"))
	req.Equal("0::", KeySegment(""))
	// A segment never is a prefix of another id's segment
	req.False(strings.HasPrefix(KeySegment("ab"), KeySegment("a")))
}
