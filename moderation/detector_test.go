package moderation

import (
	"social-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestDetector_Scan(t *testing.T) {
	req := require.New(t)
	detector, err := NewDetector([]string{"badger", "snake", "mushroom", "Badger"})
	req.NoError(err)

	tests := []struct {
		name   string
		input  string
		masked string
		terms  []string
	}{
		{
			name:   "Simple word and space preservation",
			input:  "The badger is here",
			masked: "The ****** is here",
			terms:  []string{"badger"},
		},
		{
			name:   "Repeated term is reported once",
			input:  "badger badger badger",
			masked: "****** ****** ******",
			terms:  []string{"badger"},
		},
		{
			name:   "Leet speak and internal punctuation",
			input:  "Look at B.4.d.g.€r !",
			masked: "Look at ********** !",
			terms:  []string{"badger"},
		},
		{
			name:   "Uppercase and extreme noise",
			input:  "S-N-A-K-E is a B.A.D.G.E.R",
			masked: "********* is a ***********",
			terms:  []string{"snake", "badger"},
		},
		{
			name:   "Accents are preserved",
			input:  "Un été avec un badger",
			masked: "Un été avec un ******",
			terms:  []string{"badger"},
		},
		{
			name:   "Clean text",
			input:  "Hello Bob, how are you?",
			masked: "Hello Bob, how are you?",
		},
		{
			name:   "Only noise",
			input:  "?! ...",
			masked: "?! ...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding := detector.Scan(tt.input)
			require.Equal(t, tt.masked, finding.Masked)
			require.Equal(t, len(tt.terms) > 0, finding.Flagged())
			if len(tt.terms) > 0 {
				require.Equal(t, tt.terms, finding.Terms)
			}
		})
	}
}

func TestNewDetector_RequiresATerm(t *testing.T) {
	req := require.New(t)

	_, err := NewDetector(nil)
	req.ErrorIs(err, errors.ErrInvalidArgument)

	_, err = NewDetector([]string{" ", "..."})
	req.ErrorIs(err, errors.ErrInvalidArgument)
}
