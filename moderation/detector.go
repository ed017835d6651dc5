// Package moderation spots listed terms in message content. Stored content
// is never rewritten, findings only feed notifications.
package moderation

import (
	"fmt"
	"social-lab/errors"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

const maskRune = '*'

// Detector matches terms through case, leet substitutions and separators:
// "B.4.d.g.€r" is found for "badger".
type Detector struct {
	machine *goahocorasick.Machine
}

// Finding lists the matched terms, each once, in order of appearance.
// Masked is the text with every matched span replaced by stars.
type Finding struct {
	Terms  []string
	Masked string
}

func (f Finding) Flagged() bool {
	return len(f.Terms) > 0
}

func NewDetector(terms []string) (*Detector, error) {
	patterns := lo.UniqBy(
		lo.Filter(lo.Map(terms, func(term string, _ int) []rune { return fold([]rune(term)) }),
			func(p []rune, _ int) bool { return len(p) > 0 }),
		func(p []rune) string { return string(p) })
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no usable moderation term", errors.ErrInvalidArgument)
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, fmt.Errorf("moderation automaton: %w", err)
	}
	return &Detector{machine: machine}, nil
}

func (d *Detector) Scan(text string) Finding {
	original := []rune(text)
	folded, positions := foldWithPositions(original)
	if len(folded) == 0 {
		return Finding{Masked: text}
	}

	hits := d.machine.MultiPatternSearch(folded, false)
	if len(hits) == 0 {
		return Finding{Masked: text}
	}

	masked := make([]rune, len(original))
	copy(masked, original)
	terms := make([]string, 0, len(hits))
	for _, hit := range hits {
		end := hit.Pos + len(hit.Word)
		if hit.Pos < 0 || end > len(positions) {
			continue
		}
		for i := positions[hit.Pos]; i <= positions[end-1]; i++ {
			masked[i] = maskRune
		}
		terms = append(terms, string(hit.Word))
	}
	return Finding{Terms: lo.Uniq(terms), Masked: string(masked)}
}

// foldWithPositions folds text and remembers, for each kept rune, its index
// in the original.
func foldWithPositions(text []rune) ([]rune, []int) {
	folded := make([]rune, 0, len(text))
	positions := make([]int, 0, len(text))
	for i, r := range text {
		if c, ok := foldRune(r); ok {
			folded = append(folded, c)
			positions = append(positions, i)
		}
	}
	return folded, positions
}

func fold(text []rune) []rune {
	folded, _ := foldWithPositions(text)
	return folded
}

// foldRune lowers a rune and undoes leet substitutions. Separators are dropped.
func foldRune(r rune) (rune, bool) {
	switch r {
	case '4', '@':
		r = 'a'
	case '3', '€':
		r = 'e'
	case '1', '!', '|':
		r = 'i'
	case '0':
		r = 'o'
	case '5', '$':
		r = 's'
	}
	if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return 0, false
	}
	return unicode.ToLower(r), true
}
