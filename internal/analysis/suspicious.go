package analysis

import (
	"fmt"

	"colordist/internal/cards"
)

// NoteKind classifies a record worth a second look. Notes never remove
// data on their own.
type NoteKind string

const (
	NoteUnknownPair        NoteKind = "unknown_pair"
	NoteIdenticalLowScore  NoteKind = "identical_low_score"
	NoteDifferentFullScore NoteKind = "different_full_score"
)

type Note struct {
	Session SessionKey `yaml:"session" json:"session"`
	Kind    NoteKind   `yaml:"kind" json:"kind"`
	Pair    string     `yaml:"pair" json:"pair"`
	Score   int        `yaml:"score" json:"score"`
}

func (n Note) String() string {
	return fmt.Sprintf("%s: session %s pair %s score %d", n.Kind, n.Session, n.Pair, n.Score)
}

func (c *Config) inspect(s *Session, known cards.Set) []Note {
	var notes []Note
	note := func(kind NoteKind, r Record) {
		notes = append(notes, Note{Session: s.Key, Kind: kind, Pair: r.Pair.String(), Score: r.Score})
	}
	for _, r := range s.Records {
		if !known.Contains(r.Pair) {
			note(NoteUnknownPair, r)
		}
		switch {
		case r.Pair.Identical() && r.Score < c.IdenticalMinScore:
			note(NoteIdenticalLowScore, r)
		case !r.Pair.Identical() && r.Score == 100 && !c.closePairs.Contains(r.Pair):
			note(NoteDifferentFullScore, r)
		}
	}
	return notes
}
