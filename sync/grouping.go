// ABOUTME: Pairing engine grouping sync configs into one-way and bidirectional buckets
// ABOUTME: Pure single-pass partition tolerant of orphaned pair references
package sync

import (
	"github.com/livelyapps/calsync/models"
)

// Pair is one bidirectional bucket. Forward (a_to_b) is the anchor the
// dashboard renders; Reverse may be nil when the counterpart leg was never
// created or a previous pair deletion only half succeeded.
type Pair struct {
	Key     string
	Forward *models.SyncConfig
	Reverse *models.SyncConfig

	// Members holds every config that grouped into this bucket, in input
	// order. With well-formed input it is the forward and reverse legs;
	// malformed duplicates still land here so no record is ever dropped.
	Members []models.SyncConfig
}

// IsOrphan reports whether the pair is missing its reverse leg.
func (p *Pair) IsOrphan() bool {
	return p.Reverse == nil
}

// ReverseID returns the reverse leg's id, or "" for an orphan. Deletion
// code relies on the empty value to know there is nothing to delete.
func (p *Pair) ReverseID() string {
	if p.Reverse == nil {
		return ""
	}
	return p.Reverse.ID
}

// Grouped is the view-model derived from a flat config list.
type Grouped struct {
	OneWay []models.SyncConfig
	Pairs  []*Pair

	byKey map[string]*Pair
}

// Pair looks up a bidirectional bucket by pair key.
func (g Grouped) Pair(key string) (*Pair, bool) {
	p, ok := g.byKey[key]
	return p, ok
}

// PairFor finds the bucket holding configID as one of its members. Callers
// deleting "the pair this config belongs to" use this rather than Pair,
// since a member's id is not necessarily its bucket's key.
func (g Grouped) PairFor(configID string) (*Pair, bool) {
	for _, p := range g.Pairs {
		for _, m := range p.Members {
			if m.ID == configID {
				return p, true
			}
		}
	}
	return nil, false
}

// AnchoredPairs returns the buckets that render as pairs: those anchored by
// a forward leg. A bucket holding only a stray reverse leg is kept in Pairs
// (every input record lands somewhere) but is not displayable.
func (g Grouped) AnchoredPairs() []*Pair {
	anchored := make([]*Pair, 0, len(g.Pairs))
	for _, p := range g.Pairs {
		if p.Forward != nil {
			anchored = append(anchored, p)
		}
	}
	return anchored
}

// Group partitions configs into one-way entries and pair-keyed bidirectional
// buckets. It is a pure function: single pass, input order preserved within
// each bucket, no state between calls, safe to run on every refetch.
//
// Should malformed input carry two legs with the same direction in one
// bucket, the first seen wins as that role; later duplicates stay in
// Members only.
func Group(configs []models.SyncConfig) Grouped {
	g := Grouped{byKey: make(map[string]*Pair)}

	for _, config := range configs {
		if config.SyncDirection == models.DirectionOneWay {
			g.OneWay = append(g.OneWay, config)
			continue
		}

		key := config.PairKey()
		pair, ok := g.byKey[key]
		if !ok {
			pair = &Pair{Key: key}
			g.byKey[key] = pair
			g.Pairs = append(g.Pairs, pair)
		}

		member := config
		pair.Members = append(pair.Members, member)

		switch member.SyncDirection {
		case models.DirectionAToB:
			if pair.Forward == nil {
				pair.Forward = &member
			}
		case models.DirectionBToA:
			if pair.Reverse == nil {
				pair.Reverse = &member
			}
		}
	}

	return g
}
