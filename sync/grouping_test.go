// ABOUTME: Tests for the config grouping and pairing engine
// ABOUTME: Covers orphan handling, ordering stability, and malformed input
package sync

import (
	"testing"

	"github.com/livelyapps/calsync/models"
)

func oneWay(id string) models.SyncConfig {
	return models.SyncConfig{ID: id, SyncDirection: models.DirectionOneWay}
}

func forward(id, pairID string) models.SyncConfig {
	return models.SyncConfig{ID: id, SyncDirection: models.DirectionAToB, PairedConfigID: pairID}
}

func reverse(id, pairID string) models.SyncConfig {
	return models.SyncConfig{ID: id, SyncDirection: models.DirectionBToA, PairedConfigID: pairID}
}

func TestGroupEmpty(t *testing.T) {
	g := Group(nil)
	if len(g.OneWay) != 0 || len(g.Pairs) != 0 {
		t.Errorf("empty input should produce empty groups, got %+v", g)
	}

	g = Group([]models.SyncConfig{})
	if len(g.OneWay) != 0 || len(g.Pairs) != 0 {
		t.Errorf("empty slice should produce empty groups, got %+v", g)
	}
}

func TestGroupMixed(t *testing.T) {
	configs := []models.SyncConfig{
		forward("f1", "f1"),
		reverse("r1", "f1"),
		oneWay("o1"),
	}

	g := Group(configs)

	if len(g.OneWay) != 1 || g.OneWay[0].ID != "o1" {
		t.Errorf("expected oneWay=[o1], got %+v", g.OneWay)
	}

	pair, ok := g.Pair("f1")
	if !ok {
		t.Fatal("expected pair bucket f1")
	}
	if pair.Forward == nil || pair.Forward.ID != "f1" {
		t.Errorf("expected forward f1, got %+v", pair.Forward)
	}
	if pair.Reverse == nil || pair.Reverse.ID != "r1" {
		t.Errorf("expected reverse r1, got %+v", pair.Reverse)
	}
	if pair.IsOrphan() {
		t.Error("complete pair should not be an orphan")
	}
}

func TestGroupOrphanForward(t *testing.T) {
	// A forward leg with no recorded pair groups under its own id.
	g := Group([]models.SyncConfig{forward("f1", "")})

	pair, ok := g.Pair("f1")
	if !ok {
		t.Fatal("orphan should form a singleton bucket keyed by its own id")
	}
	if !pair.IsOrphan() {
		t.Error("expected orphan pair")
	}
	if pair.ReverseID() != "" {
		t.Errorf("orphan reverse id must be empty, got %q", pair.ReverseID())
	}

	anchored := g.AnchoredPairs()
	if len(anchored) != 1 || anchored[0].Key != "f1" {
		t.Errorf("orphan forward should still render, got %+v", anchored)
	}
}

func TestGroupStrayReverseNotRendered(t *testing.T) {
	// A reverse leg whose forward is gone is kept but never rendered as a pair.
	g := Group([]models.SyncConfig{reverse("r1", "f1")})

	pair, ok := g.Pair("f1")
	if !ok {
		t.Fatal("stray reverse should still land in a bucket")
	}
	if pair.Forward != nil {
		t.Errorf("bucket has no forward leg, got %+v", pair.Forward)
	}
	if len(g.AnchoredPairs()) != 0 {
		t.Error("unanchored bucket must not render as a pair")
	}
}

func TestGroupPairKeyStability(t *testing.T) {
	a := forward("f1", "f1")
	b := reverse("r1", "f1")

	for _, configs := range [][]models.SyncConfig{{a, b}, {b, a}} {
		g := Group(configs)
		pair, ok := g.Pair("f1")
		if !ok {
			t.Fatal("pair bucket missing")
		}
		if pair.Forward == nil || pair.Forward.ID != "f1" {
			t.Errorf("forward mismatch for input %+v", configs)
		}
		if pair.Reverse == nil || pair.Reverse.ID != "r1" {
			t.Errorf("reverse mismatch for input %+v", configs)
		}
	}
}

func TestGroupPreservesInputOrder(t *testing.T) {
	configs := []models.SyncConfig{
		oneWay("o1"),
		forward("f1", "f1"),
		oneWay("o2"),
		forward("f2", "f2"),
		reverse("r1", "f1"),
		oneWay("o3"),
	}

	g := Group(configs)

	wantOneWay := []string{"o1", "o2", "o3"}
	for i, id := range wantOneWay {
		if g.OneWay[i].ID != id {
			t.Errorf("oneWay[%d] = %s, want %s", i, g.OneWay[i].ID, id)
		}
	}

	wantPairs := []string{"f1", "f2"}
	for i, key := range wantPairs {
		if g.Pairs[i].Key != key {
			t.Errorf("pairs[%d].Key = %s, want %s", i, g.Pairs[i].Key, key)
		}
	}
}

func TestGroupTotality(t *testing.T) {
	// Every input record, however malformed, lands in exactly one bucket.
	configs := []models.SyncConfig{
		oneWay("o1"),
		forward("f1", "f1"),
		reverse("r1", "f1"),
		forward("f1-dup", "f1"), // duplicate forward in the same bucket
		reverse("stray", "gone"),
		forward("orphan", ""),
		{ID: "weird", SyncDirection: models.SyncDirection("unknown")},
	}

	g := Group(configs)

	total := len(g.OneWay)
	for _, p := range g.Pairs {
		total += len(p.Members)
	}
	if total != len(configs) {
		t.Errorf("grouped %d records, want %d", total, len(configs))
	}

	// First-seen forward stays the anchor; the duplicate stays a member.
	pair, _ := g.Pair("f1")
	if pair.Forward.ID != "f1" {
		t.Errorf("first-seen forward should win, got %s", pair.Forward.ID)
	}
	if len(pair.Members) != 3 {
		t.Errorf("expected 3 members in bucket f1, got %d", len(pair.Members))
	}
}

func TestPairForFindsBucketByMemberID(t *testing.T) {
	// The forward leg's id is not the bucket key here; lookups by member id
	// must still find the pair.
	g := Group([]models.SyncConfig{
		forward("f1", "r1"),
		reverse("r1", "r1"),
		oneWay("o1"),
	})

	for _, id := range []string{"f1", "r1"} {
		pair, ok := g.PairFor(id)
		if !ok {
			t.Fatalf("PairFor(%q) should find the bucket", id)
		}
		if pair.Key != "r1" {
			t.Errorf("PairFor(%q).Key = %s, want r1", id, pair.Key)
		}
	}

	if _, ok := g.PairFor("o1"); ok {
		t.Error("a one-way config must not resolve to a pair")
	}
	if _, ok := g.PairFor("missing"); ok {
		t.Error("unknown ids must not resolve to a pair")
	}
}

func TestGroupIsPure(t *testing.T) {
	configs := []models.SyncConfig{forward("f1", "f1"), reverse("r1", "f1"), oneWay("o1")}

	first := Group(configs)
	second := Group(configs)

	if len(first.OneWay) != len(second.OneWay) || len(first.Pairs) != len(second.Pairs) {
		t.Error("repeated grouping of the same input should be identical")
	}
	if configs[0].ID != "f1" || configs[1].ID != "r1" || configs[2].ID != "o1" {
		t.Error("grouping must not mutate its input")
	}
}
