package loot

import (
	"errors"
	"fmt"
	"sort"
)

const (
	TierI   = "Tier I"
	TierII  = "Tier II"
	TierIII = "Tier III"
	// TierIV is reserved for the hot zone; the upstream prompt forbids it
	// in otherMaps, locally we only enforce the count.
	TierIV = "Tier IV"
)

// Report is the model's answer after parsing and validation. Flat shape,
// camelCase tags match the documented upstream contract.
type Report struct {
	HotZoneMapName         string     `json:"hotZoneMapName"`
	HotZoneEvent           string     `json:"hotZoneEvent"`
	HotZoneLootDescription string     `json:"hotZoneLootDescription"`
	OtherMaps              []MapEntry `json:"otherMaps"`
}

type MapEntry struct {
	MapName   string `json:"mapName"`
	LootTier  string `json:"lootTier"`
	EventName string `json:"eventName"`
}

// Validate treats the parsed JSON as untrusted model output. It names the
// structural defect so the chat error distinguishes "missing hot zone" from
// "wrong map count" (both usually mean the model nested or mangled the shape).
func (r *Report) Validate() error {
	if r.HotZoneMapName == "" {
		return errors.New("missing hotZoneMapName field")
	}
	if len(r.OtherMaps) != 2 {
		return fmt.Errorf("expected exactly 2 otherMaps entries, got %d", len(r.OtherMaps))
	}
	return nil
}

func tierRank(tier string) int {
	switch tier {
	case TierIII:
		return 3
	case TierII:
		return 2
	case TierI:
		return 1
	}
	return 0 // unranked sorts last
}

// SortedOtherMaps returns a copy ordered by descending tier rank.
func (r *Report) SortedOtherMaps() []MapEntry {
	out := make([]MapEntry, len(r.OtherMaps))
	copy(out, r.OtherMaps)
	sort.SliceStable(out, func(i, j int) bool {
		return tierRank(out[i].LootTier) > tierRank(out[j].LootTier)
	})
	return out
}
