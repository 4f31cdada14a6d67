package service

import "github.com/you-humble/supplement-inventory/internal/model"

// ReplaceSnapshot returns the snapshots of kind with every entry for snap.ID
// replaced by snap, and reports whether anything differs. A referenced entity
// missing from current is appended; a product type is single-valued, so it
// replaces whatever is there. current is never modified.
func ReplaceSnapshot(kind model.EntityKind, current []model.Snapshot, snap model.Snapshot) ([]model.Snapshot, bool) {
	if kind == model.KindProductType {
		changed := len(current) != 1 || current[0] != snap
		return []model.Snapshot{snap}, changed
	}

	out := make([]model.Snapshot, len(current), len(current)+1)
	copy(out, current)

	found, changed := false, false
	for i := range out {
		if out[i].ID != snap.ID {
			continue
		}
		found = true
		if out[i] != snap {
			out[i] = snap
			changed = true
		}
	}
	if !found {
		out = append(out, snap)
		changed = true
	}
	return out, changed
}
