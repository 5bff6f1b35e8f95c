package inventory

import "github.com/XavierBriggs/Midas/pkg/models"

// Tradeable returns the entries marked tradeable
func Tradeable(entries []models.InventoryEntry) []models.InventoryEntry {
	out := make([]models.InventoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.Tradeable {
			out = append(out, e)
		}
	}
	return out
}

// IsEligible reports whether an entry can be priced: tradeable, not a
// blueprint, and not referencing a blueprint item
func IsEligible(e models.InventoryEntry) bool {
	return bool(e.Tradeable) && e.BlueprintItem == "" && e.Slot != models.SlotBlueprint
}

// Filter returns the eligible entries in input order. Filter is idempotent.
func Filter(entries []models.InventoryEntry) []models.InventoryEntry {
	out := make([]models.InventoryEntry, 0, len(entries))
	for _, e := range entries {
		if IsEligible(e) {
			out = append(out, e)
		}
	}
	return out
}

// Eligible filters entries and converts the survivors to items
func Eligible(entries []models.InventoryEntry) []models.Item {
	filtered := Filter(entries)
	items := make([]models.Item, len(filtered))
	for i, e := range filtered {
		items[i] = models.ItemFromEntry(e)
	}
	return items
}
