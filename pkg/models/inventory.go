package models

import (
	"encoding/json"
	"fmt"
)

// InventoryExport is the root of an inventory export document
type InventoryExport struct {
	Inventory []InventoryEntry `json:"inventory"`
}

// InventoryEntry is one raw record of an inventory export.
// Fields the pricing pipeline never reads are still decoded so that a
// malformed export fails loudly instead of being half-understood.
type InventoryEntry struct {
	ProductID          int64          `json:"product_id"`
	Name               string         `json:"name"`
	Slot               Slot           `json:"slot"`
	Paint              Paint          `json:"paint"`
	Certification      Certification  `json:"certification"`
	CertificationValue uint64         `json:"certification_value"`
	RankLabel          string         `json:"rank_label"`
	Quality            Quality        `json:"quality"`
	Amount             uint64         `json:"amount"`
	SpecialEdition     SpecialEdition `json:"special_edition"`
	BlueprintItemID    uint64         `json:"blueprint_item_id"`
	BlueprintItem      string         `json:"blueprint_item"`
	BlueprintCost      uint64         `json:"blueprint_cost"`
	Tradeable          Tradeable      `json:"tradeable"`
}

// Item is an inventory entry that survived filtering. Items are values and
// are never mutated after construction.
type Item struct {
	Name           string
	Slot           Slot
	Paint          Paint
	Certification  Certification
	Quality        Quality
	SpecialEdition SpecialEdition
	Amount         uint64
	Tradeable      bool
}

// ItemFromEntry drops the export-only fields of an entry
func ItemFromEntry(e InventoryEntry) Item {
	return Item{
		Name:           e.Name,
		Slot:           e.Slot,
		Paint:          e.Paint,
		Certification:  e.Certification,
		Quality:        e.Quality,
		SpecialEdition: e.SpecialEdition,
		Amount:         e.Amount,
		Tradeable:      bool(e.Tradeable),
	}
}

// String renders the item for diagnostics
func (i Item) String() string {
	return fmt.Sprintf("%s [slot=%s paint=%s cert=%s quality=%s edition=%s amount=%d]",
		i.Name, i.Slot, i.Paint, i.Certification, i.Quality, i.SpecialEdition, i.Amount)
}

// Tradeable is the export's string-encoded boolean ("true"/"false")
type Tradeable bool

// MarshalJSON implements json.Marshaler
func (t Tradeable) MarshalJSON() ([]byte, error) {
	if t {
		return json.Marshal("true")
	}
	return json.Marshal("false")
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Tradeable) UnmarshalJSON(data []byte) error {
	return decodeCategory(data, "tradeable", tradeableValues, t)
}

var tradeableValues = map[string]Tradeable{
	"true":  true,
	"false": false,
}

// UnknownCategoryError reports a categorical value outside its closed vocabulary
type UnknownCategoryError struct {
	Kind  string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

// decodeCategory decodes a JSON string and resolves it against a closed vocabulary
func decodeCategory[T any](data []byte, kind string, values map[string]T, out *T) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}

	v, ok := values[raw]
	if !ok {
		return &UnknownCategoryError{Kind: kind, Value: raw}
	}

	*out = v
	return nil
}

// invert builds the decode table from a canonical name table plus aliases
func invert[T comparable](names map[T]string, aliases map[string]T) map[string]T {
	values := make(map[string]T, len(names)+len(aliases))
	for v, name := range names {
		values[name] = v
	}
	for alias, v := range aliases {
		values[alias] = v
	}
	return values
}
