// Package inventory loads inventory exports and reduces them to the items
// eligible for pricing.
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/XavierBriggs/Midas/pkg/models"
)

// LoadError reports an export that could not be decoded. A load error is
// fatal for the whole run; no entry of a bad export is ever priced.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load inventory: %v", e.Err)
	}
	return fmt.Sprintf("load inventory %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads and decodes the export at path
func LoadFile(path string) ([]models.InventoryEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}

	return entries, nil
}

// requiredFields lists the keys every export entry must carry with a non-null value
var requiredFields = []string{
	"product_id", "name", "slot", "paint", "certification", "certification_value",
	"rank_label", "quality", "amount", "special_edition", "blueprint_item_id",
	"blueprint_item", "blueprint_cost", "tradeable",
}

// Decode decodes an export document. The document must be a single JSON
// object; any missing entry field, unrecognized category value or zero
// amount fails the whole document.
func Decode(r io.Reader) ([]models.InventoryEntry, error) {
	dec := json.NewDecoder(r)

	var root struct {
		Inventory []json.RawMessage `json:"inventory"`
	}
	if err := dec.Decode(&root); err != nil {
		return nil, &LoadError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &LoadError{Err: errors.New("unexpected data after export document")}
	}

	if root.Inventory == nil {
		return nil, &LoadError{Err: errors.New(`missing "inventory" array`)}
	}

	entries := make([]models.InventoryEntry, len(root.Inventory))
	for i, raw := range root.Inventory {
		if err := decodeEntry(raw, &entries[i]); err != nil {
			return nil, &LoadError{Err: fmt.Errorf("entry %d: %w", i, err)}
		}
	}

	return entries, nil
}

func decodeEntry(raw json.RawMessage, entry *models.InventoryEntry) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}

	for _, key := range requiredFields {
		v, ok := fields[key]
		if !ok || string(v) == "null" {
			return fmt.Errorf("missing field %q", key)
		}
	}

	if err := json.Unmarshal(raw, entry); err != nil {
		return err
	}

	if entry.Amount == 0 {
		return errors.New("amount must be positive")
	}

	return nil
}
