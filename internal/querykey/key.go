// Package querykey derives the catalog lookup URL for an inventory item.
// Key derivation is pure: the same item always yields the same key.
package querykey

import (
	"fmt"
	"strings"

	"github.com/XavierBriggs/Midas/pkg/models"
)

const (
	DefaultBaseURL  = "https://rl.insider.gg"
	DefaultLocale   = "en"
	DefaultPlatform = "pc"
)

// ConsistencyError reports an item that eligibility filtering should have
// removed or that the catalog cannot represent. It signals a broken
// contract upstream and must abort the run.
type ConsistencyError struct {
	Item models.Item
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("no catalog slot for %q (slot %s): item should not have passed filtering", e.Item.Name, e.Item.Slot)
}

// Options configures the URL prefix and optional segments
type Options struct {
	BaseURL     string
	Locale      string
	Platform    string
	WithQuality bool
}

// DefaultOptions returns the public catalog's PC prefix without quality segments
func DefaultOptions() Options {
	return Options{
		BaseURL:  DefaultBaseURL,
		Locale:   DefaultLocale,
		Platform: DefaultPlatform,
	}
}

// Builder builds lookup keys of the form
// <base>/<locale>/<platform>/<slot>/<name>[/<quality>][/<edition>][/<paint>]
type Builder struct {
	prefix      string
	withQuality bool
}

// NewBuilder creates a key builder
func NewBuilder(opts Options) *Builder {
	return &Builder{
		prefix:      fmt.Sprintf("%s/%s/%s", strings.TrimRight(opts.BaseURL, "/"), opts.Locale, opts.Platform),
		withQuality: opts.WithQuality,
	}
}

// Key returns the lookup URL for item
func (b *Builder) Key(item models.Item) (string, error) {
	slot, ok := slotSegment(item.Slot)
	if !ok {
		return "", &ConsistencyError{Item: item}
	}

	var sb strings.Builder
	sb.WriteString(b.prefix)
	sb.WriteByte('/')
	sb.WriteString(slot)
	sb.WriteByte('/')
	sb.WriteString(NormalizeName(item.Name))

	if b.withQuality {
		appendSegment(&sb, qualityToken(item.Quality))
	}
	appendSegment(&sb, editionToken(item.SpecialEdition))
	appendSegment(&sb, paintToken(item.Paint))

	return sb.String(), nil
}

// Keys builds the key of every item, failing on the first inconsistent one
func (b *Builder) Keys(items []models.Item) ([]string, error) {
	keys := make([]string, len(items))
	for i, item := range items {
		key, err := b.Key(item)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}

// Supported reports whether the catalog has pages for slot
func Supported(slot models.Slot) bool {
	_, ok := slotSegment(slot)
	return ok
}

func appendSegment(sb *strings.Builder, token string) {
	if token == "" {
		return
	}
	sb.WriteByte('/')
	sb.WriteString(token)
}
