// Package catalog holds the static prompt catalogs, one per workflow phase.
//
// A Catalog maps a prompt identifier to the instructional text handed back
// to the calling agent. Catalogs are built once at package init from the
// phase files in this package and never change afterwards, so they can be
// shared by any number of goroutines without locking.
package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPrompt is returned when a prompt identifier is not present in
// the catalog that was asked for it.
var ErrUnknownPrompt = errors.New("unknown prompt")

// Catalog is an immutable prompt_id -> prompt body mapping.
type Catalog struct {
	name    string
	prompts map[string]string
	ids     []string
}

// New builds a catalog named after its phase. The entries map is copied,
// so later changes to it do not leak into the catalog.
func New(name string, entries map[string]string) *Catalog {
	prompts := make(map[string]string, len(entries))
	ids := make([]string, 0, len(entries))
	for id, body := range entries {
		prompts[id] = body
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Catalog{name: name, prompts: prompts, ids: ids}
}

// Name returns the phase the catalog belongs to.
func (c *Catalog) Name() string {
	return c.name
}

// Lookup returns the body of the prompt with the given identifier.
func (c *Catalog) Lookup(id string) (string, error) {
	body, ok := c.prompts[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPrompt, id)
	}
	return body, nil
}

// Has reports whether id is one of the catalog's keys.
func (c *Catalog) Has(id string) bool {
	_, ok := c.prompts[id]
	return ok
}

// IDs returns the catalog's key set in sorted order. The returned slice is
// a copy and may be modified by the caller.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// all returns every phase catalog in workflow order.
func all() []*Catalog {
	return []*Catalog{
		Concept(),
		Requirements(),
		Architecture(),
		Implementation(),
		IntegrationTest(),
	}
}
