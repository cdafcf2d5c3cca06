// Package region resolves free-form postal addresses to ISO 3166-2
// subdivision codes (e.g. "US-CA", "DE-BY") through a geocoding service.
// It sits outside the pure normalization core: lookups are network-bound,
// cached, and degrade to an empty code on any failure.
package region

import (
	"context"
	"strings"

	"github.com/pgoetz/csvclean/pkg/table"
)

// Resolver maps an address to a subdivision code. An empty code with a nil
// error means the address could not be resolved; callers must treat both the
// same way (no code).
type Resolver interface {
	Resolve(ctx context.Context, address string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, address string) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context, address string) (string, error) {
	return f(ctx, address)
}

// Annotate returns a copy of t with a "<column>_iso_3166_2" column inserted
// immediately after the address column. Blank addresses and failed lookups
// produce empty codes. A missing address column yields an unchanged copy.
func Annotate(ctx context.Context, t *table.Table, addressColumn string, r Resolver) *table.Table {
	out := t.Clone()
	idx := out.ColumnIndex(addressColumn)
	if idx < 0 {
		return out
	}

	codes := make([]string, len(out.Rows))
	for i, row := range out.Rows {
		addr := strings.TrimSpace(row[idx])
		if addr == "" {
			continue
		}
		code, err := r.Resolve(ctx, addr)
		if err != nil {
			continue
		}
		codes[i] = code
	}

	out.InsertColumnAfter(idx, addressColumn+"_iso_3166_2", codes)
	return out
}
