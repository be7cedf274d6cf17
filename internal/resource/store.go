// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package resource

import "context"

// Pagination bounds. Out-of-range values are clamped, never rejected.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	MaxOffset    = 50000
)

// Filter narrows a List call. Type and Status are exact matches, Query
// is a case-insensitive substring match against name. A zero Limit
// means DefaultLimit.
type Filter struct {
	Type   string
	Status string
	Query  string
	Limit  int
	Offset int
}

// normalize applies the pagination defaults and bounds.
func (f Filter) normalize() Filter {
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	} else if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	} else if f.Offset > MaxOffset {
		f.Offset = MaxOffset
	}
	return f
}

// Store is the persistence contract for resources. Implementations must
// return errs.ErrNotFound from Get, Update and Delete when no row with
// the given id exists.
type Store interface {
	Create(ctx context.Context, res *Resource) error
	Get(ctx context.Context, id string) (*Resource, error)
	// List returns one page of matching rows ordered by updated_at
	// descending, plus the total match count ignoring pagination.
	List(ctx context.Context, f Filter) ([]Resource, int64, error)
	Update(ctx context.Context, res *Resource) error
	Delete(ctx context.Context, id string) error
}
