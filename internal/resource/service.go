// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package resource

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"crude/internal/errs"
)

// CreateInput carries a create request. Status defaults to active only
// when absent; a supplied value, empty included, must be one of the two
// allowed statuses. Metadata stays raw so the service can tell "absent"
// from "present but not an object".
type CreateInput struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Status   *string         `json:"status"`
	Metadata json.RawMessage `json:"metadata"`
}

// Patch carries a partial update. Nil fields are left unchanged;
// Metadata, when present, replaces the stored object wholesale.
type Patch struct {
	Name     *string         `json:"name"`
	Type     *string         `json:"type"`
	Status   *string         `json:"status"`
	Metadata json.RawMessage `json:"metadata"`
}

// Page is one page of a list result. Total counts every row matching
// the filter, ignoring pagination.
type Page struct {
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Items  []View `json:"items"`
}

// Service implements the resource operations over a Store. The clock
// and id generator are injected so tests can run deterministically.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the id source used when creating resources.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input, assigns a fresh id and timestamps, and
// persists the row. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (View, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return View{}, errs.Validation("name", "is required")
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return View{}, errs.Validation("type", "is required")
	}
	status := StatusActive
	if in.Status != nil {
		if *in.Status != StatusActive && *in.Status != StatusInactive {
			return View{}, errs.Validation("status", "must be active or inactive")
		}
		status = *in.Status
	}
	meta, err := normalizeMetadata(in.Metadata)
	if err != nil {
		return View{}, err
	}

	ts := s.now()
	res := &Resource{
		ID:        s.newID(),
		Name:      name,
		Type:      typ,
		Status:    status,
		Metadata:  meta,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.store.Create(ctx, res); err != nil {
		return View{}, err
	}
	return res.View(), nil
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return res.View(), nil
}

// List returns one page of resources. Out-of-range pagination values
// are clamped rather than rejected.
func (s *Service) List(ctx context.Context, f Filter) (Page, error) {
	f = f.normalize()
	items, total, err := s.store.List(ctx, f)
	if err != nil {
		return Page{}, err
	}
	views := make([]View, 0, len(items))
	for i := range items {
		views = append(views, items[i].View())
	}
	return Page{Total: total, Limit: f.Limit, Offset: f.Offset, Items: views}, nil
}

// Update merges the patch over the existing row field by field and
// rewrites updated_at. All present fields are validated before any
// write, so a failed patch leaves the row untouched.
func (s *Service) Update(ctx context.Context, id string, p Patch) (View, error) {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	next := *res
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return View{}, errs.Validation("name", "must be a non-empty string")
		}
		next.Name = name
	}
	if p.Type != nil {
		typ := strings.TrimSpace(*p.Type)
		if typ == "" {
			return View{}, errs.Validation("type", "must be a non-empty string")
		}
		next.Type = typ
	}
	if p.Status != nil {
		if *p.Status != StatusActive && *p.Status != StatusInactive {
			return View{}, errs.Validation("status", "must be active or inactive")
		}
		next.Status = *p.Status
	}
	if p.Metadata != nil {
		meta, err := normalizeMetadata(p.Metadata)
		if err != nil {
			return View{}, err
		}
		next.Metadata = meta
	}
	next.UpdatedAt = s.now()

	if err := s.store.Update(ctx, &next); err != nil {
		return View{}, err
	}
	return next.View(), nil
}

// Delete permanently removes the row. Ids are never reused, so a later
// create cannot resurrect it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// normalizeMetadata checks the raw value decodes to a JSON object and
// re-serializes it compactly for storage. Absent metadata becomes {}.
func normalizeMetadata(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return []byte("{}"), nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil, errs.Validation("metadata", "must be an object")
	}
	out, err := json.Marshal(m)
	if err != nil {
		return nil, errs.Validation("metadata", "must be an object")
	}
	return out, nil
}
