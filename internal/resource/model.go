// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package resource

import (
	"encoding/json"
	"time"
)

// Status values a Resource can hold.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Resource is the stored row. Metadata is kept serialized; the service
// converts object<->text on every read and write.
type Resource struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"index; not null"`
	Type      string    `gorm:"index; not null"`
	Status    string    `gorm:"index; not null"`
	Metadata  []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// View is the API representation of a Resource: metadata decoded into an
// object, timestamps rendered as ISO-8601 UTC.
type View struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

// View decodes the row for the API. Unreadable stored metadata renders
// as an empty object rather than failing the read.
func (r *Resource) View() View {
	meta := map[string]any{}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &meta); err != nil || meta == nil {
			meta = map[string]any{}
		}
	}
	return View{
		ID:        r.ID,
		Name:      r.Name,
		Type:      r.Type,
		Status:    r.Status,
		Metadata:  meta,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
