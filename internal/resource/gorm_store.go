// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"crude/internal/errs"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) Create(ctx context.Context, res *Resource) error {
	if err := s.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("creating resource: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*Resource, error) {
	var r Resource
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching resource: %w", err)
	}
	return &r, nil
}

func (s *GormStore) List(ctx context.Context, f Filter) ([]Resource, int64, error) {
	q := s.db.WithContext(ctx).Model(&Resource{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting resources: %w", err)
	}

	var out []Resource
	err := q.Order("updated_at DESC, id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing resources: %w", err)
	}
	return out, total, nil
}

func (s *GormStore) Update(ctx context.Context, res *Resource) error {
	// Select("*") forces zero-valued fields to be written too.
	tx := s.db.WithContext(ctx).Model(&Resource{}).
		Where("id = ?", res.ID).
		Select("*").
		Updates(res)
	if tx.Error != nil {
		return fmt.Errorf("updating resource: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Resource{})
	if tx.Error != nil {
		return fmt.Errorf("deleting resource: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
