package database

import (
	"errors"
)

// ErrNotFound is returned when an update or delete targets an id that does
// not exist.
var ErrNotFound = errors.New("record not found")

// ErrEmptyUpdate is returned when a partial update supplies no fields.
var ErrEmptyUpdate = errors.New("nothing to update")

// ItemFields is the set of optional fields accepted by a partial item
// update. Nil fields are left untouched.
type ItemFields struct {
	Title       *string
	Description *string
	Content     *string
	Link        *string
	Author      *string
	Category    *string
	Published   *bool
}

// SettingsFields is the set of optional fields accepted by a partial
// settings update. Nil fields are left untouched.
type SettingsFields struct {
	Title          *string
	Description    *string
	Link           *string
	Language       *string
	Copyright      *string
	ManagingEditor *string
	Webmaster      *string
	Generator      *string
	ImageURL       *string
	ImageTitle     *string
	ImageLink      *string
}

// ItemListOptions narrows and pages the admin item listing. Published is
// tri-state: nil matches all items. Page is 1-based. Limit is honored
// as-is, however large.
type ItemListOptions struct {
	Category  string
	Published *bool
	Page      int
	Limit     int
}

type ItemRepositoryInterface interface {
	List(opts ItemListOptions) ([]Item, int, error)
	GetPublished(category string, limit int) ([]Item, error)
	Create(item Item) (int64, string, error)
	Update(id int64, fields ItemFields) error
	Delete(id int64) error
	Count() (int, error)
}

type SettingsRepositoryInterface interface {
	Get() (*Settings, error)
	Update(fields SettingsFields) error
}
