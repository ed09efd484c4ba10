package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

// ItemRepository handles database operations for feed items
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

var itemColumns = []string{
	"id", "title", "description", "content", "link", "author", "category",
	"guid", "pub_date", "updated_at", "published", "created_at",
}

func scanItem(rows *sql.Rows) (Item, error) {
	var item Item
	err := rows.Scan(
		&item.ID, &item.Title, &item.Description, &item.Content, &item.Link,
		&item.Author, &item.Category, &item.GUID, &item.PubDate,
		&item.UpdatedAt, &item.Published, &item.CreatedAt,
	)
	return item, err
}

// List returns a page of items ordered by pub_date descending, together
// with the total number of items matching the filters.
func (r *ItemRepository) List(opts ItemListOptions) ([]Item, int, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(itemColumns...).From("feed_items")
	applyItemFilters(sb, opts.Category, opts.Published)
	sb.OrderBy("pub_date").Desc()
	sb.Limit(limit).Offset((page - 1) * limit)

	query, args := sb.Build()
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating item rows: %w", err)
	}

	cb := sqlbuilder.SQLite.NewSelectBuilder()
	cb.Select("COUNT(*)").From("feed_items")
	applyItemFilters(cb, opts.Category, opts.Published)

	query, args = cb.Build()
	var total int
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	return items, total, nil
}

func applyItemFilters(sb *sqlbuilder.SelectBuilder, category string, published *bool) {
	if category != "" {
		sb.Where(sb.Equal("category", category))
	}
	if published != nil {
		sb.Where(sb.Equal("published", *published))
	}
}

// GetPublished returns published items for the public feeds, newest
// pub_date first, optionally narrowed to a category.
func (r *ItemRepository) GetPublished(category string, limit int) ([]Item, error) {
	published := true
	items, _, err := r.List(ItemListOptions{
		Category:  category,
		Published: &published,
		Page:      1,
		Limit:     limit,
	})
	return items, err
}

// Create inserts a new item and returns its id and guid. A missing guid is
// generated, pub_date defaults to now, and published defaults are expected
// to be resolved by the caller.
func (r *ItemRepository) Create(item Item) (int64, string, error) {
	now := time.Now().UTC()

	if item.GUID == "" {
		item.GUID = uuid.NewString()
	}
	if item.PubDate.IsZero() {
		item.PubDate = now
	}

	result, err := r.db.Exec(`
		INSERT INTO feed_items (
			title, description, content, link, author, category,
			guid, pub_date, updated_at, published, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.Title, item.Description, item.Content, item.Link, item.Author,
		item.Category, item.GUID, item.PubDate, now, item.Published, now)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, "", fmt.Errorf("failed to get inserted item id: %w", err)
	}

	return id, item.GUID, nil
}

// Update applies a partial update to an item. Only the supplied fields are
// modified; updated_at is always refreshed. An empty field set is rejected
// with ErrEmptyUpdate, an unknown id with ErrNotFound.
func (r *ItemRepository) Update(id int64, fields ItemFields) error {
	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update("feed_items")

	var assignments []string
	if fields.Title != nil {
		assignments = append(assignments, ub.Assign("title", *fields.Title))
	}
	if fields.Description != nil {
		assignments = append(assignments, ub.Assign("description", *fields.Description))
	}
	if fields.Content != nil {
		assignments = append(assignments, ub.Assign("content", *fields.Content))
	}
	if fields.Link != nil {
		assignments = append(assignments, ub.Assign("link", *fields.Link))
	}
	if fields.Author != nil {
		assignments = append(assignments, ub.Assign("author", *fields.Author))
	}
	if fields.Category != nil {
		assignments = append(assignments, ub.Assign("category", *fields.Category))
	}
	if fields.Published != nil {
		assignments = append(assignments, ub.Assign("published", *fields.Published))
	}

	if len(assignments) == 0 {
		return ErrEmptyUpdate
	}

	assignments = append(assignments, ub.Assign("updated_at", time.Now().UTC()))
	ub.Set(assignments...)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an item by id, returning ErrNotFound for an unknown id.
func (r *ItemRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM feed_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the total number of items
func (r *ItemRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM feed_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}
