package database

import (
	"database/sql"
	"fmt"
	"time"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

// SettingsRepository handles database operations for the single channel
// settings row.
type SettingsRepository struct {
	db       *DB
	defaults Settings
}

// NewSettingsRepository creates a new settings repository. The defaults are
// inserted whenever the settings row is missing.
func NewSettingsRepository(db *DB, defaults Settings) *SettingsRepository {
	defaults.ID = 1
	return &SettingsRepository{db: db, defaults: defaults}
}

// Get returns the channel settings, seeding the defaults if the row does
// not exist yet.
func (r *SettingsRepository) Get() (*Settings, error) {
	settings, err := r.get()
	if err == sql.ErrNoRows {
		if err := r.Seed(); err != nil {
			return nil, err
		}
		settings, err = r.get()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (r *SettingsRepository) get() (*Settings, error) {
	var s Settings
	err := r.db.QueryRow(`
		SELECT id, title, description, link, language, copyright,
		       managing_editor, webmaster, generator,
		       image_url, image_title, image_link, updated_at
		FROM feed_settings
		WHERE id = 1
	`).Scan(
		&s.ID, &s.Title, &s.Description, &s.Link, &s.Language, &s.Copyright,
		&s.ManagingEditor, &s.Webmaster, &s.Generator,
		&s.ImageURL, &s.ImageTitle, &s.ImageLink, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Seed inserts the default settings row if it is absent. Existing settings
// are never overwritten.
func (r *SettingsRepository) Seed() error {
	d := r.defaults
	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO feed_settings (
			id, title, description, link, language, copyright,
			managing_editor, webmaster, generator,
			image_url, image_title, image_link, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.Title, d.Description, d.Link, d.Language, d.Copyright,
		d.ManagingEditor, d.Webmaster, d.Generator,
		d.ImageURL, d.ImageTitle, d.ImageLink, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}

// Update applies a partial update to the settings row. Only the supplied
// fields are modified; updated_at is always refreshed. An empty field set
// is rejected with ErrEmptyUpdate.
func (r *SettingsRepository) Update(fields SettingsFields) error {
	// Make sure the row exists before updating it in place
	if _, err := r.Get(); err != nil {
		return err
	}

	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update("feed_settings")

	var assignments []string
	assign := func(column string, value *string) {
		if value != nil {
			assignments = append(assignments, ub.Assign(column, *value))
		}
	}
	assign("title", fields.Title)
	assign("description", fields.Description)
	assign("link", fields.Link)
	assign("language", fields.Language)
	assign("copyright", fields.Copyright)
	assign("managing_editor", fields.ManagingEditor)
	assign("webmaster", fields.Webmaster)
	assign("generator", fields.Generator)
	assign("image_url", fields.ImageURL)
	assign("image_title", fields.ImageTitle)
	assign("image_link", fields.ImageLink)

	if len(assignments) == 0 {
		return ErrEmptyUpdate
	}

	assignments = append(assignments, ub.Assign("updated_at", time.Now().UTC()))
	ub.Set(assignments...)
	ub.Where(ub.Equal("id", 1))

	query, args := ub.Build()
	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	return nil
}
