package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the full database schema.
//
// created_at holds fixed-width RFC 3339 UTC text so that ordering the column
// as text orders it in time.
const schema = `
CREATE TABLE IF NOT EXISTS wardrobe_items (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    item_name  TEXT    NOT NULL CHECK (length(trim(item_name)) > 0),
    type       TEXT    NOT NULL CHECK (type IN ('tops', 'bottoms', 'shoes', 'accessories')),
    image_url  TEXT    NOT NULL,
    times_worn INTEGER NOT NULL DEFAULT 0 CHECK (times_worn >= 0),
    created_at TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wardrobe_items_type
    ON wardrobe_items(type, created_at DESC, id DESC);

CREATE INDEX IF NOT EXISTS idx_wardrobe_items_created_at
    ON wardrobe_items(created_at DESC, id DESC);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
