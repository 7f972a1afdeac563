package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/garderoba/internal/model"
)

// timeLayout is fixed width so text order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const itemColumns = `id, item_name, type, image_url, times_worn, created_at`

// itemRow mirrors a wardrobe_items row.
type itemRow struct {
	ID        int64  `db:"id"`
	ItemName  string `db:"item_name"`
	Type      string `db:"type"`
	ImageURL  string `db:"image_url"`
	TimesWorn int64  `db:"times_worn"`
	CreatedAt string `db:"created_at"`
}

func (r itemRow) toModel() (model.WardrobeItem, error) {
	createdAt, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return model.WardrobeItem{}, fmt.Errorf("parsing created_at of item %d: %w", r.ID, err)
	}
	return model.WardrobeItem{
		ID:        r.ID,
		ItemName:  r.ItemName,
		Type:      model.Category(r.Type),
		ImageURL:  r.ImageURL,
		TimesWorn: r.TimesWorn,
		CreatedAt: createdAt,
	}, nil
}

func rowsToModels(rows []itemRow) ([]model.WardrobeItem, error) {
	items := make([]model.WardrobeItem, 0, len(rows))
	for _, r := range rows {
		item, err := r.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// AddItem creates a new item with times_worn 0 and created_at set to now.
func (s *Store) AddItem(ctx context.Context, name string, category model.Category, imageURL string) (*model.WardrobeItem, error) {
	name, err := model.NormalizeItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, category)
	}
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image url must not be empty", ErrValidation)
	}

	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	// created_at never drops below the newest stored value, so a clock
	// stepping backwards cannot sort a new item behind older ones.
	createdAt := s.now().UTC().Format(timeLayout)
	result, err := database.ExecContext(ctx,
		`INSERT INTO wardrobe_items (item_name, type, image_url, times_worn, created_at)
		 VALUES (?, ?, ?, 0, MAX(?, COALESCE((SELECT MAX(created_at) FROM wardrobe_items), '')))`,
		name, string(category), imageURL, createdAt,
	)
	if err != nil {
		return nil, storageErr("creating item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageErr("getting item id", err)
	}

	item, err := getItem(ctx, database, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("item added", "id", item.ID, "type", item.Type)
	return item, nil
}

// GetAllItems returns every item, newest first.
func (s *Store) GetAllItems(ctx context.Context) ([]model.WardrobeItem, error) {
	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	var rows []itemRow
	err = database.SelectContext(ctx, &rows,
		`SELECT `+itemColumns+` FROM wardrobe_items
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, storageErr("listing items", err)
	}

	items, err := rowsToModels(rows)
	if err != nil {
		return nil, storageErr("listing items", err)
	}
	return items, nil
}

// GetItemsByCategory returns the items of one category, newest first.
func (s *Store) GetItemsByCategory(ctx context.Context, category model.Category) ([]model.WardrobeItem, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, category)
	}

	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	var rows []itemRow
	err = database.SelectContext(ctx, &rows,
		`SELECT `+itemColumns+` FROM wardrobe_items INDEXED BY idx_wardrobe_items_type
		 WHERE type = ?
		 ORDER BY created_at DESC, id DESC`, string(category),
	)
	if err != nil {
		return nil, storageErr("listing items by category", err)
	}

	items, err := rowsToModels(rows)
	if err != nil {
		return nil, storageErr("listing items by category", err)
	}
	return items, nil
}

// GetItemByID returns an item by ID.
func (s *Store) GetItemByID(ctx context.Context, id int64) (*model.WardrobeItem, error) {
	database, err := s.handle()
	if err != nil {
		return nil, err
	}
	return getItem(ctx, database, id)
}

// UpdateItem changes the name and/or category of an item. Other fields are
// never touched.
func (s *Store) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.WardrobeItem, error) {
	var name string
	if update.Name != nil {
		n, err := model.NormalizeItemName(*update.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		name = n
	}
	if update.Category != nil && !update.Category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, *update.Category)
	}

	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	tx, err := database.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	current, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return current, nil
	}

	if update.Name != nil {
		current.ItemName = name
	}
	if update.Category != nil {
		current.Type = *update.Category
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wardrobe_items SET item_name = ?, type = ? WHERE id = ?`,
		current.ItemName, string(current.Type), id,
	)
	if err != nil {
		return nil, storageErr("updating item", err)
	}

	updated, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr("committing item update", err)
	}

	s.log.Info("item updated", "id", id)
	return updated, nil
}

// IncrementTimesWorn adds one wear to an item. Concurrent calls for the same
// id are serialized and each one is applied.
func (s *Store) IncrementTimesWorn(ctx context.Context, id int64) (*model.WardrobeItem, error) {
	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	tx, err := database.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr("beginning transaction", err)
	}
	defer tx.Rollback()

	current, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wardrobe_items SET times_worn = ? WHERE id = ?`,
		current.TimesWorn+1, id,
	)
	if err != nil {
		return nil, storageErr("incrementing times worn", err)
	}

	updated, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr("committing times worn", err)
	}

	s.log.Debug("item worn", "id", id, "times_worn", updated.TimesWorn)
	return updated, nil
}

// DeleteItem permanently removes an item. Deleting a missing id returns
// ErrNotFound.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	database, err := s.handle()
	if err != nil {
		return err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	result, err := database.ExecContext(ctx, `DELETE FROM wardrobe_items WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting item", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return storageErr("deleting item", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	s.log.Info("item deleted", "id", id)
	return nil
}

// CountByCategory returns the number of items in each category. Every
// category is present in the result.
func (s *Store) CountByCategory(ctx context.Context) (map[model.Category]int, error) {
	database, err := s.handle()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Type  string `db:"type"`
		Count int    `db:"count"`
	}
	err = database.SelectContext(ctx, &rows,
		`SELECT type, COUNT(*) AS count FROM wardrobe_items GROUP BY type`,
	)
	if err != nil {
		return nil, storageErr("counting items", err)
	}

	counts := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		counts[c] = 0
	}
	for _, r := range rows {
		counts[model.Category(r.Type)] = r.Count
	}
	return counts, nil
}

// getItem reads one item through either the database or a transaction.
func getItem(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.WardrobeItem, error) {
	var row itemRow
	err := sqlx.GetContext(ctx, q, &row,
		`SELECT `+itemColumns+` FROM wardrobe_items WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr("getting item", err)
	}

	item, err := row.toModel()
	if err != nil {
		return nil, storageErr("getting item", err)
	}
	return &item, nil
}
