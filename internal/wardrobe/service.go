// Package wardrobe turns raw uploads into store calls and keeps the transient
// outfit selection.
package wardrobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/validate"
)

// ErrEncoding indicates an uploaded image could not be turned into a storable
// data URL. No item is created.
var ErrEncoding = errors.New("image encoding failed")

// ItemStore is the persistence contract the service depends on.
type ItemStore interface {
	AddItem(ctx context.Context, name string, category model.Category, imageURL string) (*model.WardrobeItem, error)
	GetAllItems(ctx context.Context) ([]model.WardrobeItem, error)
	GetItemsByCategory(ctx context.Context, category model.Category) ([]model.WardrobeItem, error)
	GetItemByID(ctx context.Context, id int64) (*model.WardrobeItem, error)
	UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.WardrobeItem, error)
	IncrementTimesWorn(ctx context.Context, id int64) (*model.WardrobeItem, error)
	DeleteItem(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context) (map[model.Category]int, error)
}

// Upload is a raw add-item submission.
type Upload struct {
	Name     string `json:"name" validate:"required,itemname"`
	Category string `json:"category" validate:"required,category"`
	Image    []byte `json:"-"`
	MIME     string `json:"-"`
}

// Service is the boundary between raw input and the item store.
type Service struct {
	store ItemStore
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService returns a Service backed by itemStore.
func NewService(itemStore ItemStore, opts ...Option) *Service {
	s := &Service{store: itemStore, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem validates an upload, encodes its image as a data URL and stores it.
func (s *Service) AddItem(ctx context.Context, upload Upload) (*model.WardrobeItem, error) {
	if err := validate.Struct(upload); err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrValidation, validate.Summary(err))
	}

	imageURL, err := encodeImage(upload.Image, upload.MIME)
	if err != nil {
		s.log.WarnContext(ctx, "rejected upload image", "mime", upload.MIME, "size", len(upload.Image), "error", err)
		return nil, err
	}

	return s.store.AddItem(ctx, upload.Name, model.Category(upload.Category), imageURL)
}

// encodeImage normalizes raw image bytes and returns them as a data URL.
// A declared MIME type, when present, must be an image type.
func encodeImage(data []byte, declared string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image is missing", ErrEncoding)
	}
	if declared != "" && !strings.HasPrefix(declared, "image/") {
		return "", fmt.Errorf("%w: declared type %q is not an image", ErrEncoding, declared)
	}

	result, err := imaging.Process(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return imaging.EncodeDataURL(result.MIME, result.Data), nil
}

// UpdateItem renames and recategorizes an item.
func (s *Service) UpdateItem(ctx context.Context, id int64, name, category string) (*model.WardrobeItem, error) {
	c, err := model.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrValidation, err)
	}
	return s.store.UpdateItem(ctx, id, model.ItemUpdate{Name: &name, Category: &c})
}

// IncrementTimesWorn records one wear of an item.
func (s *Service) IncrementTimesWorn(ctx context.Context, id int64) (*model.WardrobeItem, error) {
	return s.store.IncrementTimesWorn(ctx, id)
}

// GetAllItems returns every item, newest first.
func (s *Service) GetAllItems(ctx context.Context) ([]model.WardrobeItem, error) {
	return s.store.GetAllItems(ctx)
}

// GetItemsByCategory returns the items of one category, newest first.
func (s *Service) GetItemsByCategory(ctx context.Context, category string) ([]model.WardrobeItem, error) {
	c, err := model.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrValidation, err)
	}
	return s.store.GetItemsByCategory(ctx, c)
}

// GetItemByID returns a single item.
func (s *Service) GetItemByID(ctx context.Context, id int64) (*model.WardrobeItem, error) {
	return s.store.GetItemByID(ctx, id)
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.store.DeleteItem(ctx, id)
}

// CountByCategory returns the number of items per category.
func (s *Service) CountByCategory(ctx context.Context) (map[model.Category]int, error) {
	return s.store.CountByCategory(ctx)
}

// ItemImage returns the decoded image of an item.
func (s *Service) ItemImage(ctx context.Context, id int64) ([]byte, string, error) {
	item, err := s.store.GetItemByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, mime, err := imaging.DecodeDataURL(item.ImageURL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: item %d: %w", ErrEncoding, id, err)
	}
	return data, mime, nil
}

// WearOutfit records one wear of every selected item, in selection order, and
// refreshes the outfit with the updated records. It stops at the first failure
// and returns the items worn so far.
func (s *Service) WearOutfit(ctx context.Context, outfit *Outfit) ([]model.WardrobeItem, error) {
	selected := outfit.Items()
	worn := make([]model.WardrobeItem, 0, len(selected))

	for _, item := range selected {
		updated, err := s.store.IncrementTimesWorn(ctx, item.ID)
		if err != nil {
			return worn, fmt.Errorf("wearing item %d: %w", item.ID, err)
		}
		outfit.Refresh(*updated)
		worn = append(worn, *updated)
	}

	s.log.InfoContext(ctx, "outfit worn", "items", len(worn))
	return worn, nil
}
