package api

import (
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/validate"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ItemsHandler handles wardrobe item endpoints.
type ItemsHandler struct {
	Service        *wardrobe.Service
	Outfit         *wardrobe.Outfit
	MaxUploadBytes int64
}

type updateItemRequest struct {
	Name     string `json:"name" validate:"required,itemname"`
	Category string `json:"category" validate:"required,category"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []model.WardrobeItem
		err   error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		items, err = h.Service.GetItemsByCategory(r.Context(), category)
	} else {
		items, err = h.Service.GetAllItems(r.Context())
	}
	if err != nil {
		serviceError(w, r, "list items", err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items (multipart: name, category, image).
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	upload := wardrobe.Upload{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}

	// A missing file is left to the service, which reports it as an encoding error.
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "failed to read image")
			return
		}
		upload.Image = data
		upload.MIME = header.Header.Get("Content-Type")
	} else if !errors.Is(err, http.ErrMissingFile) {
		jsonError(w, http.StatusBadRequest, "invalid image field")
		return
	}

	item, err := h.Service.AddItem(r.Context(), upload)
	if err != nil {
		serviceError(w, r, "create item", err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.Service.GetItemByID(r.Context(), id)
	if err != nil {
		serviceError(w, r, "get item", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validate.FormatErrors(err),
		})
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), id, req.Name, req.Category)
	if err != nil {
		serviceError(w, r, "update item", err)
		return
	}
	h.Outfit.Refresh(*item)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Service.DeleteItem(r.Context(), id); err != nil {
		serviceError(w, r, "delete item", err)
		return
	}
	h.Outfit.Remove(id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Wear handles POST /api/items/{id}/wear.
func (h *ItemsHandler) Wear(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.Service.IncrementTimesWorn(r.Context(), id)
	if err != nil {
		serviceError(w, r, "record wear", err)
		return
	}
	h.Outfit.Refresh(*item)
	jsonResponse(w, http.StatusOK, item)
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := h.Service.ItemImage(r.Context(), id)
	if err != nil {
		serviceError(w, r, "get image", err)
		return
	}

	sum := blake2b.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Write(data)
}

// Categories handles GET /api/categories.
func (h *ItemsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.CountByCategory(r.Context())
	if err != nil {
		serviceError(w, r, "count items", err)
		return
	}

	type categoryCount struct {
		Category model.Category `json:"category"`
		Count    int            `json:"count"`
	}
	out := make([]categoryCount, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, categoryCount{Category: c, Count: counts[c]})
	}
	jsonResponse(w, http.StatusOK, out)
}

// etagMatches reports whether an If-None-Match header names etag. The header
// may list several tags and use weak comparison.
func etagMatches(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}
