package api

import (
	"net/http"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// OutfitHandler handles the in-memory outfit selection.
type OutfitHandler struct {
	Service *wardrobe.Service
	Outfit  *wardrobe.Outfit
}

// List handles GET /api/outfit.
func (h *OutfitHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Outfit.Items())
}

// Toggle handles POST /api/outfit/{id}.
func (h *OutfitHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	selected := h.Outfit.Toggle(*item)
	jsonResponse(w, http.StatusOK, map[string]any{
		"selected": selected,
		"items":    h.Outfit.Items(),
	})
}

// Remove handles DELETE /api/outfit/{id}.
func (h *OutfitHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if !h.Outfit.Remove(id) {
		jsonError(w, http.StatusNotFound, "item not in outfit")
		return
	}
	jsonResponse(w, http.StatusOK, h.Outfit.Items())
}

// Clear handles DELETE /api/outfit.
func (h *OutfitHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Outfit.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Wear handles POST /api/outfit/wear.
func (h *OutfitHandler) Wear(w http.ResponseWriter, r *http.Request) {
	if h.Outfit.Len() == 0 {
		jsonError(w, http.StatusBadRequest, "outfit is empty")
		return
	}

	worn, err := h.Service.WearOutfit(r.Context(), h.Outfit)
	if err != nil {
		serviceError(w, r, "wear outfit", err)
		return
	}
	jsonResponse(w, http.StatusOK, worn)
}
