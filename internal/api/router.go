package api

import (
	"context"
	"net/http"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// DefaultMaxUploadBytes limits image uploads when no other limit is set.
const DefaultMaxUploadBytes = 10 << 20

// Pinger reports whether the backing store is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(svc *wardrobe.Service, outfit *wardrobe.Outfit, pinger Pinger, maxUploadBytes int64) http.Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}

	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Service: svc, Outfit: outfit, MaxUploadBytes: maxUploadBytes}
	outfitHandler := &OutfitHandler{Service: svc, Outfit: outfit}

	mux.HandleFunc("GET /healthz", healthHandler(pinger))

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("POST /api/items/{id}/wear", itemsHandler.Wear)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetImage)
	mux.HandleFunc("GET /api/categories", itemsHandler.Categories)

	// Today's outfit (in memory only).
	mux.HandleFunc("GET /api/outfit", outfitHandler.List)
	mux.HandleFunc("DELETE /api/outfit", outfitHandler.Clear)
	mux.HandleFunc("POST /api/outfit/wear", outfitHandler.Wear)
	mux.HandleFunc("POST /api/outfit/{id}", outfitHandler.Toggle)
	mux.HandleFunc("DELETE /api/outfit/{id}", outfitHandler.Remove)

	return mux
}

// healthHandler handles GET /healthz.
func healthHandler(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(r.Context()); err != nil {
			jsonError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
