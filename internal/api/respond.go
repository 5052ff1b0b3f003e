package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/admin"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/basket"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/checkout"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/store"
	"github.com/go-chi/chi/v5"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError maps taxonomy errors to HTTP responses. Every error
// is recovered here into a user-facing message; nothing crashes the
// process, and anything unrecognized is treated as a store outage.
func handleDomainError(w http.ResponseWriter, err error) {
	var vErr *admin.ValidationError

	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, "validation_error", vErr.Error())
	case errors.Is(err, basket.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", "this item is no longer available")
	case errors.Is(err, basket.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "line_not_found", "this item is not in your basket")
	case errors.Is(err, checkout.ErrEmptyBasket):
		respondError(w, http.StatusBadRequest, "empty_basket", "your basket is empty")
	case errors.Is(err, checkout.ErrShopClosed):
		respondError(w, http.StatusConflict, "shop_closed", "sorry, the shop just closed, please try again later")
	case errors.Is(err, admin.ErrImageUploadFailed):
		respondError(w, http.StatusBadGateway, "image_upload_failed", "image upload failed, nothing was saved")
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "record not found")
	default:
		log.Printf("store error: %v", err)
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", "the store is temporarily unavailable")
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
