package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/basket"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/catalog"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/checkout"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/settings"
)

type StorefrontHandler struct {
	loader   *catalog.Loader
	settings *settings.Cache
	gate     *checkout.Gate
	timeout  time.Duration
}

func NewStorefrontHandler(loader *catalog.Loader, cache *settings.Cache, gate *checkout.Gate, timeout time.Duration) *StorefrontHandler {
	return &StorefrontHandler{
		loader:   loader,
		settings: cache,
		gate:     gate,
		timeout:  timeout,
	}
}

type MenuResponseDTO struct {
	Categories []domain.Category `json:"categories"`
	Items      []domain.MenuItem `json:"items"`
}

type ShopResponseDTO struct {
	ShopOpen bool   `json:"shop_open"`
	Phone    string `json:"phone"`
	UPIID    string `json:"upi_id"`
}

type AddItemRequestDTO struct {
	ItemID int64 `json:"item_id"`
}

type ChangeQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type BasketResponseDTO struct {
	Lines        []basket.Line `json:"lines"`
	LineCount    int           `json:"line_count"`
	ItemCount    int           `json:"item_count"`
	Total        float64       `json:"total"`
	TotalDisplay string        `json:"total_display"`
}

// GetMenu loads the storefront catalog and installs it as the session's
// basket snapshot, so later AddItem calls resolve against what the
// customer is actually looking at.
func (h *StorefrontHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, items := h.loader.LoadStorefront(ctx)

	if s := sessionFromContext(r.Context()); s != nil {
		s.RefreshCatalog(items)
	}

	respondJSON(w, http.StatusOK, MenuResponseDTO{
		Categories: categories,
		Items:      items,
	})
}

func (h *StorefrontHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snap := h.settings.Load(ctx)
	respondJSON(w, http.StatusOK, ShopResponseDTO{
		ShopOpen: snap.ShopOpen(),
		Phone:    snap.Phone(),
		UPIID:    snap.UPIID(),
	})
}

func (h *StorefrontHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, basketView(s))
}

func (h *StorefrontHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be positive")
		return
	}

	if err := s.AddItem(req.ItemID); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, basketView(s))
}

func (h *StorefrontHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	itemID, err := parseIDParam(r, "item_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	var req ChangeQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "invalid_delta", "delta must not be zero")
		return
	}

	if err := s.ChangeQuantity(itemID, req.Delta); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, basketView(s))
}

// Checkout runs the gate against a fresh shop status and returns the
// WhatsApp deep link. On success the basket is cleared for the next
// order; the order itself is not persisted anywhere.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s := sessionFromContext(r.Context())

	order, err := h.gate.Checkout(ctx, s)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	s.Clear()
	respondJSON(w, http.StatusOK, order)
}

func basketView(s checkout.Basket) BasketResponseDTO {
	lines, total := s.Snapshot()
	itemCount := 0
	for _, line := range lines {
		itemCount += line.Quantity
	}
	return BasketResponseDTO{
		Lines:        lines,
		LineCount:    len(lines),
		ItemCount:    itemCount,
		Total:        total,
		TotalDisplay: fmt.Sprintf("₹%.2f", total),
	}
}
