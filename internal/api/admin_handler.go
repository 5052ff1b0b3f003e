package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/admin"
)

const maxImageUploadBytes = 10 << 20 // 10MB

type AdminHandler struct {
	pipeline *admin.Pipeline
	timeout  time.Duration
}

func NewAdminHandler(pipeline *admin.Pipeline, timeout time.Duration) *AdminHandler {
	return &AdminHandler{pipeline: pipeline, timeout: timeout}
}

type CreateCategoryRequestDTO struct {
	Name string `json:"name"`
}

type SaveSettingsRequestDTO struct {
	Settings map[string]string `json:"settings"`
}

// GetState serves the first admin render; every mutation below responds
// with the same re-derived state, so the admin view never patches
// locally.
func (h *AdminHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.pipeline.Reload(ctx))
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateCategoryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	state, err := h.pipeline.CreateCategory(ctx, req.Name)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, state)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "category_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be a positive integer")
		return
	}

	state, err := h.pipeline.DeleteCategory(ctx, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	in, cleanup, err := itemInputFromForm(r)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	defer cleanup()

	state, err := h.pipeline.CreateItem(ctx, *in)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, state)
}

func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "item_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	in, cleanup, err := itemInputFromForm(r)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	defer cleanup()

	state, err := h.pipeline.UpdateItem(ctx, id, *in)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "item_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	state, err := h.pipeline.DeleteItem(ctx, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (h *AdminHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SaveSettingsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(req.Settings) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "settings must not be empty")
		return
	}

	state, err := h.pipeline.SaveSettings(ctx, req.Settings)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// itemInputFromForm parses the multipart item form. Field validation
// that needs typed values (price, category) happens here so a malformed
// write never reaches the store; the pipeline re-validates semantics.
func itemInputFromForm(r *http.Request) (*admin.ItemInput, func(), error) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		return nil, nil, &admin.ValidationError{Field: "form", Reason: "invalid multipart form"}
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return nil, nil, &admin.ValidationError{Field: "price", Reason: "must be a number"}
	}
	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		return nil, nil, &admin.ValidationError{Field: "category_id", Reason: "must be a number"}
	}

	in := &admin.ItemInput{
		Name:        r.FormValue("name"),
		Price:       price,
		CategoryID:  categoryID,
		IsNonVeg:    r.FormValue("is_non_veg") == "true",
		IsAvailable: r.FormValue("is_available") == "true",
		Description: r.FormValue("description"),
	}

	cleanup := func() {}
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		in.Image = &admin.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		}
		cleanup = func() { file.Close() }
	case errors.Is(err, http.ErrMissingFile):
		// No new image supplied; existing image_path is preserved.
	default:
		return nil, nil, &admin.ValidationError{Field: "image", Reason: "invalid image upload"}
	}

	return in, cleanup, nil
}
