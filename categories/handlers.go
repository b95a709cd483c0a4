package categories

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/financas-go/apperror"
	"github.com/user/financas-go/auth"
)

// Handlers exposes the category service over HTTP. All routes require an
// authenticated caller; the user id comes from the request context.
type Handlers struct {
	service *Service
}

// NewHandlers creates a Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the category routes on router.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Post("/", h.handleCreate)
	router.Get("/", h.handleList)
	router.Put("/{id}", h.handleUpdate)
	router.Delete("/{id}", h.handleDelete)
}

// handleCreate godoc
// @Summary Create category
// @Description Creates a globally unique category and links it to the caller.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryBody body categories.CreateCategoryRequest true "Category name"
// @Success 201 {object} categories.Category
// @Failure 400 {object} apperror.ErrorResponse "Missing name or name already exists"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/categories [post]
func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.Name == "" {
		auth.WriteError(w, r, apperror.NewValidationError("name is required", nil))
		return
	}

	category, err := h.service.Create(r.Context(), req.Name, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, category)
}

// handleList godoc
// @Summary List categories
// @Description Lists the categories linked to the caller, ordered by name.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} categories.Category
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/categories [get]
func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, result)
}

// handleUpdate godoc
// @Summary Rename category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category id"
// @Param categoryBody body categories.UpdateCategoryRequest true "New name"
// @Success 200 {object} categories.Category
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Caller holds no link to the category"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/categories/{id} [put]
func (h *Handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	id, err := parseID(r)
	if err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid category id", err))
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.Name == "" {
		auth.WriteError(w, r, apperror.NewValidationError("name is required", nil))
		return
	}

	category, err := h.service.Update(r.Context(), id, req.Name, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, category)
}

// handleDelete godoc
// @Summary Delete category
// @Description Removes a non-default category and all its user links.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category id"
// @Success 200 {object} categories.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse "Category is part of the default set"
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *Handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	id, err := parseID(r)
	if err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid category id", err))
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, MessageResponse{Message: "category removed successfully"})
}

func parseID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
