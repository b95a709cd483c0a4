package expenses

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/financas-go/apperror"
	"github.com/user/financas-go/auth"
)

// Handlers exposes the expense service over HTTP. All routes require an
// authenticated caller.
type Handlers struct {
	service *Service
}

// NewHandlers creates a Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the expense routes on router.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Post("/", h.handleCreate)
	router.Get("/", h.handleList)
	router.Get("/{id}", h.handleGetByID)
	router.Put("/{id}", h.handleUpdate)
	router.Delete("/{id}", h.handleDelete)
}

// validate checks the shape of an expense request before any service call.
func (req *ExpenseRequest) validate() error {
	if req.Description == "" {
		return apperror.NewValidationError("description is required", nil)
	}
	if req.Amount == nil {
		return apperror.NewValidationError("amount is required", nil)
	}
	if *req.Amount < 0 {
		return apperror.NewValidationError("amount must not be negative", nil)
	}
	if req.Date == nil {
		return apperror.NewValidationError("date is required", nil)
	}
	if req.CategoryID == 0 {
		return apperror.NewValidationError("category_id is required", nil)
	}
	return nil
}

// handleCreate godoc
// @Summary Create expense
// @Description Records an expense. A category the caller is not linked to yet is linked automatically.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expenseBody body expenses.ExpenseRequest true "Expense fields"
// @Success 201 {object} expenses.Expense
// @Failure 400 {object} apperror.ErrorResponse "Invalid input or unknown category"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/expenses [post]
func (h *Handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := req.validate(); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	expense, err := h.service.Create(r.Context(), req, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, expense)
}

// handleList godoc
// @Summary List expenses
// @Description Lists the caller's expenses, most recent date first.
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} expenses.Expense
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/expenses [get]
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

// handleGetByID godoc
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense id"
// @Success 200 {object} expenses.Expense
// @Failure 403 {object} apperror.ErrorResponse "Expense belongs to another user"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/expenses/{id} [get]
func (h *Handlers) handleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	id, err := parseID(r)
	if err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid expense id", err))
		return
	}

	expense, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, expense)
}

// handleUpdate godoc
// @Summary Update expense
// @Description Rewrites an expense. The new category must already be linked to the caller.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense id"
// @Param expenseBody body expenses.ExpenseRequest true "Expense fields"
// @Success 200 {object} expenses.Expense
// @Failure 400 {object} apperror.ErrorResponse "Invalid input or category not linked to caller"
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/expenses/{id} [put]
func (h *Handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	id, err := parseID(r)
	if err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid expense id", err))
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := req.validate(); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	expense, err := h.service.Update(r.Context(), id, req, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, expense)
}

// handleDelete godoc
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense id"
// @Success 200 {object} expenses.MessageResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/expenses/{id} [delete]
func (h *Handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
		return
	}

	id, err := parseID(r)
	if err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("invalid expense id", err))
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, MessageResponse{Message: "expense removed successfully"})
}

func parseID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
