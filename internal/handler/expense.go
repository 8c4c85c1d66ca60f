package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outlay/outlay/internal/auth"
	"github.com/outlay/outlay/internal/handler/dto"
	"github.com/outlay/outlay/internal/service"
)

// ExpenseHandler handles HTTP requests for expense operations.
// Every operation is scoped to the identity the auth middleware resolved;
// the owner is never taken from the request payload.
type ExpenseHandler struct {
	svc    *service.ExpenseService
	logger *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	if ownerID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	expenses, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToExpenseListResponse(expenses))
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	if ownerID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	expense, err := h.svc.Create(r.Context(), ownerID, service.CreateExpenseInput{
		Title:  req.Title,
		Amount: req.Amount,
		Date:   req.Date,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_created",
		"expense_id", expense.ID,
		"owner_id", expense.OwnerID,
	)

	writeJSON(w, http.StatusOK, dto.ToExpenseResponse(expense))
}

// Update handles PUT /api/expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	if ownerID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Expense ID is required")
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	expense, err := h.svc.Update(r.Context(), ownerID, id, service.UpdateExpenseInput{
		Title:  req.Title,
		Amount: req.Amount,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_updated",
		"expense_id", expense.ID,
		"owner_id", expense.OwnerID,
	)

	writeJSON(w, http.StatusOK, dto.ToExpenseResponse(expense))
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	if ownerID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Expense ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("expense_deleted",
		"expense_id", id,
		"owner_id", ownerID,
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Expense deleted"})
}

// handleServiceError maps expense service errors to HTTP responses.
func (h *ExpenseHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		// Absent and not-owned records are deliberately indistinguishable.
		h.writeError(w, http.StatusNotFound, "EXPENSE_NOT_FOUND", "Expense not found")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// writeError writes an error response.
func (h *ExpenseHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
