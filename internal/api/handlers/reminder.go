package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mika/reminders-web/internal/api/middleware"
	"github.com/mika/reminders-web/internal/dateutil"
	"github.com/mika/reminders-web/internal/domain"
	"github.com/mika/reminders-web/internal/service"
	"gorm.io/gorm"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
	dates           *dateutil.Normalizer
}

func NewReminderHandler(reminderService *service.ReminderService, dates *dateutil.Normalizer) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		dates:           dates,
	}
}

type CreateReminderRequest struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

// UpdateReminderRequest carries a partial update; absent fields stay
// untouched.
type UpdateReminderRequest struct {
	Text *string `json:"text"`
	Date *string `json:"date"`
}

type ReminderResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
}

type CreateReminderResponse struct {
	ID string `json:"id"`
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := dateutil.ParseDisplay(req.Date)
	if err != nil {
		http.Error(w, "Date must be a valid YYYY-MM-DD value", http.StatusBadRequest)
		return
	}

	id, err := h.reminderService.Create(r.Context(), userID, service.CreateReminderInput{
		Text: req.Text,
		Date: date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create reminder", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CreateReminderResponse{ID: id.String()})
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reminders, err := h.reminderService.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to list reminders", http.StatusInternalServerError)
		return
	}

	resp := make([]ReminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		resp = append(resp, ReminderResponse{
			ID:   rem.ID.String(),
			Text: rem.Text,
			Date: h.dates.Display(dateutil.Native{Time: rem.Date}),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	var req UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.UpdateReminderInput{Text: req.Text}
	if req.Date != nil {
		date, err := dateutil.ParseDisplay(*req.Date)
		if err != nil {
			http.Error(w, "Date must be a valid YYYY-MM-DD value", http.StatusBadRequest)
			return
		}
		input.Date = &date
	}

	if err := h.reminderService.Update(r.Context(), userID, id, input); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Reminder not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to update reminder", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	if err := h.reminderService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to delete reminder", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
