package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"study-quiz-service/internal/app"
	"study-quiz-service/internal/domain"
	"study-quiz-service/internal/logger"
)

// ProgressHandler serves a user's attempt history for a quiz as JSON.
type ProgressHandler struct {
	service *app.QuizService
	log     *logger.Logger
}

func NewProgressHandler(service *app.QuizService, log *logger.Logger) *ProgressHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProgressHandler{service: service, log: log}
}

func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	quizID := r.URL.Query().Get("quizId")
	userID := r.URL.Query().Get("userId")
	if quizID == "" || userID == "" {
		http.Error(w, "missing quizId or userId", http.StatusBadRequest)
		return
	}

	progress, err := h.service.Progress(r.Context(), userID, quizID)
	if errors.Is(err, domain.ErrProgressNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("load progress failed", "quizId", quizID, "userId", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(progress); err != nil {
		h.log.Warn("write progress failed", "error", err)
	}
}
