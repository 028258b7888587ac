package http

import (
	"net/http"

	"study-quiz-service/internal/app"
	"study-quiz-service/internal/logger"
)

// NewRouter wires the service endpoints.
func NewRouter(service *app.QuizService, log *logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", NewWSHandler(service, log).ServeWS)
	mux.Handle("/progress", NewProgressHandler(service, log))
	return mux
}
