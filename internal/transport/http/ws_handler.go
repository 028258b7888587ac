package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"study-quiz-service/internal/app"
	"study-quiz-service/internal/logger"
)

type WSHandler struct {
	service  *app.QuizService
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *logger.Logger) *WSHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

type timeUpPayload struct {
	SessionID string `json:"sessionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one attempt at a time
// for the connecting user. A "retake" starts a fresh attempt on the same socket.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	userID := r.URL.Query().Get("userId")
	if quizID == "" || userID == "" {
		http.Error(w, "missing quizId or userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	log := h.log.With("quizId", quizID, "userId", userID)

	current, err := h.service.StartAttempt(ctx, quizID, userID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID := current.SessionID
	defer func() {
		if sessionID != "" {
			h.service.Abandon(ctx, sessionID, userID)
		}
	}()

	send := make(chan outboundMessage[any], 16)
	arms := make(chan timeUpPayload, 1)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	timerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		writeLoop(conn, send, log)
	}()

	go func() {
		defer close(timerDone)
		h.runTimer(arms, send, closeSignals, time.Duration(current.TimeLimitMinutes)*time.Minute)
	}()

	send <- outboundMessage[any]{Type: "started", Payload: current}
	arms <- timeUpPayload{SessionID: sessionID}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			feedback, err := h.service.SubmitAnswer(ctx, sessionID, userID, payload.QuestionID, payload.Value)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: feedback}
		case "finish":
			outcome, err := h.service.Finish(ctx, sessionID, userID)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			sessionID = ""
			send <- outboundMessage[any]{Type: "finished", Payload: outcome}
		case "retake":
			if sessionID != "" {
				h.service.Abandon(ctx, sessionID, userID)
				sessionID = ""
			}
			next, err := h.service.StartAttempt(ctx, quizID, userID)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			sessionID = next.SessionID
			send <- outboundMessage[any]{Type: "started", Payload: next}
			arms <- timeUpPayload{SessionID: sessionID}
		case "progress":
			progress, err := h.service.Progress(ctx, userID, quizID)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "progress", Payload: progress}
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(closeSignals)
	<-timerDone
	close(send)
	<-writerDone
}

type jsonConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// writeLoop is the connection's only writer; gorilla connections do not support
// concurrent writes. After a failed write it closes conn, which fails the
// pending read, and keeps draining send until the handler closes it.
func writeLoop(conn jsonConn, send <-chan outboundMessage[any], log *logger.Logger) {
	broken := false
	for msg := range send {
		if broken {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn("ws write error", "error", err)
			broken = true
			_ = conn.Close()
		}
	}
}

// runTimer emits a "timeUp" event when the quiz time budget of the most recently
// armed session elapses. A zero limit disables it.
func (h *WSHandler) runTimer(arms <-chan timeUpPayload, send chan<- outboundMessage[any], closeSignals <-chan struct{}, limit time.Duration) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending timeUpPayload
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
		fire = nil
	}
	defer stop()

	for {
		select {
		case p := <-arms:
			stop()
			if limit <= 0 {
				continue
			}
			pending = p
			timer = time.NewTimer(limit)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case send <- outboundMessage[any]{Type: "timeUp", Payload: pending}:
			case <-closeSignals:
				return
			}
		case <-closeSignals:
			return
		}
	}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
