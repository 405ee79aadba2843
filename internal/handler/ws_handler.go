package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/response"
	"github.com/stemsi/chemistry-web/internal/service"
	ws "github.com/stemsi/chemistry-web/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// quizViewTemplate is the partial rendered into every view frame.
const quizViewTemplate = "quiz_view"

// WSHandler runs the quiz command stream.
type WSHandler struct {
	quizService *service.QuizService
	tmpl        *template.Template
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler. tmpl must define quiz_view.
func NewWSHandler(quizService *service.QuizService, tmpl *template.Template, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		quizService: quizService,
		tmpl:        tmpl,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// QuizStream godoc
// WS /ws/v1/quiz/stream
// Each connection owns one quiz controller. Closing the connection drops
// the session.
func (h *WSHandler) QuizStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	connID := uuid.New().String()
	wsLog := h.log.With().Str("connection_id", connID).Logger()
	wsLog.Info().Msg("Quiz client connected")

	ctrl := h.quizService.NewController()

	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady, ConnectionID: connID}); err != nil {
		return
	}
	if err := h.writeView(conn, wsLog, ctrl.View()); err != nil {
		return
	}

	for {
		var msg ws.RequestPayload
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if isDecodeError(err) {
				if ws.WriteError(conn, string(response.ErrInvalidPayload), response.GetMessage(response.ErrInvalidPayload)) != nil {
					break
				}
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		if msg.Action == ws.ActionPing {
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			continue
		}

		before := ctrl.State()
		view, err := ctrl.Dispatch(msg.Command())
		if err != nil {
			code := quizErrCode(err)
			wsLog.Debug().Err(err).Str("action", string(msg.Action)).Msg("Rejected quiz command")
			ws.WriteError(conn, string(code), response.GetMessage(code))
			continue
		}

		if before == service.QuizAnswering && view.Review != nil {
			wsLog.Info().
				Str("bank_id", view.Review.BankID).
				Int("score", view.Review.Score).
				Int("total", view.Review.Total).
				Msg("Quiz submitted")
		}

		if err := h.writeView(conn, wsLog, view); err != nil {
			break
		}
	}
}

// writeView sends the view with its rendered fragment. A render failure
// still sends the structured view.
func (h *WSHandler) writeView(conn *websocket.Conn, log zerolog.Logger, view service.QuizView) error {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, quizViewTemplate, view); err != nil {
		log.Error().Err(err).Str("state", string(view.State)).Msg("Failed to render quiz view")
		buf.Reset()
	}
	return ws.WriteTyped(conn, ws.ViewResponse{Event: ws.EventView, View: view, HTML: buf.String()})
}

func quizErrCode(err error) response.ErrCode {
	switch {
	case errors.Is(err, service.ErrInvalidOption):
		return response.ErrInvalidOption
	case errors.Is(err, service.ErrUnknownAction):
		return response.ErrUnknownAction
	default:
		return response.ErrInternal
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	// A frame cut short mid-value surfaces as io.ErrUnexpectedEOF.
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
