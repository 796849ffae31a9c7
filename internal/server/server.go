package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"

	"github.com/code-ea/codeEditor-Live/internal/config"
	"github.com/code-ea/codeEditor-Live/internal/connection"
	"github.com/code-ea/codeEditor-Live/internal/metrics"
	"github.com/code-ea/codeEditor-Live/internal/relay"
	"github.com/code-ea/codeEditor-Live/internal/room"
	"github.com/code-ea/codeEditor-Live/internal/version"
)

// Server wires the hub to HTTP routes.
type Server struct {
	cfg     *config.RelayConfig
	hub     relay.Hub
	metrics *metrics.Metrics
	logger  *slog.Logger

	connCfg  connection.Config
	upgrader websocket.Upgrader
	router   chi.Router
}

// New creates a server. m may be nil, in which case /metrics is not mounted.
func New(cfg *config.RelayConfig, hub relay.Hub, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		hub:     hub,
		metrics: m,
		logger:  logger,
		connCfg: ConnectionConfig(cfg.Connections),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s
}

// ConnectionConfig converts the YAML connection section.
func ConnectionConfig(c config.ConnectionsConfig) connection.Config {
	return connection.Config{
		PingInterval:   c.PingInterval,
		PongWait:       c.PongWait,
		WriteTimeout:   c.WriteTimeout,
		MaxMessageSize: c.MaxMessageSize,
		SendBufferSize: c.SendBufferSize,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins(),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ws", s.handleWS)
	r.Get("/health", s.handleHealth)
	r.Get("/api/rooms", s.handleRooms)

	if s.metrics != nil && !s.cfg.Metrics.Disabled {
		r.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
	}

	return r
}

func (s *Server) allowedOrigins() []string {
	if len(s.cfg.Server.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.Server.AllowedOrigins
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients) and origins on the allow list.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range s.allowedOrigins() {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}

	s.logger.Warn("rejected websocket origin", "origin", origin)
	return false
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := connection.New(ws, s.connCfg, s.logger)
	if err := s.hub.Connect(c); err != nil {
		s.logger.Debug("connection refused", "conn_id", c.ID().String(), "error", err)
		ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server shutting down"),
			time.Now().Add(time.Second),
		)
		ws.Close()
		return
	}

	s.logger.Info("connection accepted",
		"conn_id", c.ID().String(),
		"remote_addr", c.RemoteAddr(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	c.Serve(s.hub)

	s.logger.Info("connection closed", "conn_id", c.ID().String())
}

type healthResponse struct {
	Status string       `json:"status"`
	Build  version.Info `json:"build"`
	Stats  relay.Stats  `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{
		Status: "ok",
		Build:  version.Get(),
		Stats:  s.hub.Stats(),
	})
}

type roomsResponse struct {
	Rooms []room.Summary `json:"rooms"`
	Total int            `json:"total"`
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.hub.Rooms()
	render.JSON(w, r, roomsResponse{Rooms: rooms, Total: len(rooms)})
}
