package http

import (
	"net/http"

	"github.com/cwrk-planet/chat-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	AllowedOrigins []string // пусто — разрешены любые источники (поведение go-chi/cors по умолчанию)
	StaticDir      string   // пусто — статика не раздаётся
}

func NewRouter(h *Handler, wsServer *ws.Server, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	}))

	// WS endpoint
	r.Get("/ws", wsServer.HandleWS)

	r.Route("/rooms", func(rm chi.Router) {
		rm.Get("/", h.ListRooms)

		rm.Route("/{name}", func(rr chi.Router) {
			rr.Get("/members", h.GetMembers)
			rr.Get("/messages", h.GetMessages)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.StaticDir != "" {
		mountStatic(r, cfg.StaticDir)
	}

	return r
}
