package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"

	appconfig "pokerledger-server/internal/config"
	"pokerledger-server/internal/jwt"
	"pokerledger-server/pkg/session"
)

type ctxKey int

const ctxSessionKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	manager *session.Manager

	// store for testing purposes
	hostRouter *gmux.Router
}

type config struct {
	baseURL    string
	minPlayers int
	maxPlayers int
	smallBlind int
	bigBlind   int
}

// NewMux returns a new HTTP mux
func NewMux(version string, manager *session.Manager) *Mux {
	cfg := appconfig.Instance()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		manager: manager,
		config: config{
			baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
			minPlayers: cfg.Game.MinPlayers,
			maxPlayers: cfg.Game.MaxPlayers,
			smallBlind: cfg.Game.DefaultSmallBlind,
			bigBlind:   cfg.Game.DefaultBigBlind,
		},
	}

	// open endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
		r.Methods(http.MethodGet).Path("/invite/{code}").Handler(this.getInviteCode())
	}

	gr := this.Router.PathPrefix("/game/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	gr.Use(this.gameMiddleware)

	// viewing and joining need no token; the invite link is the only gate
	gr.Methods(http.MethodGet).Path("").Handler(this.getGameUUID())
	gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameUUIDWS())
	gr.Methods(http.MethodPost).Path("/join").Handler(this.postGameUUIDJoin())

	// commands require the host token issued at game creation
	this.hostRouter = gr.NewRoute().Subrouter()
	this.hostRouter.Use(this.hostAuthMiddleware)
	this.hostRouter.Methods(http.MethodPost).Path("/action").Handler(this.postGameUUIDAction())
	this.hostRouter.Methods(http.MethodDelete).Path("").Handler(this.deleteGameUUID())

	return this
}

func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		s, err := m.manager.Get(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSessionKey, s)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// hostAuthMiddleware requires gameMiddleware to execute first
func (m *Mux) hostAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		gameID, err := jwt.ValidGameID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		s := r.Context().Value(ctxSessionKey).(*session.Session)
		if gameID != s.GameID() {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
