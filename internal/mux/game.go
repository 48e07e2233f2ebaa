package mux

import (
	"errors"
	"fmt"
	"net/http"

	gmux "github.com/gorilla/mux"

	"pokerledger-server/internal/jwt"
	"pokerledger-server/pkg/game"
	"pokerledger-server/pkg/session"
)

type postGamePayload struct {
	Players            []game.Seat `json:"players"`
	SmallBlind         int         `json:"smallBlind"`
	BigBlind           int         `json:"bigBlind"`
	AllowAnonymousJoin bool        `json:"allowAnonymousJoin"`
}

// gameDetailsResponse is the snapshot plus the derived facts every client
// wants alongside it
type gameDetailsResponse struct {
	Game         *game.State `json:"game"`
	ShareURL     string      `json:"shareUrl"`
	Pot          int         `json:"pot"`
	RoundLabel   string      `json:"roundLabel"`
	Instructions string      `json:"instructions"`
}

type postGameResponse struct {
	gameDetailsResponse
	HostToken string `json:"hostToken"`
}

func (m *Mux) gameDetails(state *game.State) gameDetailsResponse {
	return gameDetailsResponse{
		Game:         state,
		ShareURL:     fmt.Sprintf("%s/join/%s", m.config.baseURL, state.InviteCode),
		Pot:          game.TotalPot(state.Players),
		RoundLabel:   game.RoundLabel(state.CurrentRound),
		Instructions: game.NextActionInstructions(state, game.ActivePlayers(state)),
	}
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if len(pp.Players) < m.config.minPlayers {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("at least %d players are required", m.config.minPlayers))
			return
		}

		if len(pp.Players) > m.config.maxPlayers {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("maximum %d players allowed", m.config.maxPlayers))
			return
		}

		blinds := game.Blinds{Small: pp.SmallBlind, Big: pp.BigBlind}
		if blinds.Small == 0 && blinds.Big == 0 {
			blinds = game.Blinds{Small: m.config.smallBlind, Big: m.config.bigBlind}
		}

		s, err := m.manager.Create(r.Context(), game.Config{
			Seats:              pp.Players,
			Blinds:             blinds,
			AllowAnonymousJoin: pp.AllowAnonymousJoin,
		})
		if err != nil {
			writeCommandError(w, err)
			return
		}

		hostToken, err := jwt.Sign(s.GameID())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postGameResponse{
			gameDetailsResponse: m.gameDetails(s.Snapshot()),
			HostToken:           hostToken,
		})
	}
}

func (m *Mux) getGameUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := r.Context().Value(ctxSessionKey).(*session.Session)
		writeJSON(w, http.StatusOK, m.gameDetails(s.Snapshot()))
	})
}

func (m *Mux) getInviteCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := gmux.Vars(r)["code"]
		s, err := m.manager.GetByInviteCode(r.Context(), code)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, m.gameDetails(s.Snapshot()))
	}
}

type postJoinPayload struct {
	Name  string `json:"name"`
	BuyIn int    `json:"buyIn"`
}

type postJoinResponse struct {
	gameDetailsResponse
	Player *game.Player `json:"player"`
}

func (m *Mux) postGameUUIDJoin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postJoinPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		s := r.Context().Value(ctxSessionKey).(*session.Session)
		player, state, err := s.Join(r.Context(), pp.Name, pp.BuyIn)
		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postJoinResponse{
			gameDetailsResponse: m.gameDetails(state),
			Player:              player,
		})
	})
}

type postActionPayload struct {
	Action   string `json:"action"`
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
}

func (m *Mux) postGameUUIDAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		s := r.Context().Value(ctxSessionKey).(*session.Session)
		ctx := r.Context()

		var state *game.State
		var err error
		switch pp.Action {
		case "bet":
			state, err = s.AddBet(ctx, pp.PlayerID, pp.Amount)
		case "stage-bet":
			state, err = s.StageBet(ctx, pp.PlayerID, pp.Amount)
		case "submit-bet":
			state, err = s.SubmitBet(ctx, pp.PlayerID)
		case "fold":
			state, err = s.Fold(ctx, pp.PlayerID)
		case "next-round":
			state, err = s.NextRound(ctx)
		case "post-blinds":
			state, err = s.PostBlinds(ctx)
		case "raise-blinds":
			state, err = s.RaiseBlinds(ctx)
		case "mark-winner":
			state, err = s.MarkWinner(ctx, pp.PlayerID)
		case "new-hand":
			state, err = s.NewHand(ctx)
		case "buy-in":
			state, err = s.BuyIn(ctx, pp.PlayerID, pp.Amount)
		case "set-dealer":
			state, err = s.SetDealer(ctx, pp.Amount)
		default:
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("%s is not a valid action", pp.Action))
			return
		}

		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, m.gameDetails(state))
	})
}

func (m *Mux) deleteGameUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := r.Context().Value(ctxSessionKey).(*session.Session)
		state, err := s.End(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, gameDetailsResponse{Game: state})
	})
}

// writeCommandError maps a rejected command to a response: validation
// failures and stale IDs are the caller's fault, everything else is ours
func writeCommandError(w http.ResponseWriter, err error) {
	var ue game.UserError
	if errors.As(err, &ue) || errors.Is(err, game.ErrUnknownPlayer) {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}
