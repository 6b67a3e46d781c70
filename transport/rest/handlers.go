package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/render"
)

type gameResponse struct {
	Player *entity.Player `json:"player"`
	Game   *entity.Round  `json:"game"`
	View   render.View    `json:"view"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) index(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "index")

	playerID := that.session(w, r)

	round, err := that.manager.GetOrCreateRound(r.Context(), playerID)
	if err != nil {
		log.Error("failed to get round", "playerID", playerID, "error", err)
		http.Error(w, http.StatusText(statusFor(err)), statusFor(err))
		return
	}

	body, err := that.page.render(render.Round(round))
	if err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (that *Server) pageTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "pageTurn")

	playerID := that.session(w, r)

	cell, err := cellParam(r)
	if err == nil {
		_, err = that.manager.MakeTurn(r.Context(), playerID, cell)
	}

	if err != nil {
		log.Error("failed to make turn", "playerID", playerID, "error", err)
		http.Error(w, http.StatusText(statusFor(err)), statusFor(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Server) pageNewGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "pageNewGame")

	playerID := that.session(w, r)

	if _, err := that.manager.NewGame(r.Context(), playerID); err != nil {
		log.Error("failed to start new game", "playerID", playerID, "error", err)
		http.Error(w, http.StatusText(statusFor(err)), statusFor(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	playerID := that.session(w, r)

	round, err := that.manager.GetOrCreateRound(r.Context(), playerID)
	that.respondGame(r.Context(), w, "getGame", playerID, round, err)
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	playerID := that.session(w, r)

	cell, err := cellParam(r)
	if err != nil {
		that.respondGame(r.Context(), w, "makeTurn", playerID, nil, err)
		return
	}

	round, err := that.manager.MakeTurn(r.Context(), playerID, cell)
	that.respondGame(r.Context(), w, "makeTurn", playerID, round, err)
}

func (that *Server) newGame(w http.ResponseWriter, r *http.Request) {
	playerID := that.session(w, r)

	round, err := that.manager.NewGame(r.Context(), playerID)
	that.respondGame(r.Context(), w, "newGame", playerID, round, err)
}

func (that *Server) respondGame(
	ctx context.Context,
	w http.ResponseWriter,
	method, playerID string,
	round *entity.Round,
	err error,
) {
	log := that.logger.With("method", method, "playerID", playerID)

	if err != nil {
		log.Error("request failed", "error", err)
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	player, err := that.manager.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get player", "error", err)
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{
		Player: player,
		Game:   round,
		View:   render.Round(round),
	})
}

func cellParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "cell")

	cell, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, raw)
	}

	return cell, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrRoundNotFound), errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
