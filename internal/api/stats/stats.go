package stats

import (
	"net/http"

	"mini_casino/internal/converter"
	"mini_casino/internal/model"
	"mini_casino/internal/repository"
	"mini_casino/pkg/resp"
)

type HandlerDeps struct {
	Repo repository.StatsRepository
}

type Handler struct {
	repo repository.StatsRepository
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{repo: deps.Repo}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	response := converter.ToStatsResponse(
		h.repo.GameStats(model.GameRoulette),
		h.repo.GameStats(model.GameSlots),
	)
	resp.WriteJSONResponse(w, http.StatusOK, response)
}
