package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "mini_casino/internal/api/dto/game"
	"mini_casino/internal/model"
	"mini_casino/internal/repository/stats_repo"
)

func TestStats(t *testing.T) {
	repo := stats_repo.NewStatsRepository(0)
	repo.UpdateState(model.GameRoulette, 10, 20)
	repo.UpdateState(model.GameRoulette, 10, 0)
	repo.UpdateState(model.GameSlots, 5, 0)

	rec := httptest.NewRecorder()
	NewHandler(HandlerDeps{Repo: repo}).Stats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.StatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Games, 2)

	assert.Equal(t, "roulette", body.Games[0].Game)
	assert.Equal(t, 2, body.Games[0].TotalPlays)
	assert.Equal(t, 20, body.Games[0].TotalBet)
	assert.Equal(t, 20, body.Games[0].TotalPayout)
	assert.InDelta(t, 100.0, body.Games[0].CurrentRTP, 1e-9)

	assert.Equal(t, "slots", body.Games[1].Game)
	assert.Equal(t, 1, body.Games[1].TotalPlays)
	assert.InDelta(t, 0.0, body.Games[1].CurrentRTP, 1e-9)
}
