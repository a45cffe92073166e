package converter

import (
	"time"

	dto "mini_casino/internal/api/dto/game"
	"mini_casino/internal/model"
)

func ToPlayResponse(ticket *model.PlayTicket) dto.PlayResponse {
	return dto.PlayResponse{
		ID:      ticket.ID,
		Game:    string(ticket.Game),
		Cost:    ticket.Cost,
		Balance: ticket.Balance,
	}
}

func ToPlayResult(res model.PlayResult) *dto.PlayResult {
	out := &dto.PlayResult{
		Outcome: string(res.Outcome),
		Payout:  res.Payout,
		Balance: res.Balance,
		Message: res.Message,
		Sound:   string(res.Sound),
	}

	switch res.Game {
	case model.GameRoulette:
		draw := res.Draw
		out.Draw = &draw
	case model.GameSlots:
		out.Reels = make([]int, len(res.Reels))
		for i, a := range res.Reels {
			out.Reels[i] = int(a)
		}
	}
	return out
}

func ToStateResponse(st model.DisplayState) dto.StateResponse {
	cues := make([]dto.CueEvent, len(st.Cues))
	for i, c := range st.Cues {
		cues[i] = dto.CueEvent{
			Sound: string(c.Sound),
			At:    c.At.Format(time.RFC3339Nano),
		}
	}

	return dto.StateResponse{
		Coins:              st.Coins,
		Message:            st.Message,
		LastAlert:          st.LastAlert,
		LastCue:            string(st.LastCue),
		Cues:               cues,
		RouletteInProgress: st.RouletteInProgress,
		SlotsInProgress:    st.SlotsInProgress,
	}
}

func ToStatsResponse(stats ...model.GameStats) dto.StatsResponse {
	games := make([]dto.GameStats, len(stats))
	for i, s := range stats {
		games[i] = dto.GameStats{
			Game:        string(s.Game),
			TotalPlays:  s.TotalPlays,
			TotalBet:    s.TotalBet,
			TotalPayout: s.TotalPayout,
			CurrentRTP:  s.CurrentRTP,
			WindowRTP:   s.WindowRTP,
			WindowSize:  s.WindowSize,
		}
	}
	return dto.StatsResponse{Games: games}
}
