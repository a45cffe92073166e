package game

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	dto "mini_casino/internal/api/dto/game"
	"mini_casino/internal/converter"
	"mini_casino/internal/model"
	"mini_casino/internal/service"
	"mini_casino/pkg/req"
	"mini_casino/pkg/resp"
)

type HandlerDeps struct {
	Serv service.SessionService
	Log  *zap.Logger
}

type Handler struct {
	serv service.SessionService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log.Named("api.game")}
}

type playFunc func(ctx context.Context) (*model.PlayTicket, error)

func (h *Handler) Roulette(w http.ResponseWriter, r *http.Request) {
	h.play(w, r, h.serv.PlayRoulette)
}

func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	h.play(w, r, h.serv.PlaySlots)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(h.serv.State()))
}

func (h *Handler) play(w http.ResponseWriter, r *http.Request, play playFunc) {
	wait, err := waitFlag(r)
	if err != nil {
		resp.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := play(r.Context())
	if err != nil {
		resp.WriteJSONError(w, errorStatus(err), err.Error())
		return
	}

	response := converter.ToPlayResponse(ticket)
	if !wait {
		resp.WriteJSONResponse(w, http.StatusAccepted, response)
		return
	}

	select {
	case res, ok := <-ticket.Result:
		if !ok {
			resp.WriteJSONError(w, http.StatusServiceUnavailable, model.ErrSessionClosed.Error())
			return
		}
		response.Result = converter.ToPlayResult(res)
		resp.WriteJSONResponse(w, http.StatusOK, response)
	case <-r.Context().Done():
		// клиент ушел, розыгрыш завершится без него
		h.log.Debug("client gone before reveal", zap.String("id", ticket.ID))
	}
}

// waitFlag Тело {"wait": false} или ?wait=false. Query приоритетнее
func waitFlag(r *http.Request) (bool, error) {
	payload, err := req.Decode[dto.PlayRequest](r.Body)
	if err != nil {
		return false, err
	}

	wait := true
	if payload.Wait != nil {
		wait = *payload.Wait
	}
	if q := r.URL.Query().Get("wait"); q != "" {
		wait, err = strconv.ParseBool(q)
		if err != nil {
			return false, errors.New("invalid wait parameter")
		}
	}
	return wait, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrInsufficientCoins), errors.Is(err, model.ErrPlayInProgress):
		return http.StatusConflict
	case errors.Is(err, model.ErrSessionClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
