package resp

import (
	"encoding/json"
	"net/http"
)

func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// заголовок уже отправлен, ошибку записи вернуть некому
	_ = json.NewEncoder(w).Encode(data)
}

type errorResponse struct {
	Error string `json:"error"`
}

func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	WriteJSONResponse(w, status, errorResponse{Error: msg})
}
