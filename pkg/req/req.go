package req

import (
	"encoding/json"
	"errors"
	"io"
)

// Decode Читает JSON тело запроса в T. Пустое тело - нулевое значение T
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, nil
	}
	err := json.NewDecoder(body).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		return payload, err
	}
	return payload, nil
}
