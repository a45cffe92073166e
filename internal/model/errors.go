package model

import "errors"

var (
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrPlayInProgress    = errors.New("play already in progress")
	ErrSessionClosed     = errors.New("session closed")
)
