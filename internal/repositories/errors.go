package repositories

import "errors"

// Сигнальные ошибки доменного слоя. HTTP-слой переводит их в статусы.
var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrInvalidInput = errors.New("invalid input")
)
