package services

import "errors"

var (
	// ErrNotFound — id не разрешился в запись
	ErrNotFound = errors.New("record not found")

	// ErrInvalidTransition — запись есть, но переход статуса бессмысленный
	// (удаление уже неактивной, восстановление активной)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation — некорректный ввод на границе сервиса
	ErrValidation = errors.New("validation failed")
)
