package service

import "errors"

// Ошибки клиента: api отвечает на них 400
var (
	ErrEmptyText           = errors.New("text is empty")
	ErrUnsupportedEncoding = errors.New("unsupported audio encoding")
	ErrNoVoice             = errors.New("no voice available for language")
)
