package store

import "errors"

// ErrNotFound — документа для пользователя нет в хранилище
var ErrNotFound = errors.New("document not found")

// KeyFormat строит ключ объекта: prefix + userID + suffix
type KeyFormat struct {
	Prefix string
	Suffix string
}

func (k KeyFormat) Key(userID string) string {
	return k.Prefix + userID + k.Suffix
}
