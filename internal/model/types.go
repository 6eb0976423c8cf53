package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID — идентификатор пользователя: в JSON строка или целое число
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or an integer: %w", err)
	}
	*id = ID(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

type AskRequest struct {
	Question string `json:"question"`
	UserID   ID     `json:"userId"`
	Language string `json:"language,omitempty"`
}

type AskResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	UserID   string `json:"userId"`
}

type STTResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// SpeakRequest — указатели нужны, чтобы отличить "не передано" от нуля
type SpeakRequest struct {
	Text          string   `json:"text"`
	LanguageCode  string   `json:"languageCode,omitempty"`
	VoiceName     string   `json:"voiceName,omitempty"`
	SpeakingRate  *float64 `json:"speakingRate,omitempty"`
	Pitch         *float64 `json:"pitch,omitempty"`
	AudioEncoding string   `json:"audioEncoding,omitempty"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
