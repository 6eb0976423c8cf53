package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error — тело запроса не прошло проверку схемы
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Schema — скомпилированная JSON Schema
type Schema struct {
	schema *gojsonschema.Schema
}

func MustCompile(src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return &Schema{schema: s}
}

// Validate возвращает *Error для невалидного JSON или нарушений схемы
func (s *Schema) Validate(body []byte) error {
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &Error{Fields: []FieldError{{Field: "(root)", Message: "invalid JSON body"}}}
	}
	if res.Valid() {
		return nil
	}
	out := &Error{}
	for _, re := range res.Errors() {
		field := re.Field()
		// для required gojsonschema указывает родителя, нужен сам отсутствующий ключ
		if re.Type() == "required" {
			if p, ok := re.Details()["property"].(string); ok {
				field = p
			}
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Message: re.Description()})
	}
	return out
}

// Has — есть ли ошибка по полю верхнего уровня
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var AskRequest = MustCompile(`{
	"type": "object",
	"required": ["question", "userId"],
	"properties": {
		"question": {"type": "string", "minLength": 1},
		"userId":   {"type": ["string", "integer"], "minLength": 1, "not": {"const": 0}},
		"language": {"type": ["string", "null"]}
	}
}`)

var SpeakRequest = MustCompile(`{
	"type": "object",
	"required": ["text"],
	"properties": {
		"text":          {"type": "string", "pattern": "\\S"},
		"languageCode":  {"type": ["string", "null"]},
		"voiceName":     {"type": ["string", "null"]},
		"speakingRate":  {"type": ["number", "null"]},
		"pitch":         {"type": ["number", "null"]},
		"audioEncoding": {"type": ["string", "null"]}
	}
}`)
