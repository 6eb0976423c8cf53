package api

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/katakuxiko/biz-rag-backend/internal/model"
	"github.com/katakuxiko/biz-rag-backend/internal/service"
	"github.com/katakuxiko/biz-rag-backend/internal/util"
	"github.com/katakuxiko/biz-rag-backend/internal/validation"
)

type Asker interface {
	Ask(ctx context.Context, question, userID, language string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (*service.Transcript, error)
}

type Speaker interface {
	Speak(ctx context.Context, req model.SpeakRequest) (*service.Speech, error)
}

type ModelLister interface {
	ListModels(ctx context.Context) ([]openai.Model, error)
}

// Deps — зависимости обработчиков, создаются один раз в main
type Deps struct {
	Ask         Asker
	STT         Transcriber
	TTS         Speaker
	Models      ModelLister
	Logger      *zap.Logger
	ServiceName string
	// BodyLimit — лимит JSON-тела в байтах, 0 — без отдельного лимита
	BodyLimit   int
}

// Handler хранит зависимости для обработчиков
type Handler struct {
	ask     Asker
	stt     Transcriber
	tts     Speaker
	models  ModelLister
	log     *zap.Logger
	service string
}

// NewHandler конструктор
func NewHandler(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		ask:     d.Ask,
		stt:     d.STT,
		tts:     d.TTS,
		models:  d.Models,
		log:     log,
		service: d.ServiceName,
	}
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(model.ErrorResponse{Error: msg})
}

func (h *Handler) logError(c *fiber.Ctx, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		zap.String("route", c.Path()),
		zap.Error(err),
	)
	h.log.Error(msg, fields...)
}

// Health — простая проверка
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(model.HealthResponse{
		OK:      true,
		Service: h.service,
		Time:    util.ISOTime(time.Now()),
	})
}

// ListModels — проксирование списка моделей LLM провайдера
func (h *Handler) ListModels(c *fiber.Ctx) error {
	models, err := h.models.ListModels(c.UserContext())
	if err != nil {
		h.logError(c, "list models failed", err)
		return fail(c, fiber.StatusInternalServerError, "Error listing models")
	}
	return c.JSON(models)
}

// AskQuestion — документ пользователя из хранилища + вопрос в LLM
func (h *Handler) AskQuestion(c *fiber.Ctx) error {
	if err := validation.AskRequest.Validate(c.Body()); err != nil {
		return fail(c, fiber.StatusBadRequest, "Question and userId are required")
	}
	var req model.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Question and userId are required")
	}

	userID := string(req.UserID)

	h.log.Debug("ask",
		zap.String("user_id", userID),
		zap.String("language", req.Language),
		zap.String("question", util.TruncateRunes(req.Question, 80)),
	)

	answer, err := h.ask.Ask(c.UserContext(), req.Question, userID, req.Language)
	if err != nil {
		h.logError(c, "ask failed", err, zap.String("user_id", userID))
		return fail(c, fiber.StatusInternalServerError, "Error processing request")
	}

	return c.JSON(model.AskResponse{
		Question: req.Question,
		Answer:   answer,
		UserID:   userID,
	}, fiber.MIMEApplicationJSONCharsetUTF8)
}

// SpeechToText — multipart: audio (файл), language (необязательно)
func (h *Handler) SpeechToText(c *fiber.Ctx) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "No audio uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		h.logError(c, "open uploaded audio", err)
		return fail(c, fiber.StatusInternalServerError, "STT failed")
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		h.logError(c, "read uploaded audio", err)
		return fail(c, fiber.StatusInternalServerError, "STT failed")
	}

	tr, err := h.stt.Transcribe(c.UserContext(), audio, c.FormValue("language"))
	if err != nil {
		h.logError(c, "stt failed", err, zap.Int("audio_bytes", len(audio)))
		return fail(c, fiber.StatusInternalServerError, "STT failed")
	}

	return c.JSON(model.STTResponse{Text: tr.Text, Language: tr.LanguageCode})
}

// Speak — синтез речи, в ответ сырые байты аудио
func (h *Handler) Speak(c *fiber.Ctx) error {
	if err := validation.SpeakRequest.Validate(c.Body()); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Has("text") {
			return fail(c, fiber.StatusBadRequest, "Missing 'text'")
		}
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	var req model.SpeakRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fail(c, fiber.StatusBadRequest, "Missing 'text'")
	}

	sp, err := h.tts.Speak(c.UserContext(), req)
	switch {
	case errors.Is(err, service.ErrEmptyText):
		return fail(c, fiber.StatusBadRequest, "Missing 'text'")
	case errors.Is(err, service.ErrUnsupportedEncoding), errors.Is(err, service.ErrNoVoice):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		h.logError(c, "tts failed", err, zap.String("language_code", req.LanguageCode))
		return fail(c, fiber.StatusInternalServerError, "Error generating speech")
	}

	c.Set(fiber.HeaderContentType, sp.ContentType)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(sp.Audio)
}
