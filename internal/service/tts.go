package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"

	"github.com/katakuxiko/biz-rag-backend/internal/metrics"
	"github.com/katakuxiko/biz-rag-backend/internal/model"
)

const (
	DefaultAudioEncoding = "MP3"
	DefaultSpeakingRate  = 1.0
	DefaultPitch         = 0.0
)

// Synthesizer — часть *texttospeech.Client, которая нужна сервису
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error)
}

type Speech struct {
	Audio       []byte
	ContentType string
	Voice       string
}

// TTSService — синтез речи через Google Cloud Text-to-Speech
type TTSService struct {
	synth Synthesizer
	log   *zap.Logger
}

func NewTTSService(s Synthesizer, log *zap.Logger) *TTSService {
	return &TTSService{synth: s, log: log}
}

// ContentType — audio/ogg только для OGG_OPUS
func ContentType(encoding string) string {
	if encoding == "OGG_OPUS" {
		return "audio/ogg"
	}
	return "audio/mpeg"
}

// ParseAudioEncoding — имя кодировки в enum; UNSPECIFIED тоже отклоняется
func ParseAudioEncoding(name string) (texttospeechpb.AudioEncoding, error) {
	v, ok := texttospeechpb.AudioEncoding_value[name]
	if !ok || v == int32(texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED) {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	return texttospeechpb.AudioEncoding(v), nil
}

// voiceTiers — порядок предпочтения при автовыборе голоса
var voiceTiers = []string{"Neural2", "Wavenet", "Standard"}

func voiceRank(name string) int {
	for i, tier := range voiceTiers {
		if strings.Contains(name, tier) {
			return i
		}
	}
	return len(voiceTiers)
}

// SelectVoice возвращает voiceName как есть, если он задан; иначе ищет голос в каталоге.
func (s *TTSService) SelectVoice(ctx context.Context, languageCode, voiceName string) (string, error) {
	if voiceName != "" {
		return voiceName, nil
	}

	voices, err := s.listVoices(ctx, languageCode)
	if err != nil {
		return "", err
	}

	best, bestRank := "", -1
	for _, v := range voices {
		if !supportsLanguage(v, languageCode) {
			continue
		}
		if r := voiceRank(v.GetName()); bestRank == -1 || r < bestRank {
			best, bestRank = v.GetName(), r
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w %q", ErrNoVoice, languageCode)
	}
	s.log.Debug("voice auto-selected", zap.String("language_code", languageCode), zap.String("voice", best))
	return best, nil
}

func supportsLanguage(v *texttospeechpb.Voice, code string) bool {
	for _, c := range v.GetLanguageCodes() {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// Speak проверяет параметры до любых вызовов API, затем выбирает голос и синтезирует.
func (s *TTSService) Speak(ctx context.Context, req model.SpeakRequest) (*Speech, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	encName := req.AudioEncoding
	if encName == "" {
		encName = DefaultAudioEncoding
	}
	enc, err := ParseAudioEncoding(encName)
	if err != nil {
		return nil, err
	}

	lang := req.LanguageCode
	if lang == "" {
		lang = DefaultLanguageCode
	}
	rate, pitch := DefaultSpeakingRate, DefaultPitch
	if req.SpeakingRate != nil {
		rate = *req.SpeakingRate
	}
	if req.Pitch != nil {
		pitch = *req.Pitch
	}

	voice, err := s.SelectVoice(ctx, lang, req.VoiceName)
	if err != nil {
		return nil, err
	}

	audio, err := s.synthesize(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: lang,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: enc,
			SpeakingRate:  rate,
			Pitch:         pitch,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Speech{Audio: audio, ContentType: ContentType(encName), Voice: voice}, nil
}

func (s *TTSService) listVoices(ctx context.Context, languageCode string) (voices []*texttospeechpb.Voice, err error) {
	defer func(start time.Time) {
		metrics.ObserveVendor(metrics.VendorTTS, start, err)
	}(time.Now())

	resp, err := s.synth.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: languageCode})
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	return resp.GetVoices(), nil
}

func (s *TTSService) synthesize(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (audio []byte, err error) {
	defer func(start time.Time) {
		metrics.ObserveVendor(metrics.VendorTTS, start, err)
	}(time.Now())

	resp, err := s.synth.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.GetAudioContent(), nil
}
