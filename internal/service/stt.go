package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"

	"github.com/katakuxiko/biz-rag-backend/internal/config"
	"github.com/katakuxiko/biz-rag-backend/internal/metrics"
)

// Recognizer — часть *speech.Client, которая нужна сервису
type Recognizer interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

type Transcript struct {
	Text         string
	LanguageCode string
}

// STTService — распознавание речи через Google Cloud Speech
type STTService struct {
	recognizer Recognizer
	encoding   speechpb.RecognitionConfig_AudioEncoding
	sampleRate int32
}

func NewSTTService(r Recognizer, cfg config.SpeechConfig) (*STTService, error) {
	enc, ok := speechpb.RecognitionConfig_AudioEncoding_value[strings.ToUpper(cfg.Encoding)]
	if !ok {
		return nil, fmt.Errorf("unknown recognition encoding %q", cfg.Encoding)
	}
	return &STTService{
		recognizer: r,
		encoding:   speechpb.RecognitionConfig_AudioEncoding(enc),
		sampleRate: cfg.SampleRateHertz,
	}, nil
}

// Transcribe склеивает лучшие альтернативы всех сегментов через пробел.
// Пустой результат распознавания — не ошибка.
func (s *STTService) Transcribe(ctx context.Context, audio []byte, language string) (t *Transcript, err error) {
	defer func(start time.Time) {
		metrics.ObserveVendor(metrics.VendorSTT, start, err)
	}(time.Now())

	code := ResolveLanguageCode(language)
	resp, err := s.recognizer.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   s.encoding,
			SampleRateHertz:            s.sampleRate,
			LanguageCode:               code,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	parts := make([]string, 0, len(resp.GetResults()))
	for _, r := range resp.GetResults() {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			parts = append(parts, alts[0].GetTranscript())
		}
	}
	return &Transcript{Text: strings.Join(parts, " "), LanguageCode: code}, nil
}
