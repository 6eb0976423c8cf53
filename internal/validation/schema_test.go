package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskRequest(t *testing.T) {
	valid := []string{
		`{"question":"What time does the event start?","userId":"u1"}`,
		`{"question":"q","userId":"u1","language":"english"}`,
		`{"question":"q","userId":"u1","language":null}`,
		`{"question":"q","userId":42}`,
	}
	for _, body := range valid {
		assert.NoError(t, AskRequest.Validate([]byte(body)), body)
	}

	invalid := []string{
		`{"userId":"u1"}`,
		`{"question":"q"}`,
		`{"question":"","userId":"u1"}`,
		`{"question":"q","userId":""}`,
		`{"question":"q","userId":0}`,
		`{"question":"q","userId":1.5}`,
		`{"question":"q","userId":true}`,
		`{"question":"q","userId":null}`,
		`[]`,
		`not json`,
	}
	for _, body := range invalid {
		err := AskRequest.Validate([]byte(body))
		var verr *Error
		require.True(t, errors.As(err, &verr), body)
		assert.NotEmpty(t, verr.Fields, body)
	}
}

func TestSpeakRequest(t *testing.T) {
	assert.NoError(t, SpeakRequest.Validate([]byte(`{"text":"Hello"}`)))
	assert.NoError(t, SpeakRequest.Validate([]byte(`{"text":" hi ","speakingRate":1.2,"pitch":-3,"audioEncoding":"OGG_OPUS"}`)))

	for _, body := range []string{
		`{}`,
		`{"text":""}`,
		`{"text":"   "}`,
		`{"text":"\n\t"}`,
		`{"text":"hi","speakingRate":"fast"}`,
	} {
		assert.Error(t, SpeakRequest.Validate([]byte(body)), body)
	}
}

func TestError_Message(t *testing.T) {
	err := AskRequest.Validate([]byte(`{"question":"q"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "userId")
}

func TestError_Has(t *testing.T) {
	var verr *Error

	err := SpeakRequest.Validate([]byte(`{"pitch":1}`))
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("text"))

	err = SpeakRequest.Validate([]byte(`{"text":"  "}`))
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("text"))

	err = SpeakRequest.Validate([]byte(`{"text":"hi","pitch":"low"}`))
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Has("text"))
	assert.True(t, verr.Has("pitch"))
}
