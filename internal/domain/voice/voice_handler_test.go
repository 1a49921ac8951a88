package voice

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/cohana-api/internal/types"
)

type stubService struct {
	resp   *types.VoiceChatResponse
	err    error
	gotReq types.VoiceChatRequest
	calls  int
}

func (s *stubService) Chat(_ context.Context, req types.VoiceChatRequest) (*types.VoiceChatResponse, error) {
	s.calls++
	s.gotReq = req
	return s.resp, s.err
}

func multipartRequest(t *testing.T, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/voice-chat", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestVoiceChatHandler_ReadsBothFiles(t *testing.T) {
	svc := &stubService{resp: &types.VoiceChatResponse{Text: "hi", Audio: "aGk="}}
	h := NewHandler(svc, 1<<20, newTestLogger())

	rec := httptest.NewRecorder()
	h.VoiceChat(rec, multipartRequest(t, map[string][]byte{
		"audio": []byte("RIFF"),
		"image": []byte{0xff, 0xd8},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"hi","audio":"aGk="}`, rec.Body.String())

	require.NotNil(t, svc.gotReq.Audio)
	assert.Equal(t, []byte("RIFF"), svc.gotReq.Audio.Data)
	assert.Equal(t, types.MimeTypeWAV, svc.gotReq.Audio.MimeType)
	require.NotNil(t, svc.gotReq.Image)
	assert.Equal(t, []byte{0xff, 0xd8}, svc.gotReq.Image.Data)
	assert.Equal(t, types.MimeTypeJPEG, svc.gotReq.Image.MimeType)
}

func TestVoiceChatHandler_MissingFieldsAreAbsent(t *testing.T) {
	svc := &stubService{resp: &types.VoiceChatResponse{}}
	h := NewHandler(svc, 1<<20, newTestLogger())

	rec := httptest.NewRecorder()
	h.VoiceChat(rec, multipartRequest(t, map[string][]byte{"image": []byte("jpg")}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.gotReq.Audio)
	assert.NotNil(t, svc.gotReq.Image)
}

func TestVoiceChatHandler_NonMultipartHasNoAttachments(t *testing.T) {
	svc := &stubService{resp: &types.VoiceChatResponse{Text: "hello"}}
	h := NewHandler(svc, 1<<20, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/voice-chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.VoiceChat(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.calls)
	assert.Nil(t, svc.gotReq.Audio)
	assert.Nil(t, svc.gotReq.Image)
}

func TestVoiceChatHandler_ServiceErrorIsOpaque(t *testing.T) {
	svc := &stubService{err: errors.New("elevenlabs 401 Unauthorized")}
	h := NewHandler(svc, 1<<20, newTestLogger())

	rec := httptest.NewRecorder()
	h.VoiceChat(rec, multipartRequest(t, nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Voice processing failed"}`, rec.Body.String())
}

func TestVoiceChatHandler_UploadTooLarge(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, 64, newTestLogger())

	rec := httptest.NewRecorder()
	h.VoiceChat(rec, multipartRequest(t, map[string][]byte{"audio": bytes.Repeat([]byte("a"), 1024)}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Voice processing failed"}`, rec.Body.String())
	assert.Zero(t, svc.calls)
}
