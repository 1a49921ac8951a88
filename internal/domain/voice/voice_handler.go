package voice

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/cohana-api/internal/types"
	"github.com/FACorreiaa/cohana-api/pkg/api"
)

// Multipart parts beyond this size are spooled to disk by ParseMultipartForm.
const multipartMemory = 10 << 20

// Handler serves POST /api/voice-chat.
type Handler struct {
	svc            Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewHandler wires a voice handler. maxUploadBytes caps the request body.
func NewHandler(svc Service, maxUploadBytes int64, logger *slog.Logger) *Handler {
	return &Handler{
		svc:            svc,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// VoiceChat reads the optional "audio" and "image" file fields and writes
// {"text", "audio"}. Every failure is reported with the same message.
func (h *Handler) VoiceChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.readRequest(w, r)
	if err != nil {
		h.logger.ErrorContext(ctx, "voice error: invalid upload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, types.MsgVoiceFailed)
		return
	}

	resp, err := h.svc.Chat(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "voice error", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, types.MsgVoiceFailed)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request) (types.VoiceChatRequest, error) {
	var req types.VoiceChatRequest

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return req, nil
		}
		return req, fmt.Errorf("parse multipart form: %w", err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	audio, err := readAttachment(r, "audio", types.MimeTypeWAV)
	if err != nil {
		return req, err
	}
	image, err := readAttachment(r, "image", types.MimeTypeJPEG)
	if err != nil {
		return req, err
	}

	req.Audio = audio
	req.Image = image
	return req, nil
}

// readAttachment returns nil when the field is absent.
func readAttachment(r *http.Request, field, mimeType string) (*types.Attachment, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s field: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s upload: %w", field, err)
	}
	return &types.Attachment{
		Filename: header.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}
