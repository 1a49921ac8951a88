package types

// Media types attached to voice chat uploads.
const (
	MimeTypeWAV  = "audio/wav"
	MimeTypeJPEG = "image/jpeg"
)

// Attachment is an uploaded file held in memory for the length of a request.
type Attachment struct {
	Filename string
	MimeType string
	Data     []byte
}

// VoiceChatRequest carries the optional uploads of POST /api/voice-chat.
// Either attachment may be nil.
type VoiceChatRequest struct {
	Audio *Attachment
	Image *Attachment
}

// VoiceChatResponse pairs the model's reply with its synthesized speech.
// Audio is base64 encoded.
type VoiceChatResponse struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}
