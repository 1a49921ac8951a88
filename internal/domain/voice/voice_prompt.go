package voice

import (
	"google.golang.org/genai"

	"github.com/FACorreiaa/cohana-api/internal/types"
)

const (
	personaInstruction = "You are Cohana. Answer naturally, briefly and witty."
	imageInstruction   = "Answer based on this image."
)

// BuildParts assembles the multimodal request in a fixed order: persona,
// audio, image, then the image instruction. Absent attachments are skipped.
func BuildParts(req types.VoiceChatRequest) []*genai.Part {
	parts := []*genai.Part{genai.NewPartFromText(personaInstruction)}

	if req.Audio != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Audio.Data, types.MimeTypeWAV))
	}
	if req.Image != nil {
		parts = append(parts,
			genai.NewPartFromBytes(req.Image.Data, types.MimeTypeJPEG),
			genai.NewPartFromText(imageInstruction),
		)
	}
	return parts
}
