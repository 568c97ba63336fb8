package stt

// Request holds parameters for a transcription call. The audio arrives as an
// in-memory payload resolved from a caller-supplied URL; the API key is the
// caller's own credential, passed through per request.
type Request struct {
	// Audio is the raw audio payload.
	Audio []byte
	// Filename is the upload filename presented to the backend.
	Filename string
	// MIMEType is the media type of the payload.
	MIMEType string
	// APIKey is the caller-supplied credential for the backend.
	APIKey string
	// Language is the expected language of the audio (e.g. "en").
	Language string
	// Model overrides the backend's default transcription model.
	Model string
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration"`
	// Language is the detected or specified language.
	Language string `json:"language"`
}

// Segment represents a time-aligned portion of a transcript. It passes
// through the pipeline unmodified.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
}
