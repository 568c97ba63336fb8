package meeting

import "github.com/skillsenselab/meetscribe/internal/stt"

// DefaultMeetingName is used when the caller supplies no meeting name.
const DefaultMeetingName = "Untitled Meeting"

// TranscribeRequest is the wire request for POST /transcribe.
type TranscribeRequest struct {
	// AudioURL points at the meeting recording to download.
	AudioURL string `json:"audioUrl" validate:"required"`
	// MeetingName labels the result; defaults to "Untitled Meeting".
	MeetingName string `json:"meetingName"`
	// Participants are optional attribution hints. Order only affects the
	// numbered list shown to the language model.
	Participants []ParticipantHint `json:"participants"`
	// OpenAIAPIKey is the caller's own credential, passed through to the
	// external services and never stored.
	OpenAIAPIKey string `json:"openaiApiKey" validate:"required"`
}

// ParticipantHint names a meeting participant, optionally with a sample
// quote the language model can use to recognize their voice in the text.
type ParticipantHint struct {
	Speaker     string `json:"speaker"`
	SampleQuote string `json:"sampleQuote"`
}

// SpeakerSummary is the per-participant result of attribution. The word
// count is the language model's estimate, not independently verified.
type SpeakerSummary struct {
	Name      string `json:"name"`
	WordCount int    `json:"wordCount"`
	Summary   string `json:"summary"`
}

// TranscribeResult is the wire response for a successful transcription.
//
// RawTranscript is always the verbatim speech-to-text output. Transcript is
// the speaker-labeled rewrite when attribution succeeded, otherwise it equals
// RawTranscript. Speakers is non-empty only when participants were supplied
// and attribution parsed.
type TranscribeResult struct {
	Success        bool             `json:"success"`
	MeetingName    string           `json:"meetingName"`
	Transcript     string           `json:"transcript"`
	RawTranscript  string           `json:"rawTranscript"`
	Segments       []stt.Segment    `json:"segments"`
	Speakers       []SpeakerSummary `json:"speakers"`
	MeetingSummary string           `json:"meetingSummary"`
	Duration       float64          `json:"duration"`
	Language       string           `json:"language"`
}
