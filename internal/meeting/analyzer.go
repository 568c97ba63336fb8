package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillsenselab/meetscribe/internal/llm"
	"github.com/skillsenselab/meetscribe/internal/logger"
)

const (
	attributionMaxTokens = 4000
	summaryMaxTokens     = 500
)

// Analyzer drives the language-model branch of the pipeline: speaker
// attribution when participant hints exist, plain summarization otherwise.
type Analyzer struct {
	llm llm.Provider
	log *logger.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(p llm.Provider, log *logger.Logger) *Analyzer {
	return &Analyzer{
		llm: p,
		log: log.WithComponent("analyzer"),
	}
}

// Attribution is the outcome of the attribution call after defensive parsing.
// Its fields are always safe to copy into the result: a malformed model
// response degrades to the raw transcript with empty speakers and summary
// instead of failing the request.
type Attribution struct {
	Transcript     string
	Speakers       []SpeakerSummary
	MeetingSummary string
}

// analysis is the JSON shape requested from the language model.
type analysis struct {
	Transcript     string           `json:"transcript"`
	Speakers       []SpeakerSummary `json:"speakers"`
	MeetingSummary string           `json:"meetingSummary"`
}

// Attribute asks the language model to label the transcript with speaker
// names and summarize the meeting. A transport or service failure is
// returned; a non-conforming response is not — it falls back to the raw
// transcript.
func (a *Analyzer) Attribute(ctx context.Context, apiKey, rawTranscript string, participants []ParticipantHint) (*Attribution, error) {
	resp, err := a.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: attributionSystemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: attributionUserPrompt(participants, rawTranscript)},
		},
		MaxTokens: attributionMaxTokens,
		JSONMode:  true,
		APIKey:    apiKey,
	})
	if err != nil {
		return nil, err
	}

	fallback := &Attribution{
		Transcript:     rawTranscript,
		Speakers:       []SpeakerSummary{},
		MeetingSummary: "",
	}

	var parsed analysis
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Content)), &parsed); err != nil {
		a.log.Warn("Attribution response did not parse, keeping raw transcript", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback, nil
	}

	result := &Attribution{
		Transcript:     parsed.Transcript,
		Speakers:       parsed.Speakers,
		MeetingSummary: parsed.MeetingSummary,
	}
	if result.Transcript == "" {
		result.Transcript = rawTranscript
	}
	if result.Speakers == nil {
		result.Speakers = []SpeakerSummary{}
	}
	return result, nil
}

// Summarize asks the language model for a short plain summary.
func (a *Analyzer) Summarize(ctx context.Context, apiKey, rawTranscript string) (string, error) {
	resp, err := a.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: summarySystemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: "Summarize the following meeting transcript in 3-4 sentences:\n\n" + rawTranscript},
		},
		MaxTokens: summaryMaxTokens,
		APIKey:    apiKey,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

const attributionSystemPrompt = "You are a meeting analyst. You attribute transcript text to named participants and summarize meetings. Respond with ONLY a JSON object. No markdown, no code blocks, no explanations."

const summarySystemPrompt = "You are a meeting assistant that writes concise meeting summaries."

// attributionUserPrompt renders the participant hints as a 1-indexed numbered
// list followed by the raw transcript and the required output shape.
func attributionUserPrompt(participants []ParticipantHint, rawTranscript string) string {
	var b strings.Builder

	b.WriteString("The meeting participants are:\n")
	b.WriteString(participantList(participants))
	b.WriteString("\nHere is the raw meeting transcript:\n\n")
	b.WriteString(rawTranscript)
	b.WriteString("\n\nRewrite the transcript attributing each span to the most likely participant, " +
		"using the sample quotes as hints. Return a JSON object with these keys:\n" +
		`- "transcript": the speaker-labeled transcript` + "\n" +
		`- "speakers": an array of {"name", "wordCount", "summary"} for each participant who spoke` + "\n" +
		`- "meetingSummary": a concise summary of the meeting`)

	return b.String()
}

// participantList is a pure rendering helper. Missing sample quotes render
// as "Not provided".
func participantList(participants []ParticipantHint) string {
	var b strings.Builder
	for i, p := range participants {
		quote := p.SampleQuote
		if quote == "" {
			quote = "Not provided"
		}
		fmt.Fprintf(&b, "%d. %q - Sample quote: %q\n", i+1, p.Speaker, quote)
	}
	return b.String()
}
