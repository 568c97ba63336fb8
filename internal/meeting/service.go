// Package meeting implements the transcription pipeline: validate the
// request, resolve the audio URL to bytes, transcribe, then either attribute
// speakers or summarize, and assemble the result. The steps run strictly in
// sequence; each external call is attempted exactly once.
package meeting

import (
	"context"

	"github.com/skillsenselab/meetscribe/internal/apperrors"
	"github.com/skillsenselab/meetscribe/internal/audio"
	"github.com/skillsenselab/meetscribe/internal/logger"
	"github.com/skillsenselab/meetscribe/internal/observability"
	"github.com/skillsenselab/meetscribe/internal/stt"
	"github.com/skillsenselab/meetscribe/internal/validation"
)

// Service orchestrates the transcription pipeline.
type Service struct {
	resolver *audio.Resolver
	stt      stt.Provider
	analyzer *Analyzer
	log      *logger.Logger
}

// NewService creates a new Service.
func NewService(resolver *audio.Resolver, sttProvider stt.Provider, analyzer *Analyzer, log *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		stt:      sttProvider,
		analyzer: analyzer,
		log:      log.WithComponent("meeting"),
	}
}

// Transcribe runs the full pipeline for one request. Validation failures
// return before any network I/O. All state lives in locals; nothing outlives
// the call.
func (s *Service) Transcribe(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	meetingName := req.MeetingName
	if meetingName == "" {
		meetingName = DefaultMeetingName
	}

	ctx, span := observability.StartSpan(ctx, "meeting.transcribe")
	defer span.End()

	payload, err := s.resolveAudio(ctx, req.AudioURL)
	if err != nil {
		return nil, err
	}

	transcription, err := s.transcribeAudio(ctx, payload, req.OpenAIAPIKey)
	if err != nil {
		return nil, err
	}

	result := &TranscribeResult{
		Success:        true,
		MeetingName:    meetingName,
		Transcript:     transcription.Text,
		RawTranscript:  transcription.Text,
		Segments:       transcription.Segments,
		Speakers:       []SpeakerSummary{},
		MeetingSummary: "",
		Duration:       transcription.Duration,
		Language:       transcription.Language,
	}
	if result.Segments == nil {
		result.Segments = []stt.Segment{}
	}
	if result.Language == "" {
		result.Language = "en"
	}

	if err := s.analyze(ctx, req, result); err != nil {
		return nil, err
	}

	s.log.Info("Transcription completed", map[string]interface{}{
		"meeting":  meetingName,
		"segments": len(result.Segments),
		"speakers": len(result.Speakers),
		"language": result.Language,
	})

	return result, nil
}

func (s *Service) resolveAudio(ctx context.Context, audioURL string) (*audio.Payload, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanResolve)
	defer span.End()

	payload, err := s.resolver.Resolve(ctx, audioURL)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, "audio.bytes", len(payload.Data))
	return payload, nil
}

func (s *Service) transcribeAudio(ctx context.Context, payload *audio.Payload, apiKey string) (*stt.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()

	resp, err := s.stt.Transcribe(ctx, stt.Request{
		Audio:    payload.Data,
		Filename: payload.Filename,
		MIMEType: payload.MIMEType,
		APIKey:   apiKey,
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.TranscriptionFailed(err)
	}
	return resp, nil
}

// analyze runs the language-model branch and fills in transcript, speakers,
// and meeting summary on result. The raw transcript fields are already set
// and are never touched here.
func (s *Service) analyze(ctx context.Context, req TranscribeRequest, result *TranscribeResult) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanAnalyze)
	defer span.End()

	if len(req.Participants) > 0 {
		attribution, err := s.analyzer.Attribute(ctx, req.OpenAIAPIKey, result.RawTranscript, req.Participants)
		if err != nil {
			observability.SetSpanError(ctx, err)
			return apperrors.AttributionFailed(err)
		}
		result.Transcript = attribution.Transcript
		result.Speakers = attribution.Speakers
		result.MeetingSummary = attribution.MeetingSummary
		return nil
	}

	summary, err := s.analyzer.Summarize(ctx, req.OpenAIAPIKey, result.RawTranscript)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return apperrors.SummarizationFailed(err)
	}
	result.MeetingSummary = summary
	return nil
}
