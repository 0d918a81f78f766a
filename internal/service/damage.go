package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claimdesk/claimdesk/internal/model"
	"github.com/claimdesk/claimdesk/internal/repository"
	"github.com/claimdesk/claimdesk/internal/storage"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Image is one photo handed to the damage classifier.
type Image struct {
	Data        []byte
	ContentType string
}

// DamageService produces a consolidated damage report for the photos of a
// damaged vehicle, using a Gemini vision model. The model is opaque to the
// rest of the service: any non-success response is a classification error.
type DamageService struct {
	apiKey    string
	model     string
	claimRepo repository.ClaimRepository
	mediaRepo repository.MediaRepository
	storage   storage.Storage
}

func NewDamageService(apiKey, model string, claimRepo repository.ClaimRepository, mediaRepo repository.MediaRepository, storage storage.Storage) *DamageService {
	return &DamageService{
		apiKey:    strings.TrimSpace(apiKey),
		model:     strings.TrimSpace(model),
		claimRepo: claimRepo,
		mediaRepo: mediaRepo,
		storage:   storage,
	}
}

const damagePrompt = `You are an expert insurance adjuster specializing in auto claims.
Analyze these images, which are different angles of the SAME damaged vehicle.
Identify all visibly damaged parts across all images.
Provide a consolidated list of unique damaged part names and a brief summary.
Respond ONLY with JSON: {"parts": [string], "summary": string}`

// Analyze sends the images to the vision model and decodes its report.
func (s *DamageService) Analyze(ctx context.Context, images []Image) (*model.DamageReport, error) {
	if len(images) == 0 {
		return nil, NewValidationError("no images provided")
	}
	if s.apiKey == "" {
		return nil, &ClassificationError{Err: errors.New("GEMINI_API_KEY is not configured")}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, &ClassificationError{Err: err}
	}
	defer func() { _ = client.Close() }()

	gm := client.GenerativeModel(s.model)
	gm.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
	}

	parts := make([]genai.Part, 0, len(images)+1)
	parts = append(parts, genai.Text(damagePrompt))
	for _, img := range images {
		parts = append(parts, genai.Blob{MIMEType: img.ContentType, Data: img.Data})
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, &ClassificationError{Err: err}
	}

	text, err := firstText(resp)
	if err != nil {
		return nil, &ClassificationError{Err: err}
	}

	report := &model.DamageReport{}
	if err := json.Unmarshal([]byte(text), report); err != nil {
		return nil, &ClassificationError{Err: fmt.Errorf("malformed model response: %w", err)}
	}
	if report.Parts == nil {
		report.Parts = []string{}
	}

	return report, nil
}

// AnalyzeClaim loads all stored photos of a claim and analyzes them. A photo
// that fails to download is logged and skipped; the call errors only when no
// photo could be fetched at all.
func (s *DamageService) AnalyzeClaim(ctx context.Context, claimID string) (*model.DamageReport, error) {
	_, err := s.claimRepo.ByID(claimID)
	if err != nil {
		return nil, err
	}

	media, err := s.mediaRepo.ForClaim(claimID)
	if err != nil {
		return nil, err
	}
	if len(media) == 0 {
		return nil, repository.ErrMediaNotFound
	}

	images := make([]Image, 0, len(media))
	for _, m := range media {
		data, err := s.storage.Download(m.StoragePath)
		if err != nil {
			slog.Warn("failed to download claim photo, skipping",
				"claim_id", claimID,
				"storage_path", m.StoragePath,
				"error", err,
			)
			continue
		}
		images = append(images, Image{Data: data, ContentType: m.ContentType})
	}
	if len(images) == 0 {
		return nil, &ClassificationError{Err: fmt.Errorf("no photo of claim %s could be fetched", claimID)}
	}

	return s.Analyze(ctx, images)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty model response")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return strings.TrimSpace(string(text)), nil
		}
	}
	return "", errors.New("model response has no text part")
}
