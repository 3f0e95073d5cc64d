package service

import (
	"context"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
)

type IWritingStyleService interface {
	Get(ctx context.Context, userID string) *dto.WritingStyleResponse
	Save(ctx context.Context, userID string, req *dto.WritingStyleRequest) (*dto.WritingStyleResponse, error)
}

type writingStyleService struct {
	settings contract.SettingsRepository
}

func NewWritingStyleService(settings contract.SettingsRepository) IWritingStyleService {
	return &writingStyleService{settings: settings}
}

func (s *writingStyleService) Get(ctx context.Context, userID string) *dto.WritingStyleResponse {
	return writingStyleResponse(s.settings.GetWritingStyle(ctx, userID))
}

func (s *writingStyleService) Save(ctx context.Context, userID string, req *dto.WritingStyleRequest) (*dto.WritingStyleResponse, error) {
	style := entity.WritingStyle{
		Tone:            req.Tone,
		Language:        req.Language,
		Verbosity:       req.Verbosity,
		Creativity:      req.Creativity,
		IncludeEmojis:   req.IncludeEmojis,
		UseBulletPoints: req.UseBulletPoints,
		AutoSummarize:   req.AutoSummarize,
	}
	if err := s.settings.SaveWritingStyle(ctx, userID, style); err != nil {
		return nil, err
	}
	return writingStyleResponse(style), nil
}

func VerbosityLabel(v int) string {
	return scaleLabel(v, "Concise", "Balanced", "Detailed")
}

func CreativityLabel(v int) string {
	return scaleLabel(v, "Conservative", "Balanced", "Creative")
}

func scaleLabel(v int, low, mid, high string) string {
	switch {
	case v < 33:
		return low
	case v < 66:
		return mid
	default:
		return high
	}
}

func writingStyleResponse(s entity.WritingStyle) *dto.WritingStyleResponse {
	return &dto.WritingStyleResponse{
		WritingStyleRequest: dto.WritingStyleRequest{
			Tone:            s.Tone,
			Language:        s.Language,
			Verbosity:       s.Verbosity,
			Creativity:      s.Creativity,
			IncludeEmojis:   s.IncludeEmojis,
			UseBulletPoints: s.UseBulletPoints,
			AutoSummarize:   s.AutoSummarize,
		},
		VerbosityLabel:  VerbosityLabel(s.Verbosity),
		CreativityLabel: CreativityLabel(s.Creativity),
	}
}
