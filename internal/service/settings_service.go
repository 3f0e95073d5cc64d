package service

import (
	"context"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
)

type ISettingsService interface {
	Get(ctx context.Context, userID string) *dto.SettingsResponse
	Save(ctx context.Context, userID string, req *dto.SettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	settings contract.SettingsRepository
}

func NewSettingsService(settings contract.SettingsRepository) ISettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context, userID string) *dto.SettingsResponse {
	return settingsResponse(s.settings.Get(ctx, userID))
}

func (s *settingsService) Save(ctx context.Context, userID string, req *dto.SettingsRequest) (*dto.SettingsResponse, error) {
	st := entity.Settings{
		Profile: entity.Profile{
			Name:          req.Profile.Name,
			Email:         req.Profile.Email,
			Company:       req.Profile.Company,
			LicenseNumber: req.Profile.LicenseNumber,
		},
		Recording: entity.RecordingSettings{
			Quality:        req.Recording.Quality,
			AutoSave:       req.Recording.AutoSave,
			NoiseReduction: req.Recording.NoiseReduction,
			Storage:        req.Recording.Storage,
		},
		AI: entity.AISettings{
			AutoAnalysis:      req.AI.AutoAnalysis,
			TaskExtraction:    req.AI.TaskExtraction,
			SummaryGeneration: req.AI.SummaryGeneration,
			Depth:             req.AI.Depth,
		},
		Notifications: entity.NotificationSettings(req.Notifications),
		Security:      entity.SecuritySettings(req.Security),
	}
	if err := s.settings.Save(ctx, userID, st); err != nil {
		return nil, err
	}
	return settingsResponse(st), nil
}

func settingsResponse(st entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Profile: dto.ProfileSettings{
			Name:          st.Profile.Name,
			Email:         st.Profile.Email,
			Company:       st.Profile.Company,
			LicenseNumber: st.Profile.LicenseNumber,
		},
		Recording: dto.RecordingSettings{
			Quality:        st.Recording.Quality,
			AutoSave:       st.Recording.AutoSave,
			NoiseReduction: st.Recording.NoiseReduction,
			Storage:        st.Recording.Storage,
		},
		AI: dto.AISettings{
			AutoAnalysis:      st.AI.AutoAnalysis,
			TaskExtraction:    st.AI.TaskExtraction,
			SummaryGeneration: st.AI.SummaryGeneration,
			Depth:             st.AI.Depth,
		},
		Notifications: dto.NotificationSettings(st.Notifications),
		Security:      dto.SecuritySettings(st.Security),
	}
}
