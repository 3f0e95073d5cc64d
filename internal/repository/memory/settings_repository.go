package memory

import (
	"context"
	"sync"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
)

// DefaultSettings is what a user sees before saving anything.
var DefaultSettings = entity.Settings{
	Profile: entity.Profile{
		Name:          "John Smith",
		Email:         "john.smith@realestate.com",
		Company:       "Premier Real Estate",
		LicenseNumber: "RE12345678",
	},
	Recording:     entity.RecordingSettings{Quality: "high", AutoSave: true, NoiseReduction: true, Storage: "cloud"},
	AI:            entity.AISettings{AutoAnalysis: true, TaskExtraction: true, SummaryGeneration: true, Depth: "detailed"},
	Notifications: entity.NotificationSettings{TaskReminders: true, RecordingComplete: true, Email: false, DailySummary: true},
	Security:      entity.SecuritySettings{TwoFactor: false, AutoLogout: true, Encryption: true, Analytics: false},
}

var DefaultWritingStyle = entity.WritingStyle{
	Tone:            "professional",
	Language:        "en",
	Verbosity:       50,
	Creativity:      30,
	IncludeEmojis:   false,
	UseBulletPoints: true,
	AutoSummarize:   true,
}

type settingsRepository struct {
	mu     sync.RWMutex
	byUser map[string]entity.Settings
	styles map[string]entity.WritingStyle
}

func NewSettingsRepository() contract.SettingsRepository {
	return &settingsRepository{
		byUser: make(map[string]entity.Settings),
		styles: make(map[string]entity.WritingStyle),
	}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) entity.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byUser[userID]; ok {
		return s
	}
	return DefaultSettings
}

func (r *settingsRepository) Save(ctx context.Context, userID string, s entity.Settings) error {
	r.mu.Lock()
	r.byUser[userID] = s
	r.mu.Unlock()
	return nil
}

func (r *settingsRepository) GetWritingStyle(ctx context.Context, userID string) entity.WritingStyle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.styles[userID]; ok {
		return s
	}
	return DefaultWritingStyle
}

func (r *settingsRepository) SaveWritingStyle(ctx context.Context, userID string, s entity.WritingStyle) error {
	r.mu.Lock()
	r.styles[userID] = s
	r.mu.Unlock()
	return nil
}
