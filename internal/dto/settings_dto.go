package dto

type ProfileSettings struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Company       string `json:"company"`
	LicenseNumber string `json:"licenseNumber"`
}

type RecordingSettings struct {
	Quality        string `json:"quality" validate:"required,oneof=low medium high lossless"`
	AutoSave       bool   `json:"autoSave"`
	NoiseReduction bool   `json:"noiseReduction"`
	Storage        string `json:"storage" validate:"required,oneof=local cloud both"`
}

type AISettings struct {
	AutoAnalysis      bool   `json:"autoAnalysis"`
	TaskExtraction    bool   `json:"taskExtraction"`
	SummaryGeneration bool   `json:"summaryGeneration"`
	Depth             string `json:"depth" validate:"required,oneof=basic standard detailed"`
}

type NotificationSettings struct {
	TaskReminders     bool `json:"taskReminders"`
	RecordingComplete bool `json:"recordingComplete"`
	Email             bool `json:"email"`
	DailySummary      bool `json:"dailySummary"`
}

type SecuritySettings struct {
	TwoFactor  bool `json:"twoFactor"`
	AutoLogout bool `json:"autoLogout"`
	Encryption bool `json:"encryption"`
	Analytics  bool `json:"analytics"`
}

type SettingsRequest struct {
	Profile       ProfileSettings      `json:"profile"`
	Recording     RecordingSettings    `json:"recording"`
	AI            AISettings           `json:"ai"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
}

type SettingsResponse = SettingsRequest
