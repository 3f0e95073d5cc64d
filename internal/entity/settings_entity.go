package entity

type Profile struct {
	Name          string
	Email         string
	Company       string
	LicenseNumber string
}

type RecordingSettings struct {
	Quality        string
	AutoSave       bool
	NoiseReduction bool
	Storage        string
}

type AISettings struct {
	AutoAnalysis      bool
	TaskExtraction    bool
	SummaryGeneration bool
	Depth             string
}

type NotificationSettings struct {
	TaskReminders     bool
	RecordingComplete bool
	Email             bool
	DailySummary      bool
}

type SecuritySettings struct {
	TwoFactor  bool
	AutoLogout bool
	Encryption bool
	Analytics  bool
}

type Settings struct {
	Profile       Profile
	Recording     RecordingSettings
	AI            AISettings
	Notifications NotificationSettings
	Security      SecuritySettings
}

type WritingStyle struct {
	Tone            string
	Language        string
	Verbosity       int
	Creativity      int
	IncludeEmojis   bool
	UseBulletPoints bool
	AutoSummarize   bool
}
