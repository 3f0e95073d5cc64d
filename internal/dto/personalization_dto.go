package dto

import (
	"time"

	"github.com/google/uuid"
)

type TemplateRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=visit-report rental-agreement property-listing email contract invoice other"`
	Description string    `json:"description" validate:"required"`
	Content     string    `json:"content" validate:"required"`
}

type TemplateResponse struct {
	Id           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Content      string     `json:"content"`
	Placeholders []string   `json:"placeholders"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type RenderTemplateRequest struct {
	Values map[string]string `json:"values"`
}

type RenderTemplateResponse struct {
	Content string `json:"content"`
	// Missing lists placeholders that had no value and were left in place.
	Missing []string `json:"missing"`
}

type WritingStyleRequest struct {
	Tone            string `json:"tone" validate:"required,oneof=professional friendly casual formal persuasive"`
	Language        string `json:"language" validate:"required,oneof=en nl fr de es"`
	Verbosity       int    `json:"verbosity" validate:"gte=0,lte=100"`
	Creativity      int    `json:"creativity" validate:"gte=0,lte=100"`
	IncludeEmojis   bool   `json:"includeEmojis"`
	UseBulletPoints bool   `json:"useBulletPoints"`
	AutoSummarize   bool   `json:"autoSummarize"`
}

type WritingStyleResponse struct {
	WritingStyleRequest
	VerbosityLabel  string `json:"verbosityLabel"`
	CreativityLabel string `json:"creativityLabel"`
}

type ConnectorFieldResponse struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Secret bool   `json:"secret"`
	// Value is masked for secret fields.
	Value string `json:"value,omitempty"`
}

type ConnectorResponse struct {
	Id            string                   `json:"id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Category      string                   `json:"category"`
	CategoryLabel string                   `json:"categoryLabel"`
	Connected     bool                     `json:"connected"`
	ConnectedAt   *time.Time               `json:"connectedAt,omitempty"`
	OAuth         bool                     `json:"oauth"`
	Fields        []ConnectorFieldResponse `json:"fields"`
}

type ConnectRequest struct {
	Id     string            `json:"-"`
	Values map[string]string `json:"values"`
}

type ConnectResponse struct {
	Connector ConnectorResponse `json:"connector"`
	// ConsentURL is set for Google connectors; the browser finishes the
	// connection there.
	ConsentURL string `json:"consentUrl,omitempty"`
}
