package memory

import (
	"context"
	"time"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
)

type connectorRepository struct {
	rows *store[string, entity.Connector]
}

func NewConnectorRepository(now time.Time) contract.ConnectorRepository {
	return &connectorRepository{rows: newStore(func(c *entity.Connector) string { return c.Id }, seedConnectors(now)...)}
}

func (r *connectorRepository) FindByID(ctx context.Context, id string) (*entity.Connector, error) {
	c, ok := r.rows.get(id)
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *connectorRepository) FindAll(ctx context.Context) ([]*entity.Connector, error) {
	return r.rows.findAll(), nil
}

func (r *connectorRepository) Update(ctx context.Context, c *entity.Connector) error {
	if !r.rows.update(c) {
		return serverutils.NotFound("connector", c.Id)
	}
	return nil
}

func field(key, label string) entity.ConnectorField {
	return entity.ConnectorField{Key: key, Label: label}
}

func secret(key, label string) entity.ConnectorField {
	return entity.ConnectorField{Key: key, Label: label, Secret: true}
}

func seedConnectors(now time.Time) []entity.Connector {
	connected := &now
	return []entity.Connector{
		{Id: "sharepoint", Name: "Microsoft SharePoint", Category: "storage",
			Description: "Connect to SharePoint for document storage and collaboration",
			Fields:      []entity.ConnectorField{field("siteUrl", "SharePoint Site URL"), field("clientId", "Client ID"), secret("clientSecret", "Client Secret")}},
		{Id: "instagram", Name: "Instagram Business", Category: "social",
			Description: "Connect your Instagram business account for property marketing",
			Fields:      []entity.ConnectorField{secret("accessToken", "Access Token"), field("accountId", "Business Account ID")}},
		{Id: "linkedin", Name: "LinkedIn", Category: "social",
			Description: "Connect LinkedIn for professional networking and listings",
			Fields:      []entity.ConnectorField{secret("accessToken", "Access Token"), field("organizationId", "Organization ID")}},
		{Id: "gmail", Name: "Gmail / Google Workspace", Category: "communication", OAuth: true,
			Description: "Connect Gmail for email automation and communications",
			Fields:      []entity.ConnectorField{field("email", "Email Address")},
			Connected:   true, ConnectedAt: connected},
		{Id: "outlook", Name: "Microsoft Outlook", Category: "communication",
			Description: "Connect Outlook for email and calendar integration",
			Fields:      []entity.ConnectorField{field("clientId", "Client ID"), secret("clientSecret", "Client Secret")}},
		{Id: "google-calendar", Name: "Google Calendar", Category: "productivity", OAuth: true,
			Description: "Sync appointments and property viewings",
			Fields:      []entity.ConnectorField{field("calendarId", "Calendar ID")},
			Connected:   true, ConnectedAt: connected},
		{Id: "airtable", Name: "Airtable", Category: "productivity",
			Description: "Connect Airtable for flexible data management",
			Fields:      []entity.ConnectorField{secret("apiKey", "API Key"), field("baseId", "Base ID")}},
		{Id: "google-sheets", Name: "Google Sheets", Category: "productivity", OAuth: true,
			Description: "Connect Google Sheets for spreadsheet integration",
			Fields:      []entity.ConnectorField{field("spreadsheetId", "Spreadsheet ID")}},
		{Id: "whatsapp", Name: "WhatsApp Business", Category: "communication",
			Description: "Connect WhatsApp for client communications",
			Fields:      []entity.ConnectorField{field("phoneNumberId", "Phone Number ID"), secret("accessToken", "Access Token")}},
		{Id: "twilio", Name: "Twilio", Category: "communication",
			Description: "Connect Twilio for SMS and voice communications",
			Fields:      []entity.ConnectorField{field("accountSid", "Account SID"), secret("authToken", "Auth Token"), field("phoneNumber", "Twilio Phone Number")}},
		{Id: "hubspot", Name: "HubSpot CRM", Category: "crm",
			Description: "Connect HubSpot for CRM and marketing automation",
			Fields:      []entity.ConnectorField{secret("apiKey", "API Key")}},
		{Id: "zapier", Name: "Zapier", Category: "productivity",
			Description: "Connect with 5000+ apps through Zapier webhooks",
			Fields:      []entity.ConnectorField{field("webhookUrl", "Webhook URL")}},
	}
}
