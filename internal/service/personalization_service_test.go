package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"robinrocks-be/internal/config"
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlaceholders(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		values      map[string]string
		want        string
		wantMissing []string
	}{
		{
			name:        "all values",
			content:     "Dear {{client_name}}, see {{ address }}.",
			values:      map[string]string{"client_name": "Mr. Jansen", "address": "Keizersgracht 1"},
			want:        "Dear Mr. Jansen, see Keizersgracht 1.",
			wantMissing: []string{},
		},
		{
			name:        "missing reported once",
			content:     "{{a}} {{b}} {{a}}",
			values:      map[string]string{"b": "x"},
			want:        "{{a}} x {{a}}",
			wantMissing: []string{"a"},
		},
		{
			name:        "no placeholders",
			content:     "plain text",
			want:        "plain text",
			wantMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := RenderPlaceholders(tt.content, tt.values)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestTemplateLifecycle(t *testing.T) {
	f := newFixture()
	svc := NewTemplateService(memory.NewTemplateRepository(f.clock.Now()), f.clock)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	listings, err := svc.List(ctx, "property-listing")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, []string{"property_type", "bedrooms", "location", "price", "description", "features"}, listings[0].Placeholders)

	copied, err := svc.Duplicate(ctx, listings[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Property Listing Template (Copy)", copied.Name)
	assert.NotEqual(t, listings[0].Id, copied.Id)

	rendered, err := svc.Render(ctx, copied.Id, &dto.RenderTemplateRequest{Values: map[string]string{
		"property_type": "Loft",
		"bedrooms":      "2",
	}})
	require.NoError(t, err)
	assert.Contains(t, rendered.Content, "Loft - 2 bedrooms")
	assert.Equal(t, []string{"location", "price", "description", "features"}, rendered.Missing)

	f.clock.Advance(time.Minute)
	updated, err := svc.Update(ctx, &dto.TemplateRequest{Id: copied.Id, Name: "Short listing", Type: "other", Description: "d", Content: "{{x}}"})
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, f.clock.Now(), *updated.UpdatedAt)

	require.NoError(t, svc.Delete(ctx, copied.Id))
	_, err = svc.Show(ctx, copied.Id)
	assert.Equal(t, 404, serverutils.StatusFor(err))
	assert.Equal(t, 404, serverutils.StatusFor(svc.Delete(ctx, copied.Id)))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "••••••••", MaskSecret("short"))
	assert.Equal(t, "••••••••", MaskSecret("12345678"))
	assert.Equal(t, "••••••••6789", MaskSecret("sk_live_123456789"))
}

func newConnectorService(f *fixture) IConnectorService {
	return NewConnectorService(
		memory.NewConnectorRepository(f.clock.Now()),
		config.OAuthConfig{GoogleClientID: "client-id", RedirectURL: "http://localhost:3000/callback"},
		f.clock,
		f.events,
		f.log,
	)
}

func TestConnectRequiresEveryField(t *testing.T) {
	f := newFixture()
	svc := newConnectorService(f)

	_, err := svc.Connect(context.Background(), "user-1", &dto.ConnectRequest{
		Id:     "sharepoint",
		Values: map[string]string{"siteUrl": "https://corp.sharepoint.com", "clientId": "  "},
	})
	require.Error(t, err)
	assert.Equal(t, 400, serverutils.StatusFor(err))
	assert.Contains(t, err.Error(), "Client ID, Client Secret")
	assert.Empty(t, f.events.Types())

	_, err = svc.Connect(context.Background(), "user-1", &dto.ConnectRequest{Id: "myspace"})
	assert.Equal(t, 404, serverutils.StatusFor(err))
}

func TestConnectMasksSecrets(t *testing.T) {
	f := newFixture()
	svc := newConnectorService(f)
	ctx := context.Background()

	res, err := svc.Connect(ctx, "user-1", &dto.ConnectRequest{
		Id: "airtable",
		Values: map[string]string{
			"apiKey": "keyABCDEFGH1234",
			"baseId": "app42",
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Connector.Connected)
	assert.Empty(t, res.ConsentURL)

	values := map[string]string{}
	for _, fld := range res.Connector.Fields {
		values[fld.Key] = fld.Value
	}
	assert.Equal(t, "••••••••1234", values["apiKey"])
	assert.Equal(t, "app42", values["baseId"])
	assert.Equal(t, []string{events.ConnectorConnected}, f.events.Types())

	res2, err := svc.Disconnect(ctx, "user-1", "airtable")
	require.NoError(t, err)
	assert.False(t, res2.Connected)
	assert.Nil(t, res2.ConnectedAt)
}

func TestConnectGoogleReturnsConsentURL(t *testing.T) {
	f := newFixture()
	svc := newConnectorService(f)
	ctx := context.Background()

	res, err := svc.Connect(ctx, "user-1", &dto.ConnectRequest{
		Id:     "google-sheets",
		Values: map[string]string{"spreadsheetId": "1AbC"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ConsentURL)

	u, err := url.Parse(res.ConsentURL)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Equal(t, "https://www.googleapis.com/auth/spreadsheets", u.Query().Get("scope"))
	assert.NotEmpty(t, u.Query().Get("state"))

	_, err = svc.CompleteOAuth(ctx, "forged-state", "code")
	assert.Equal(t, 401, serverutils.StatusFor(err))
}

func TestCredentialMatches(t *testing.T) {
	stored, err := storeCredential("super-secret-token", true)
	require.NoError(t, err)
	assert.True(t, CredentialMatches(stored, "super-secret-token"))
	assert.False(t, CredentialMatches(stored, "super-secret-tokem"))
	assert.Equal(t, "••••••••oken", stored.Masked)
}

func TestScaleLabels(t *testing.T) {
	tests := []struct {
		value      int
		verbosity  string
		creativity string
	}{
		{0, "Concise", "Conservative"},
		{32, "Concise", "Conservative"},
		{33, "Balanced", "Balanced"},
		{65, "Balanced", "Balanced"},
		{66, "Detailed", "Creative"},
		{100, "Detailed", "Creative"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.verbosity, VerbosityLabel(tt.value), "verbosity %d", tt.value)
		assert.Equal(t, tt.creativity, CreativityLabel(tt.value), "creativity %d", tt.value)
	}
}

func TestWritingStyleIsPerUser(t *testing.T) {
	svc := NewWritingStyleService(memory.NewSettingsRepository())
	ctx := context.Background()

	def := svc.Get(ctx, "user-1")
	assert.Equal(t, "professional", def.Tone)
	assert.Equal(t, "Balanced", def.VerbosityLabel)
	assert.Equal(t, "Conservative", def.CreativityLabel)

	saved, err := svc.Save(ctx, "user-1", &dto.WritingStyleRequest{Tone: "friendly", Language: "nl", Verbosity: 80, Creativity: 70})
	require.NoError(t, err)
	assert.Equal(t, "Detailed", saved.VerbosityLabel)

	assert.Equal(t, "friendly", svc.Get(ctx, "user-1").Tone)
	assert.Equal(t, "professional", svc.Get(ctx, "user-2").Tone)
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := NewSettingsService(memory.NewSettingsRepository())
	ctx := context.Background()

	def := svc.Get(ctx, "user-1")
	assert.Equal(t, "John Smith", def.Profile.Name)
	assert.Equal(t, "high", def.Recording.Quality)

	req := *def
	req.Profile.Name = "Sanne Bakker"
	req.Security.TwoFactor = true
	_, err := svc.Save(ctx, "user-1", &req)
	require.NoError(t, err)

	got := svc.Get(ctx, "user-1")
	assert.Equal(t, "Sanne Bakker", got.Profile.Name)
	assert.True(t, got.Security.TwoFactor)
	assert.Equal(t, "John Smith", svc.Get(ctx, "user-2").Profile.Name)
}
