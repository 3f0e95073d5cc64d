package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"robinrocks-be/internal/config"
	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/scheduler"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateTTL = 10 * time.Minute

var connectorCategoryLabels = map[string]string{
	"storage":       "Cloud Storage",
	"social":        "Social Media",
	"communication": "Communication",
	"productivity":  "Productivity",
	"crm":           "CRM & Sales",
}

var googleScopes = map[string][]string{
	"gmail":           {"https://www.googleapis.com/auth/gmail.send"},
	"google-calendar": {"https://www.googleapis.com/auth/calendar.events"},
	"google-sheets":   {"https://www.googleapis.com/auth/spreadsheets"},
}

type IConnectorService interface {
	List(ctx context.Context) ([]dto.ConnectorResponse, error)
	Connect(ctx context.Context, userID string, req *dto.ConnectRequest) (*dto.ConnectResponse, error)
	Disconnect(ctx context.Context, userID, id string) (*dto.ConnectorResponse, error)
	CompleteOAuth(ctx context.Context, state, code string) (*dto.ConnectorResponse, error)
}

type oauthGrant struct {
	userID      string
	connectorID string
}

type connectorService struct {
	connectors contract.ConnectorRepository
	oauth      config.OAuthConfig
	states     *memory.ViewStateRepository[oauthGrant]
	clock      scheduler.Scheduler
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewConnectorService(
	connectors contract.ConnectorRepository,
	oauthCfg config.OAuthConfig,
	clock scheduler.Scheduler,
	publisher events.Publisher,
	log logger.ILogger,
) IConnectorService {
	return &connectorService{
		connectors: connectors,
		oauth:      oauthCfg,
		states:     memory.NewViewStateRepository[oauthGrant](oauthStateTTL, nil),
		clock:      clock,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *connectorService) List(ctx context.Context) ([]dto.ConnectorResponse, error) {
	rows, err := s.connectors.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	out := make([]dto.ConnectorResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, connectorResponse(c))
	}
	return out, nil
}

// Connect requires every field of the connector. Values are kept only as a
// bcrypt fingerprint plus a masked preview.
func (s *connectorService) Connect(ctx context.Context, userID string, req *dto.ConnectRequest) (*dto.ConnectResponse, error) {
	c, err := s.find(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, f := range c.Fields {
		if strings.TrimSpace(req.Values[f.Key]) == "" {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		return nil, serverutils.BadRequest("Please fill in: " + strings.Join(missing, ", "))
	}

	creds := make(map[string]entity.StoredCredential, len(c.Fields))
	for _, f := range c.Fields {
		stored, err := storeCredential(req.Values[f.Key], f.Secret)
		if err != nil {
			return nil, err
		}
		creds[f.Key] = stored
	}

	now := s.clock.Now()
	c.Credentials = creds
	c.Connected = true
	c.ConnectedAt = &now
	if err := s.connectors.Update(ctx, c); err != nil {
		return nil, err
	}

	res := &dto.ConnectResponse{Connector: connectorResponse(c)}
	if c.OAuth {
		url, err := s.consentURL(userID, c.Id)
		if err != nil {
			return nil, err
		}
		res.ConsentURL = url
	}

	s.logger.Info("Connectors", "Connector connected", map[string]interface{}{"connector_id": c.Id, "user_id": userID})
	publishEvent(ctx, s.publisher, s.logger, "Connectors", events.NewAt(events.ConnectorConnected, map[string]interface{}{
		"user_id":      userID,
		"connector_id": c.Id,
		"name":         c.Name,
	}, now))
	return res, nil
}

func (s *connectorService) Disconnect(ctx context.Context, userID, id string) (*dto.ConnectorResponse, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Connected = false
	c.ConnectedAt = nil
	c.Credentials = nil
	if err := s.connectors.Update(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Connectors", "Connector disconnected", map[string]interface{}{"connector_id": c.Id, "user_id": userID})
	res := connectorResponse(c)
	return &res, nil
}

// CompleteOAuth trades the authorization code for a token and keeps a
// fingerprint of the refresh token.
func (s *connectorService) CompleteOAuth(ctx context.Context, state, code string) (*dto.ConnectorResponse, error) {
	grant, ok := s.states.Get(state)
	if !ok {
		return nil, fmt.Errorf("%w: unknown or expired oauth state", serverutils.ErrUnauthorized)
	}
	s.states.Delete(state)

	c, err := s.find(ctx, grant.connectorID)
	if err != nil {
		return nil, err
	}

	token, err := s.oauthConfig(c.Id).Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("Connectors", "OAuth code exchange failed", map[string]interface{}{"connector_id": c.Id, "error": err.Error()})
		return nil, fmt.Errorf("oauth code exchange: %w", err)
	}

	secret := token.RefreshToken
	if secret == "" {
		secret = token.AccessToken
	}
	stored, err := storeCredential(secret, true)
	if err != nil {
		return nil, err
	}
	if c.Credentials == nil {
		c.Credentials = make(map[string]entity.StoredCredential)
	}
	c.Credentials["oauthToken"] = stored
	if err := s.connectors.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Connectors", "OAuth grant stored", map[string]interface{}{"connector_id": c.Id, "user_id": grant.userID})
	res := connectorResponse(c)
	return &res, nil
}

func (s *connectorService) consentURL(userID, connectorID string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)
	s.states.Save(state, oauthGrant{userID: userID, connectorID: connectorID})
	return s.oauthConfig(connectorID).AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (s *connectorService) oauthConfig(connectorID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.oauth.GoogleClientID,
		ClientSecret: s.oauth.GoogleClientSecret,
		RedirectURL:  s.oauth.RedirectURL,
		Scopes:       googleScopes[connectorID],
		Endpoint:     google.Endpoint,
	}
}

func (s *connectorService) find(ctx context.Context, id string) (*entity.Connector, error) {
	c, err := s.connectors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, serverutils.NotFound("connector", id)
	}
	return c, nil
}

// storeCredential fingerprints the value. bcrypt only reads 72 bytes, so
// the value is digested first.
func storeCredential(value string, secret bool) (entity.StoredCredential, error) {
	digest := sha256.Sum256([]byte(value))
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(digest[:])), bcrypt.DefaultCost)
	if err != nil {
		return entity.StoredCredential{}, fmt.Errorf("fingerprint credential: %w", err)
	}
	masked := value
	if secret {
		masked = MaskSecret(value)
	}
	return entity.StoredCredential{Fingerprint: hash, Masked: masked}, nil
}

// CredentialMatches reports whether value is the one that was stored.
func CredentialMatches(stored entity.StoredCredential, value string) bool {
	digest := sha256.Sum256([]byte(value))
	return bcrypt.CompareHashAndPassword(stored.Fingerprint, []byte(hex.EncodeToString(digest[:]))) == nil
}

// MaskSecret keeps the last four characters of values longer than eight.
func MaskSecret(value string) string {
	const dots = "••••••••"
	if len(value) <= 8 {
		return dots
	}
	return dots + value[len(value)-4:]
}

func connectorResponse(c *entity.Connector) dto.ConnectorResponse {
	res := dto.ConnectorResponse{
		Id:            c.Id,
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		CategoryLabel: connectorCategoryLabels[c.Category],
		Connected:     c.Connected,
		ConnectedAt:   c.ConnectedAt,
		OAuth:         c.OAuth,
		Fields:        make([]dto.ConnectorFieldResponse, 0, len(c.Fields)),
	}
	for _, f := range c.Fields {
		res.Fields = append(res.Fields, dto.ConnectorFieldResponse{
			Key:    f.Key,
			Label:  f.Label,
			Secret: f.Secret,
			Value:  c.Credentials[f.Key].Masked,
		})
	}
	return res
}
