package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/metrics"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/advisor"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

const (
	DocumentRental   = "rental"
	DocumentSales    = "sales"
	DocumentServices = "services"
	DocumentBrowse   = "browse"
)

var documentTypes = []dto.DocumentTypeResponse{
	{Id: DocumentRental, Title: "Huurovereenkomst", Description: "Genereer een professionele huurovereenkomst voor kantoor- of winkelruimte"},
	{Id: DocumentSales, Title: "Koopovereenkomst", Description: "Stel een koopovereenkomst op voor commercieel vastgoed"},
	{Id: DocumentServices, Title: "Dienstverleningscontract", Description: "Maak contractvoorwaarden voor het verlenen van diensten"},
	{Id: DocumentBrowse, Title: "Bladeren", Description: "Zoek en bekijk bestaande documenten en contracten"},
}

var rentalDraft = template.Must(template.New("rental").Funcs(template.FuncMap{
	"yesno": func(b bool) string {
		if b {
			return "Ja"
		}
		return "Nee"
	},
	"tenancy": func(t string) string {
		if t == "shop" {
			return "Winkelruimte"
		}
		return "Kantoorruimte"
	},
	"fallback": func(v, fallback string) string {
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	},
}).Parse(`HUUROVEREENKOMST {{ tenancy .TenancyType }}

Eigendom: {{ .Property }}
Huurperiode: {{ fallback .RentalPeriod "n.t.b." }}
Huuringangsdatum: {{ fallback .CommencementDate "n.t.b." }}
Verlengingsperiode: {{ fallback .RenewalPeriod "n.t.b." }}
Opzegtermijn: {{ .NoticePeriod }}

Aanvangshuur: {{ fallback .InitialRent "n.t.b." }}
Huurkorting van toepassing: {{ yesno .RentalDiscount }}
Eerste huurbetaling: {{ fallback .FirstRentalPayment "n.t.b." }}
BTW op huur: {{ yesno .VatOnRent }}
Servicekosten: {{ if .ServiceCharges }}{{ .ServiceChargesAmount }}{{ else }}Nee{{ end }}
Betalingstermijn: {{ .PaymentTerm }}
Indexatie: {{ .Indexation }}
Waarborgsom: {{ .SecurityDeposit }}
{{ with .AdditionalAgreements }}
Aanvullende afspraken:
{{ . }}
{{ end }}`))

// NewRentalAgreement returns the form with the usual commercial defaults.
func NewRentalAgreement() *dto.RentalAgreement {
	return &dto.RentalAgreement{
		NoticePeriod:    "12 maanden",
		PaymentTerm:     "per maand",
		Indexation:      "1 jaar na huuringangsdatum",
		SecurityDeposit: "3 maanden betalingsverplichting",
	}
}

type IDocumentService interface {
	Types(ctx context.Context) []dto.DocumentTypeResponse
	Open(ctx context.Context, userID string, req *dto.OpenDocumentRequest) (*dto.DocumentSessionResponse, error)
	Show(ctx context.Context, userID, id string) (*dto.DocumentSessionResponse, error)
	UpdateForm(ctx context.Context, userID, id string, form *dto.RentalAgreement) (*dto.DocumentSessionResponse, error)
	SendMessage(ctx context.Context, userID, id string, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
	Draft(ctx context.Context, userID, id string) (*dto.DraftResponse, error)
	Close(ctx context.Context, userID, id string) error
}

type documentSession struct {
	mu     sync.Mutex
	id     string
	userID string
	kind   string
	form   *dto.RentalAgreement
	robin  *advisor.Conversation
}

type documentService struct {
	robin    *advisor.Ruleset
	clock    scheduler.Scheduler
	delay    time.Duration
	sessions *memory.ViewStateRepository[*documentSession]
	pusher   Pusher
	metrics  *metrics.Metrics
	logger   logger.ILogger
}

func NewDocumentService(
	catalog *advisor.Catalog,
	clock scheduler.Scheduler,
	delay time.Duration,
	ttl time.Duration,
	pusher Pusher,
	m *metrics.Metrics,
	log logger.ILogger,
) (IDocumentService, error) {
	rs, ok := catalog.Get(advisor.RulesetRobin)
	if !ok {
		return nil, fmt.Errorf("advisor ruleset %q is not loaded", advisor.RulesetRobin)
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &documentService{
		robin: rs,
		clock: clock,
		delay: delay,
		sessions: memory.NewViewStateRepository(ttl, func(_ string, d *documentSession) {
			d.robin.Close()
		}),
		pusher:  pusherOrNop(pusher),
		metrics: m,
		logger:  log,
	}, nil
}

func (s *documentService) Types(ctx context.Context) []dto.DocumentTypeResponse {
	out := make([]dto.DocumentTypeResponse, len(documentTypes))
	copy(out, documentTypes)
	return out
}

func (s *documentService) Open(ctx context.Context, userID string, req *dto.OpenDocumentRequest) (*dto.DocumentSessionResponse, error) {
	doc := &documentSession{
		id:     uuid.NewString(),
		userID: userID,
		kind:   req.Type,
	}
	if req.Type == DocumentRental {
		doc.form = NewRentalAgreement()
	}
	doc.robin = advisor.NewConversation(doc.id, s.robin, s.clock, s.delay, advisor.Context{DocumentType: req.Type})
	doc.robin.OnMessage(func(msg advisor.Message) {
		if msg.Role == advisor.RoleAdvisor {
			s.metrics.AdvisorReplies.WithLabelValues(advisor.RulesetRobin, msg.Rule).Inc()
		}
		s.pusher.Push(userID, websocket.TypeChat, msg)
	})
	s.sessions.Save(doc.id, doc)

	s.logger.Info("Documents", "Document session opened", map[string]interface{}{"session_id": doc.id, "user_id": userID, "type": req.Type})
	return s.response(doc), nil
}

func (s *documentService) Show(ctx context.Context, userID, id string) (*dto.DocumentSessionResponse, error) {
	doc, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	return s.response(doc), nil
}

func (s *documentService) UpdateForm(ctx context.Context, userID, id string, form *dto.RentalAgreement) (*dto.DocumentSessionResponse, error) {
	doc, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	if doc.kind != DocumentRental {
		return nil, serverutils.BadRequest("this document type has no form yet")
	}
	next := *form
	doc.mu.Lock()
	doc.form = &next
	doc.mu.Unlock()
	return s.response(doc), nil
}

func (s *documentService) SendMessage(ctx context.Context, userID, id string, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	doc, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	msg, err := doc.robin.Submit(req.Message, advisor.Context{DocumentType: doc.kind})
	if err != nil {
		return nil, err
	}
	return &dto.ChatMessageResponse{Message: msg, Pending: doc.robin.Pending()}, nil
}

// Draft renders the rental form as agreement text. Required fields are
// checked here because the form may be saved half-filled.
func (s *documentService) Draft(ctx context.Context, userID, id string) (*dto.DraftResponse, error) {
	doc, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	if doc.kind != DocumentRental {
		return nil, serverutils.BadRequest("drafts are only available for rental agreements")
	}

	doc.mu.Lock()
	form := *doc.form
	doc.mu.Unlock()

	if err := serverutils.ValidateRequest(&form); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := rentalDraft.Execute(&buf, form); err != nil {
		return nil, fmt.Errorf("render rental draft: %w", err)
	}
	return &dto.DraftResponse{
		Title:   "Huurovereenkomst " + form.Property,
		Content: strings.TrimSpace(buf.String()),
	}, nil
}

func (s *documentService) Close(ctx context.Context, userID, id string) error {
	if _, err := s.find(userID, id); err != nil {
		return err
	}
	s.sessions.Delete(id)
	return nil
}

func (s *documentService) find(userID, id string) (*documentSession, error) {
	doc, ok := s.sessions.Get(id)
	if !ok || doc.userID != userID {
		return nil, serverutils.NotFound("document session", id)
	}
	return doc, nil
}

func (s *documentService) response(doc *documentSession) *dto.DocumentSessionResponse {
	res := &dto.DocumentSessionResponse{
		Id:       doc.id,
		Type:     doc.kind,
		Messages: doc.robin.Messages(),
		Typing:   doc.robin.Pending() > 0,
	}
	for _, t := range documentTypes {
		if t.Id == doc.kind {
			res.Title = t.Title
		}
	}
	doc.mu.Lock()
	if doc.form != nil {
		form := *doc.form
		res.Form = &form
	}
	doc.mu.Unlock()
	return res
}
