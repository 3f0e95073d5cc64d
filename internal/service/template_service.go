package service

import (
	"context"
	"regexp"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

type ITemplateService interface {
	List(ctx context.Context, templateType string) ([]dto.TemplateResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error)
	Create(ctx context.Context, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	Update(ctx context.Context, req *dto.TemplateRequest) (*dto.TemplateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error)
	Render(ctx context.Context, id uuid.UUID, req *dto.RenderTemplateRequest) (*dto.RenderTemplateResponse, error)
}

type templateService struct {
	templates contract.TemplateRepository
	clock     scheduler.Scheduler
}

func NewTemplateService(templates contract.TemplateRepository, clock scheduler.Scheduler) ITemplateService {
	return &templateService{templates: templates, clock: clock}
}

func (s *templateService) List(ctx context.Context, templateType string) ([]dto.TemplateResponse, error) {
	rows, err := s.templates.FindAll(ctx, specification.TemplateByType{Type: templateType})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, templateResponse(t))
	}
	return out, nil
}

func (s *templateService) Show(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := templateResponse(t)
	return &res, nil
}

func (s *templateService) Create(ctx context.Context, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	t := &entity.Template{
		Id:          uuid.New(),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Content:     req.Content,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	res := templateResponse(t)
	return &res, nil
}

func (s *templateService) Update(ctx context.Context, req *dto.TemplateRequest) (*dto.TemplateResponse, error) {
	t, err := s.find(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	t.Name = req.Name
	t.Type = req.Type
	t.Description = req.Description
	t.Content = req.Content
	t.UpdatedAt = &now

	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	res := templateResponse(t)
	return &res, nil
}

func (s *templateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}

func (s *templateService) Duplicate(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error) {
	src, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, &dto.TemplateRequest{
		Name:        src.Name + " (Copy)",
		Type:        src.Type,
		Description: src.Description,
		Content:     src.Content,
	})
}

func (s *templateService) Render(ctx context.Context, id uuid.UUID, req *dto.RenderTemplateRequest) (*dto.RenderTemplateResponse, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	content, missing := RenderPlaceholders(t.Content, req.Values)
	return &dto.RenderTemplateResponse{Content: content, Missing: missing}, nil
}

// RenderPlaceholders substitutes {{name}} with values[name]. Unknown names
// stay in the text and are reported once each, in order of appearance.
func RenderPlaceholders(content string, values map[string]string) (string, []string) {
	missing := []string{}
	seen := make(map[string]bool)
	out := placeholderPattern.ReplaceAllStringFunc(content, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		if v, ok := values[name]; ok {
			return v
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return m
	})
	return out, missing
}

// Placeholders lists the distinct placeholder names in content.
func Placeholders(content string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

func (s *templateService) find(ctx context.Context, id uuid.UUID) (*entity.Template, error) {
	t, err := s.templates.FindOne(ctx, specification.TemplateByID{ID: id})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, serverutils.NotFound("template", id.String())
	}
	return t, nil
}

func templateResponse(t *entity.Template) dto.TemplateResponse {
	return dto.TemplateResponse{
		Id:           t.Id,
		Name:         t.Name,
		Type:         t.Type,
		Description:  t.Description,
		Content:      t.Content,
		Placeholders: Placeholders(t.Content),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
