package memory

import (
	"context"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"

	"github.com/google/uuid"
)

type leadRepository struct {
	rows *store[uuid.UUID, entity.Lead]
}

func NewLeadRepository() contract.LeadRepository {
	return &leadRepository{rows: newStore[uuid.UUID, entity.Lead](func(l *entity.Lead) uuid.UUID { return l.Id })}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.Id == uuid.Nil {
		lead.Id = uuid.New()
	}
	r.rows.upsert(lead)
	return nil
}

func (r *leadRepository) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	return r.rows.findAll(), nil
}
