package entity

import (
	"time"

	"github.com/google/uuid"
)

type Template struct {
	Id          uuid.UUID
	Name        string
	Type        string
	Description string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
