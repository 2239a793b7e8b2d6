package catalog

import (
	"context"

	"github.com/google/uuid"
)

type SpecialtyRepository interface {
	Create(ctx context.Context, s *Specialty) error
	GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error)
	Update(ctx context.Context, s *Specialty) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Specialty, int, error)
}

type ClinicalServiceRepository interface {
	Create(ctx context.Context, cs *ClinicalService) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicalService, error)
	Update(ctx context.Context, cs *ClinicalService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*ClinicalService, int, error)
}

type RoomRepository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Room, int, error)
}
