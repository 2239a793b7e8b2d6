package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	specialties SpecialtyRepository
	services    ClinicalServiceRepository
	rooms       RoomRepository
}

func NewService(specialties SpecialtyRepository, services ClinicalServiceRepository, rooms RoomRepository) *Service {
	return &Service{specialties: specialties, services: services, rooms: rooms}
}

// -- Specialty --

func (s *Service) CreateSpecialty(ctx context.Context, sp *Specialty) error {
	if sp.Code == "" {
		return fmt.Errorf("code is required")
	}
	if sp.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sp.Active == nil {
		active := true
		sp.Active = &active
	}
	return s.specialties.Create(ctx, sp)
}

func (s *Service) GetSpecialty(ctx context.Context, id uuid.UUID) (*Specialty, error) {
	return s.specialties.GetByID(ctx, id)
}

func (s *Service) UpdateSpecialty(ctx context.Context, sp *Specialty) error {
	if sp.Code == "" || sp.Name == "" {
		return fmt.Errorf("code and name are required")
	}
	return s.specialties.Update(ctx, sp)
}

func (s *Service) DeleteSpecialty(ctx context.Context, id uuid.UUID) error {
	return s.specialties.Delete(ctx, id)
}

func (s *Service) ListSpecialties(ctx context.Context, limit, offset int) ([]*Specialty, int, error) {
	return s.specialties.List(ctx, limit, offset)
}

// -- Clinical Service --

func (s *Service) CreateClinicalService(ctx context.Context, cs *ClinicalService) error {
	if cs.Code == "" {
		return fmt.Errorf("code is required")
	}
	if cs.Name == "" {
		return fmt.Errorf("name is required")
	}
	if cs.PriceCents < 0 {
		return fmt.Errorf("price_cents must not be negative")
	}
	if cs.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if cs.Active == nil {
		active := true
		cs.Active = &active
	}
	return s.services.Create(ctx, cs)
}

func (s *Service) GetClinicalService(ctx context.Context, id uuid.UUID) (*ClinicalService, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) UpdateClinicalService(ctx context.Context, cs *ClinicalService) error {
	if cs.PriceCents < 0 {
		return fmt.Errorf("price_cents must not be negative")
	}
	if cs.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.services.Update(ctx, cs)
}

func (s *Service) DeleteClinicalService(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}

func (s *Service) ListClinicalServices(ctx context.Context, limit, offset int) ([]*ClinicalService, int, error) {
	return s.services.List(ctx, limit, offset)
}

// -- Room --

func (s *Service) CreateRoom(ctx context.Context, rm *Room) error {
	if rm.Code == "" {
		return fmt.Errorf("code is required")
	}
	if rm.Name == "" {
		return fmt.Errorf("name is required")
	}
	if rm.Active == nil {
		active := true
		rm.Active = &active
	}
	return s.rooms.Create(ctx, rm)
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) UpdateRoom(ctx context.Context, rm *Room) error {
	if rm.Code == "" || rm.Name == "" {
		return fmt.Errorf("code and name are required")
	}
	return s.rooms.Update(ctx, rm)
}

func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return s.rooms.Delete(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	return s.rooms.List(ctx, limit, offset)
}
