package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TxRunner executes fn inside a storage transaction. Production wiring uses
// db.RunInTx so the invoice and its line items commit together.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// PassthroughTx runs fn directly, without a transaction.
func PassthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Service struct {
	invoices InvoiceRepository
	runTx    TxRunner
}

func NewService(invoices InvoiceRepository, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = PassthroughTx
	}
	return &Service{invoices: invoices, runTx: runTx}
}

// CreateInvoice validates the line items, recomputes each amount and the
// invoice total from quantity and unit price, and writes everything in one
// transaction. New invoices always start as drafts.
func (s *Service) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if inv.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if len(inv.Items) == 0 {
		return fmt.Errorf("invoice needs at least one line item")
	}
	if inv.Currency == "" {
		inv.Currency = "USD"
	}

	var total int64
	for _, item := range inv.Items {
		if item.Description == "" {
			return fmt.Errorf("line item description is required")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("line item quantity must be positive")
		}
		if item.UnitPriceCents < 0 {
			return fmt.Errorf("line item unit_price_cents must not be negative")
		}
		item.AmountCents = int64(item.Quantity) * item.UnitPriceCents
		total += item.AmountCents
	}
	inv.Status = StatusDraft
	inv.TotalCents = total

	return s.runTx(ctx, func(ctx context.Context) error {
		if err := s.invoices.Create(ctx, inv); err != nil {
			return err
		}
		for _, item := range inv.Items {
			item.InvoiceID = inv.ID
			if err := s.invoices.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.invoices.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// TransitionInvoice moves an invoice along its lifecycle. Issuing stamps
// issued_at; a paid or cancelled invoice is final.
func (s *Service) TransitionInvoice(ctx context.Context, id uuid.UUID, status string) (*Invoice, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(inv.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, inv.Status, status)
	}
	issued := status == StatusIssued
	if err := s.invoices.UpdateStatus(ctx, id, status, issued); err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, id)
}

// DeleteInvoice removes an invoice. Only drafts may be deleted; anything
// issued stays on the books and should be cancelled instead.
func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != StatusDraft {
		return fmt.Errorf("%w: only draft invoices can be deleted", ErrInvalidTransition)
	}
	return s.invoices.Delete(ctx, id)
}

func (s *Service) ListInvoicesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	return s.invoices.ListByPatient(ctx, patientID, limit, offset)
}
