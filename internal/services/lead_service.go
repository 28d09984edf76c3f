package services

import (
	"context"
	"errors"
	"log"
	"time"

	"leadmart/internal/caching"
	"leadmart/internal/models"
	"leadmart/internal/repositories"

	"github.com/google/uuid"
)

const (
	leadCacheTTL     = 5 * time.Minute
	leadListCacheTTL = 1 * time.Minute
)

type LeadService interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Lead, error)
}

type leadService struct {
	leadRepo        repositories.LeadRepository
	notificationSvc NotificationService
	cacheSvc        caching.CacheService
}

func NewLeadService(leadRepo repositories.LeadRepository, notificationSvc NotificationService, cacheSvc caching.CacheService) LeadService {
	return &leadService{
		leadRepo:        leadRepo,
		notificationSvc: notificationSvc,
		cacheSvc:        cacheSvc,
	}
}

// Create persists a new lead and enqueues the creation notification. The
// notification is an outbox row, so a mail transport outage cannot fail the
// request; the pending row is picked up by the dispatcher later.
func (s *leadService) Create(ctx context.Context, lead *models.Lead) error {
	if lead.FirstName == "" {
		return errors.New("first name is required")
	}
	if lead.LastName == "" {
		return errors.New("last name is required")
	}
	if lead.Age < 0 {
		return errors.New("age must not be negative")
	}

	lead.ID = uuid.New()
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return err
	}

	if err := s.notificationSvc.EnqueueLeadCreated(ctx, lead); err != nil {
		// The lead is already persisted; log and move on rather than
		// surfacing a notification problem to the form.
		log.Printf("WARN: failed to enqueue lead.created notification for %s: %v", lead.ID, err)
	}

	s.invalidate(ctx, lead.ID)
	return nil
}

func (s *leadService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	if cached, err := s.cacheSvc.GetLead(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetLead(ctx, lead, leadCacheTTL); err != nil {
		log.Printf("WARN: failed to cache lead %s: %v", lead.ID, err)
	}
	return lead, nil
}

func (s *leadService) Update(ctx context.Context, lead *models.Lead) error {
	if lead.FirstName == "" {
		return errors.New("first name is required")
	}
	if lead.LastName == "" {
		return errors.New("last name is required")
	}
	if lead.Age < 0 {
		return errors.New("age must not be negative")
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return err
	}

	s.invalidate(ctx, lead.ID)
	return nil
}

// Delete removes the lead. Deleting an id that no longer exists is not an
// error; the handler redirects either way.
func (s *leadService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *leadService) List(ctx context.Context) ([]*models.Lead, error) {
	if cached, err := s.cacheSvc.GetLeadList(ctx); err == nil && cached != nil {
		return cached, nil
	}

	leads, err := s.leadRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetLeadList(ctx, leads, leadListCacheTTL); err != nil {
		log.Printf("WARN: failed to cache lead list: %v", err)
	}
	return leads, nil
}

func (s *leadService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheSvc.DeleteLead(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate lead cache for %s: %v", id, err)
	}
	if err := s.cacheSvc.InvalidateLeadList(ctx); err != nil {
		log.Printf("WARN: failed to invalidate lead list cache: %v", err)
	}
}
