package service

import (
	"context"
	"errors"
	"log"

	"adastra/internal/domain"
	"adastra/internal/leads"
	"adastra/pkg/notify"
)

var ErrStorageUnavailable = errors.New("lead storage not configured")

// Notifier announces captured leads.
type Notifier interface {
	Send(ctx context.Context, lead notify.Lead) error
}

// LeadService validates and stores the website's form submissions.
type LeadService struct {
	repo     leads.Repository
	notifier Notifier
}

// NewLeadService creates a LeadService. repo may be nil when no database is
// configured, in which case every submission fails with ErrStorageUnavailable.
// notifier may be nil.
func NewLeadService(repo leads.Repository, notifier Notifier) *LeadService {
	return &LeadService{repo: repo, notifier: notifier}
}

func (s *LeadService) SubscribeNewsletter(ctx context.Context, n domain.NewsletterSubscription) error {
	n.Normalize()
	if err := n.Validate(); err != nil {
		return err
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	if err := s.repo.SaveNewsletter(ctx, n); err != nil {
		return err
	}
	s.notify(ctx, notify.Lead{Kind: "newsletter", Email: n.Email, Summary: "source: " + n.Source})
	return nil
}

func (s *LeadService) SubmitContact(ctx context.Context, c domain.ContactSubmission) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	if err := s.repo.SaveContact(ctx, c); err != nil {
		return err
	}
	s.notify(ctx, notify.Lead{Kind: "contact", Email: c.Email, Name: c.FullName, Summary: "inquiry: " + c.InquiryType})
	return nil
}

func (s *LeadService) SubmitCV(ctx context.Context, c domain.CVSubmission) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	if err := s.repo.SaveCV(ctx, c); err != nil {
		return err
	}
	s.notify(ctx, notify.Lead{Kind: "cv", Email: c.Email, Name: c.FullName, Summary: "role: " + c.JobRole})
	return nil
}

func (s *LeadService) RequestConsultation(ctx context.Context, c domain.ConsultationRequest) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	if s.repo == nil {
		return ErrStorageUnavailable
	}
	if err := s.repo.SaveConsultation(ctx, c); err != nil {
		return err
	}
	s.notify(ctx, notify.Lead{Kind: "consultation", Email: c.Email, Name: c.FullName, Summary: "service: " + c.ServiceInterest})
	return nil
}

func (s *LeadService) notify(ctx context.Context, lead notify.Lead) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, lead); err != nil {
		log.Printf("LEADS: failed to notify %s lead for %s: %v", lead.Kind, lead.Email, err)
	}
}
