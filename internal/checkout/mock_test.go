package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
)

func validSubmission() domain.Submission {
	return domain.Submission{
		Size:       "6yd",
		Items:      []string{"Mattress"},
		Placement:  domain.PlacementRoad,
		ProviderID: "rapid-waste",
		Customer: domain.Customer{
			Name:  "Sam Carter",
			Email: "sam@example.com",
			Phone: "07700900123",
		},
	}
}

func TestSubmitAssignsReference(t *testing.T) {
	fixed := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	m := NewMockSubmitter(logger.New(logger.LevelOff, nil), WithUUIDSource(func() uuid.UUID { return fixed }))

	conf, err := m.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Reference != "SKP-3F2A9C1E" {
		t.Fatalf("expected SKP-3F2A9C1E, got %s", conf.Reference)
	}
	if conf.Submission.ProviderID != "rapid-waste" {
		t.Fatalf("submission not carried through: %+v", conf.Submission)
	}
	if got := m.Confirmations(); len(got) != 1 {
		t.Fatalf("expected 1 recorded confirmation, got %d", len(got))
	}
}

func TestSubmitRandomReferenceShape(t *testing.T) {
	m := NewMockSubmitter(logger.New(logger.LevelOff, nil))
	conf, err := m.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(conf.Reference, ReferencePrefix) || len(conf.Reference) != len(ReferencePrefix)+8 {
		t.Fatalf("unexpected reference %q", conf.Reference)
	}
	if strings.ToUpper(conf.Reference) != conf.Reference {
		t.Fatalf("reference should be upper case: %q", conf.Reference)
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Submission)
	}{
		{"no size", func(s *domain.Submission) { s.Size = "" }},
		{"no provider", func(s *domain.Submission) { s.ProviderID = "" }},
		{"no name", func(s *domain.Submission) { s.Customer.Name = "  " }},
		{"no email", func(s *domain.Submission) { s.Customer.Email = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockSubmitter(logger.New(logger.LevelOff, nil))
			sub := validSubmission()
			tt.mutate(&sub)
			_, err := m.Submit(context.Background(), sub)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(m.Confirmations()) != 0 {
				t.Fatal("rejected submission was recorded")
			}
		})
	}
}

func TestSubmitCancelledContext(t *testing.T) {
	m := NewMockSubmitter(logger.New(logger.LevelOff, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Submit(ctx, validSubmission()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
