package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mgiraldez/aurelia/internal/domain"
)

type ContactUC struct {
	Messages domain.ContactRepo
	Notifier domain.ContactNotifier
}

// Submit stores a message from the public contact form. New messages
// always start in status "new".
func (uc *ContactUC) Submit(ctx context.Context, m *domain.ContactMessage) error {
	for field, v := range map[string]string{
		"name":    m.Name,
		"email":   m.Email,
		"subject": m.Subject,
		"message": m.Message,
	} {
		if strings.TrimSpace(v) == "" {
			return &domain.ValidationError{Field: field}
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Status = domain.ContactStatusNew
	if err := uc.Messages.Save(ctx, m); err != nil {
		return err
	}
	if uc.Notifier != nil {
		if err := uc.Notifier.NotifyContactMessage(m); err != nil {
			log.Warn().Err(err).Msg("contact notification")
		}
	}
	return nil
}

func (uc *ContactUC) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return uc.Messages.List(ctx)
}

// SetStatus moves a message forward in its lifecycle. Transitions that
// would move it backwards, or out of replied, are rejected.
func (uc *ContactUC) SetStatus(ctx context.Context, id uuid.UUID, to domain.ContactStatus) (*domain.ContactMessage, error) {
	m, err := uc.Messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Status.CanTransition(to) {
		return nil, &domain.TransitionError{From: string(m.Status), To: string(to)}
	}
	return uc.Messages.Update(ctx, id, map[string]any{"status": to})
}

func (uc *ContactUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Messages.Delete(ctx, id)
}
