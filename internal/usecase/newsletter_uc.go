package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mgiraldez/aurelia/internal/domain"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type NewsletterUC struct {
	Subscribers domain.NewsletterRepo
}

// Subscribe stores a signup from the public newsletter form. Duplicate
// e-mails are accepted; there is no client-side uniqueness check.
func (uc *NewsletterUC) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email = strings.TrimSpace(email)
	if email == "" || !emailRe.MatchString(email) {
		return nil, &domain.ValidationError{Field: "email"}
	}
	s := &domain.Subscriber{ID: uuid.New(), Email: email}
	if err := uc.Subscribers.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *NewsletterUC) List(ctx context.Context) ([]domain.Subscriber, error) {
	return uc.Subscribers.List(ctx)
}

func (uc *NewsletterUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Subscribers.Delete(ctx, id)
}
