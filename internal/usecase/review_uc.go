package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mgiraldez/aurelia/internal/domain"
)

type ReviewUC struct {
	Reviews domain.ReviewRepo
}

// Submit stores a review from the public form. Reviews start pending and
// are only shown publicly once approved.
func (uc *ReviewUC) Submit(ctx context.Context, rv *domain.Review) error {
	for field, v := range map[string]string{
		"name":    rv.Name,
		"email":   rv.Email,
		"content": rv.Content,
	} {
		if strings.TrimSpace(v) == "" {
			return &domain.ValidationError{Field: field}
		}
	}
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	rv.Status = domain.ReviewStatusPending
	return uc.Reviews.Save(ctx, rv)
}

func (uc *ReviewUC) List(ctx context.Context) ([]domain.Review, error) {
	return uc.Reviews.List(ctx, "")
}

func (uc *ReviewUC) ListApproved(ctx context.Context) ([]domain.Review, error) {
	return uc.Reviews.List(ctx, domain.ReviewStatusApproved)
}

// SetStatus approves or rejects a pending review. Both outcomes are
// terminal: a moderated review never changes status again.
func (uc *ReviewUC) SetStatus(ctx context.Context, id uuid.UUID, to domain.ReviewStatus) (*domain.Review, error) {
	rv, err := uc.Reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rv.Status.CanTransition(to) {
		return nil, &domain.TransitionError{From: string(rv.Status), To: string(to)}
	}
	return uc.Reviews.Update(ctx, id, map[string]any{"status": to})
}

func (uc *ReviewUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Reviews.Delete(ctx, id)
}
