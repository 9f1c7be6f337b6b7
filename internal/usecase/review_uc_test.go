package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mgiraldez/aurelia/internal/adapters/repo/mocks"
	"github.com/mgiraldez/aurelia/internal/domain"
)

func TestReviewSubmitStartsPending(t *testing.T) {
	repo := new(mocks.MockReviewRepo)
	uc := &ReviewUC{Reviews: repo}
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	rv := &domain.Review{Name: "Ada", Email: "ada@example.com", Content: "Beautiful craftsmanship."}
	assert.NoError(t, uc.Submit(context.TODO(), rv))
	assert.Equal(t, domain.ReviewStatusPending, rv.Status)
	assert.NotEqual(t, uuid.Nil, rv.ID)
	repo.AssertExpectations(t)
}

func TestReviewSubmitRequiredFields(t *testing.T) {
	repo := new(mocks.MockReviewRepo)
	uc := &ReviewUC{Reviews: repo}

	err := uc.Submit(context.TODO(), &domain.Review{Name: "Ada", Email: "ada@example.com"})

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "content", ve.Field)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReviewApproveAndRejectFromPending(t *testing.T) {
	for _, to := range []domain.ReviewStatus{domain.ReviewStatusApproved, domain.ReviewStatusRejected} {
		repo := new(mocks.MockReviewRepo)
		uc := &ReviewUC{Reviews: repo}
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(&domain.Review{ID: id, Status: domain.ReviewStatusPending}, nil).Once()
		repo.On("Update", mock.Anything, id, map[string]any{"status": to}).
			Return(&domain.Review{ID: id, Status: to}, nil).Once()

		rv, err := uc.SetStatus(context.TODO(), id, to)
		assert.NoError(t, err)
		assert.Equal(t, to, rv.Status)
		repo.AssertExpectations(t)
	}
}

func TestReviewModerationIsTerminal(t *testing.T) {
	for _, from := range []domain.ReviewStatus{domain.ReviewStatusApproved, domain.ReviewStatusRejected} {
		repo := new(mocks.MockReviewRepo)
		uc := &ReviewUC{Reviews: repo}
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(&domain.Review{ID: id, Status: from}, nil).Once()

		_, err := uc.SetStatus(context.TODO(), id, domain.ReviewStatusApproved)
		var te *domain.TransitionError
		assert.ErrorAs(t, err, &te)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	}
}
