package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mgiraldez/aurelia/internal/adapters/repo/mocks"
	"github.com/mgiraldez/aurelia/internal/domain"
)

func TestSubscribeValidatesEmail(t *testing.T) {
	repo := new(mocks.MockNewsletterRepo)
	uc := &NewsletterUC{Subscribers: repo}

	for _, email := range []string{"", "   ", "not-an-email", "a@b"} {
		_, err := uc.Subscribe(context.TODO(), email)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve, "email %q", email)
	}
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubscribeStoresSignup(t *testing.T) {
	repo := new(mocks.MockNewsletterRepo)
	uc := &NewsletterUC{Subscribers: repo}
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	s, err := uc.Subscribe(context.TODO(), "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "a@example.com", s.Email)
	repo.AssertExpectations(t)
}

// Duplicate signups are accepted: there is no uniqueness check on this
// side, every valid submission becomes a row.
func TestSubscribeAllowsDuplicates(t *testing.T) {
	repo := new(mocks.MockNewsletterRepo)
	uc := &NewsletterUC{Subscribers: repo}
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Twice()

	first, err := uc.Subscribe(context.TODO(), "a@example.com")
	assert.NoError(t, err)
	second, err := uc.Subscribe(context.TODO(), "a@example.com")
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	repo.AssertExpectations(t)
}
