package httpserver_test

import (
	"bytes"
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mgiraldez/aurelia/internal/adapters/httpserver"
	"github.com/mgiraldez/aurelia/internal/adapters/repo/mocks"
	"github.com/mgiraldez/aurelia/internal/app"
	"github.com/mgiraldez/aurelia/internal/domain"
	"github.com/mgiraldez/aurelia/internal/usecase"
	"github.com/mgiraldez/aurelia/internal/views"
)

type testEnv struct {
	handler    http.Handler
	types      *mocks.MockProductTypeRepo
	products   *mocks.MockProductRepo
	contact    *mocks.MockContactRepo
	reviews    *mocks.MockReviewRepo
	newsletter *mocks.MockNewsletterRepo
	storage    *mocks.MockFileStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ADMIN_PASS", "")
	t.Setenv("ADMIN_ALLOWED_EMAILS", "")
	t.Setenv("SECRET_KEY", "test-secret")

	tmpl, err := template.New("layout").Funcs(app.TemplateFuncs()).ParseFS(views.FS, "*.html", "admin/*.html")
	assert.NoError(t, err)

	e := &testEnv{
		types:      new(mocks.MockProductTypeRepo),
		products:   new(mocks.MockProductRepo),
		contact:    new(mocks.MockContactRepo),
		reviews:    new(mocks.MockReviewRepo),
		newsletter: new(mocks.MockNewsletterRepo),
		storage:    new(mocks.MockFileStorage),
	}
	e.handler = httpserver.New(
		tmpl,
		&usecase.CatalogUC{Types: e.types, Products: e.products},
		&usecase.ContactUC{Messages: e.contact},
		&usecase.ReviewUC{Reviews: e.reviews},
		&usecase.NewsletterUC{Subscribers: e.newsletter},
		e.storage,
		nil,
	)
	return e
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	form := url.Values{"user": {"admin"}, "pass": {"admin123"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "admin_token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no admin session cookie issued")
	return nil
}

func TestAdminPagesRedirectWithoutSession(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/admin", "/admin/product-types", "/admin/products", "/admin/newsletter", "/admin/contact", "/admin/reviews"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/admin/auth", rec.Header().Get("Location"), path)
	}
	// The guard runs before any data fetch.
	e.products.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	e.contact.AssertNotCalled(t, "List", mock.Anything)
}

func TestAdminSessionGrantsAccess(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.login(t)

	e.products.On("List", mock.Anything, mock.Anything).Return([]domain.Product{}, int64(0), nil).Once()
	e.types.On("List", mock.Anything).Return([]domain.ProductType{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	e.products.AssertExpectations(t)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	e := newTestEnv(t)

	form := url.Values{"user": {"admin"}, "pass": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.Empty(t, rec.Result().Cookies())
}

func TestContactFormMissingFieldSkipsRepository(t *testing.T) {
	e := newTestEnv(t)

	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "subject": {"Hi"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "message field is required")
	// Typed values survive the failed submit.
	assert.Contains(t, rec.Body.String(), "Ada")
	e.contact.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactFormSubmitRedirects(t *testing.T) {
	e := newTestEnv(t)
	e.contact.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	form := url.Values{
		"name": {"Ada"}, "email": {"ada@example.com"},
		"subject": {"Ring sizing"}, "message": {"Can you resize a ring?"},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact?sent=1", rec.Header().Get("Location"))
	e.contact.AssertExpectations(t)
}

func TestNewsletterSignup(t *testing.T) {
	e := newTestEnv(t)
	e.newsletter.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(`{"email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	e.newsletter.AssertExpectations(t)
}

func TestNewsletterSignupRejectsBadEmail(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e.newsletter.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReviewsPageListsApprovedOnly(t *testing.T) {
	e := newTestEnv(t)
	e.reviews.On("List", mock.Anything, domain.ReviewStatusApproved).
		Return([]domain.Review{{Name: "Ada", Content: "Lovely ring", Status: domain.ReviewStatusApproved}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lovely ring")
	e.reviews.AssertExpectations(t)
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, mw.WriteField(k, v))
	}
	assert.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProductEditFailureKeepsTypedValues(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.login(t)

	id := uuid.New()
	stored := domain.Product{ID: id, Name: "Plain Band", Price: 120}
	e.products.On("List", mock.Anything, mock.Anything).Return([]domain.Product{stored}, int64(1), nil).Once()
	e.types.On("List", mock.Anything).Return([]domain.ProductType{}, nil).Once()

	body, contentType := multipartForm(t, map[string]string{
		"id":    id.String(),
		"name":  "Engraved Gold Band",
		"price": "abc",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/products/update", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price must be a number.")
	// The edit form re-opens with the typed values, not the stored ones.
	assert.Contains(t, rec.Body.String(), `value="Engraved Gold Band"`)
	assert.Contains(t, rec.Body.String(), "<details open>")
	e.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductTypeEditFailureKeepsTypedValues(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.login(t)

	id := uuid.New()
	stored := domain.ProductType{ID: id, Name: "Rings"}
	e.types.On("List", mock.Anything).Return([]domain.ProductType{stored}, nil).Once()
	e.products.On("CountByType", mock.Anything, id).Return(int64(0), nil).Once()
	e.types.On("Update", mock.Anything, id, mock.Anything).Return(nil, domain.ErrNotFound).Once()

	body, contentType := multipartForm(t, map[string]string{
		"id":   id.String(),
		"name": "Wedding Rings",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/product-types/update", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Wedding Rings"`)
	assert.Contains(t, rec.Body.String(), "<details open>")
}

func TestAdminContactListErrorIsShown(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.login(t)

	e.contact.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/contact", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-error")
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestHomeListErrorIsShown(t *testing.T) {
	e := newTestEnv(t)

	e.products.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("connection refused")).Once()
	e.types.On("List", mock.Anything).Return([]domain.ProductType{}, nil).Once()
	e.reviews.On("List", mock.Anything, domain.ReviewStatusApproved).Return([]domain.Review{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-error")
}

func TestNewsletterExportIsSpreadsheet(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.login(t)

	e.newsletter.On("List", mock.Anything).
		Return([]domain.Subscriber{{Email: "a@example.com"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/newsletter/export", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "subscribers.xlsx")
	assert.NotZero(t, rec.Body.Len())
	e.newsletter.AssertExpectations(t)
}

func TestDeleteProductTypeConflictShowsDependentCount(t *testing.T) {
	e := newTestEnv(t)
	cookie := e.login(t)

	typeID := "0f0f0f0f-0f0f-0f0f-0f0f-0f0f0f0f0f0f"
	e.products.On("CountByType", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	// The page re-renders with the error and a fresh list.
	e.types.On("List", mock.Anything).Return([]domain.ProductType{}, nil).Once()

	form := url.Values{"id": {typeID}}
	req := httptest.NewRequest(http.MethodPost, "/admin/product-types/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 product(s) still use this type")
	e.types.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
