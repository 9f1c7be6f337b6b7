package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/mgiraldez/aurelia/internal/domain"
	"github.com/mgiraldez/aurelia/internal/usecase"
)

type Server struct {
	mux        *http.ServeMux
	tmpl       *template.Template
	catalog    *usecase.CatalogUC
	contact    *usecase.ContactUC
	reviews    *usecase.ReviewUC
	newsletter *usecase.NewsletterUC
	storage    domain.FileStorage
	oauthCfg   *oauth2.Config

	adminAllowed map[string]struct{}
	adminSecret  []byte
}

func New(t *template.Template, catalog *usecase.CatalogUC, contact *usecase.ContactUC, reviews *usecase.ReviewUC, newsletter *usecase.NewsletterUC, fs domain.FileStorage, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		tmpl:       t,
		catalog:    catalog,
		contact:    contact,
		reviews:    reviews,
		newsletter: newsletter,
		storage:    fs,
		oauthCfg:   oauthCfg,
	}

	allowed := map[string]struct{}{}
	if raw := os.Getenv("ADMIN_ALLOWED_EMAILS"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				allowed[e] = struct{}{}
			}
		}
	}
	s.adminAllowed = allowed
	sec := os.Getenv("ADMIN_SESSION_SECRET")
	if sec == "" {
		sec = os.Getenv("SECRET_KEY")
	}
	if sec == "" {
		sec = "dev-admin-secret"
	}
	s.adminSecret = []byte(sec)

	s.routes()
	return Chain(s.mux,
		RateLimit(120),
		SecurityHeaders,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/public/", http.StripPrefix("/public/", http.FileServer(http.Dir("public"))))
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	s.mux.HandleFunc("/robots.txt", s.handleRobots)
	s.mux.HandleFunc("/sitemap.xml", s.handleSitemap)

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/products", s.handleProducts)
	s.mux.HandleFunc("/services", s.handleServices)
	s.mux.HandleFunc("/contact", s.handleContact)
	s.mux.HandleFunc("/reviews", s.handleReviews)
	s.mux.HandleFunc("/api/newsletter", s.handleNewsletterSignup)

	s.mux.HandleFunc("/admin/auth", s.handleAdminAuth)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)

	s.mux.HandleFunc("/admin", s.handleAdminDashboard)
	s.mux.HandleFunc("/admin/product-types", s.handleAdminProductTypes)
	s.mux.HandleFunc("/admin/product-types/create", s.handleAdminProductTypeCreate)
	s.mux.HandleFunc("/admin/product-types/update", s.handleAdminProductTypeUpdate)
	s.mux.HandleFunc("/admin/product-types/delete", s.handleAdminProductTypeDelete)
	s.mux.HandleFunc("/admin/products", s.handleAdminProducts)
	s.mux.HandleFunc("/admin/products/create", s.handleAdminProductCreate)
	s.mux.HandleFunc("/admin/products/update", s.handleAdminProductUpdate)
	s.mux.HandleFunc("/admin/products/delete", s.handleAdminProductDelete)
	s.mux.HandleFunc("/admin/newsletter", s.handleAdminNewsletter)
	s.mux.HandleFunc("/admin/newsletter/delete", s.handleAdminNewsletterDelete)
	s.mux.HandleFunc("/admin/newsletter/export", s.handleAdminNewsletterExport)
	s.mux.HandleFunc("/admin/contact", s.handleAdminContact)
	s.mux.HandleFunc("/admin/contact/status", s.handleAdminContactStatus)
	s.mux.HandleFunc("/admin/contact/delete", s.handleAdminContactDelete)
	s.mux.HandleFunc("/admin/reviews", s.handleAdminReviews)
	s.mux.HandleFunc("/admin/reviews/status", s.handleAdminReviewStatus)
	s.mux.HandleFunc("/admin/reviews/delete", s.handleAdminReviewDelete)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var pageErr error
	latest, _, err := s.catalog.ListProducts(r.Context(), domain.ProductFilter{Sort: "newest", Page: 1, PageSize: 8})
	if err != nil {
		log.Error().Err(err).Msg("home products")
		pageErr = err
	}
	types, err := s.catalog.ListTypes(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("home types")
		pageErr = err
	}
	approved, err := s.reviews.ListApproved(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("home reviews")
		pageErr = err
	}
	if len(approved) > 3 {
		approved = approved[:3]
	}
	data := map[string]any{
		"Products":   latest,
		"Types":      types,
		"Reviews":    approved,
		"Newsletter": r.URL.Query().Get("newsletter"),
	}
	if pageErr != nil {
		data["Error"] = errMessage(pageErr)
	}
	s.render(w, "home.html", data)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	page, _ := strconv.Atoi(qv.Get("page"))
	if page < 1 {
		page = 1
	}
	f := domain.ProductFilter{
		Query:    qv.Get("q"),
		Sort:     qv.Get("sort"),
		Page:     page,
		PageSize: 24,
	}
	if tid, err := uuid.Parse(qv.Get("type")); err == nil {
		f.TypeID = tid
	}
	list, total, err := s.catalog.ListProducts(r.Context(), f)
	if err != nil {
		s.renderError(w, "could not load products")
		return
	}
	types, _ := s.catalog.ListTypes(r.Context())
	pages := (int(total) + f.PageSize - 1) / f.PageSize
	if pages == 0 {
		pages = 1
	}
	s.render(w, "products.html", map[string]any{
		"Products": list,
		"Types":    types,
		"Total":    total,
		"Page":     page,
		"Pages":    pages,
		"Query":    f.Query,
		"Sort":     f.Sort,
		"TypeID":   qv.Get("type"),
	})
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	s.render(w, "services.html", map[string]any{})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "contact.html", map[string]any{"Sent": r.URL.Query().Get("sent") == "1"})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		m := &domain.ContactMessage{
			Name:    strings.TrimSpace(r.FormValue("name")),
			Email:   strings.TrimSpace(r.FormValue("email")),
			Subject: strings.TrimSpace(r.FormValue("subject")),
			Message: strings.TrimSpace(r.FormValue("message")),
		}
		if err := s.contact.Submit(r.Context(), m); err != nil {
			log.Error().Err(err).Msg("contact submit")
			s.render(w, "contact.html", map[string]any{"Error": errMessage(err), "Form": m})
			return
		}
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		approved, err := s.reviews.ListApproved(r.Context())
		if err != nil {
			s.renderError(w, "could not load reviews")
			return
		}
		s.render(w, "reviews.html", map[string]any{
			"Reviews": approved,
			"Sent":    r.URL.Query().Get("sent") == "1",
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		rv := &domain.Review{
			Name:    strings.TrimSpace(r.FormValue("name")),
			Email:   strings.TrimSpace(r.FormValue("email")),
			Content: strings.TrimSpace(r.FormValue("content")),
		}
		if err := s.reviews.Submit(r.Context(), rv); err != nil {
			log.Error().Err(err).Msg("review submit")
			approved, _ := s.reviews.ListApproved(r.Context())
			s.render(w, "reviews.html", map[string]any{"Error": errMessage(err), "Form": rv, "Reviews": approved})
			return
		}
		http.Redirect(w, r, "/reviews?sent=1", http.StatusSeeOther)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleNewsletterSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	email := ""
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		email = req.Email
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "form", 400)
			return
		}
		email = r.FormValue("email")
	}
	if _, err := s.newsletter.Subscribe(r.Context(), email); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, 400, map[string]any{"ok": false, "error": "Please enter a valid e-mail address."})
			return
		}
		log.Error().Err(err).Msg("newsletter subscribe")
		writeJSON(w, 500, map[string]any{"ok": false, "error": errMessage(err)})
		return
	}
	writeJSON(w, 201, map[string]any{"ok": true})
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nDisallow: /admin\nSitemap: %s/sitemap.xml\n", s.canonicalBase(r))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := s.canonicalBase(r)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprint(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+"\n")
	for _, p := range []string{"/", "/products", "/services", "/contact", "/reviews"} {
		fmt.Fprintf(w, "  <url><loc>%s%s</loc></url>\n", base, p)
	}
	fmt.Fprint(w, "</urlset>\n")
}

func (s *Server) canonicalBase(r *http.Request) string {
	if base := os.Getenv("BASE_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (s *Server) render(w http.ResponseWriter, name string, data map[string]any) {
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", 500)
	}
}

func (s *Server) renderError(w http.ResponseWriter, msg string) {
	w.WriteHeader(500)
	s.render(w, "error.html", map[string]any{"Error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// errMessage converts domain errors into the string shown to the user.
func errMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("The %s field is required.", ve.Field)
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return fmt.Sprintf("Cannot delete: %d product(s) still use this type.", ce.Dependents)
	}
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return fmt.Sprintf("Cannot change status from %s to %s.", te.From, te.To)
	}
	var ue *domain.UploadError
	if errors.As(err, &ue) {
		return "Image upload failed, nothing was saved. Please try again."
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "The record no longer exists."
	}
	return "Something went wrong. Please try again."
}
