package app

import (
	"html/template"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/mgiraldez/aurelia/internal/adapters/httpserver"
	"github.com/mgiraldez/aurelia/internal/adapters/notify"
	"github.com/mgiraldez/aurelia/internal/adapters/repo/postgres"
	"github.com/mgiraldez/aurelia/internal/adapters/storage/localfs"
	"github.com/mgiraldez/aurelia/internal/domain"
	"github.com/mgiraldez/aurelia/internal/usecase"
	"github.com/mgiraldez/aurelia/internal/views"
)

type App struct {
	DB          *gorm.DB
	Tmpl        *template.Template
	Catalog     *usecase.CatalogUC
	Contact     *usecase.ContactUC
	Reviews     *usecase.ReviewUC
	Newsletter  *usecase.NewsletterUC
	Storage     domain.FileStorage
	OAuthConfig *oauth2.Config
}

func NewApp(db *gorm.DB) (*App, error) {
	typeRepo := postgres.NewProductTypeRepo(db)
	productRepo := postgres.NewProductRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	newsletterRepo := postgres.NewNewsletterRepo(db)

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "uploads"
	}
	_ = os.MkdirAll(storageDir, 0o755)
	storage := localfs.New(storageDir)

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	a := &App{
		DB:          db,
		Catalog:     &usecase.CatalogUC{Types: typeRepo, Products: productRepo},
		Contact:     &usecase.ContactUC{Messages: contactRepo, Notifier: notify.NewMailerFromEnv()},
		Reviews:     &usecase.ReviewUC{Reviews: reviewRepo},
		Newsletter:  &usecase.NewsletterUC{Subscribers: newsletterRepo},
		Storage:     storage,
		OAuthConfig: oauthCfg,
	}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	isDev := appEnv == "" || appEnv == "development" || appEnv == "dev"

	var tmpl *template.Template
	var err error
	if isDev {
		tmpl, err = template.New("layout").Funcs(TemplateFuncs()).ParseGlob("internal/views/*.html")
		if err != nil {
			return nil, err
		}
		_, err = tmpl.ParseGlob("internal/views/admin/*.html")
		if err != nil {
			return nil, err
		}
	} else {
		tmpl, err = template.New("layout").Funcs(TemplateFuncs()).ParseFS(views.FS, "*.html", "admin/*.html")
		if err != nil {
			return nil, err
		}
	}
	a.Tmpl = tmpl

	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.Catalog, a.Contact, a.Reviews, a.Newsletter, a.Storage, a.OAuthConfig)
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.ProductType{}, &domain.Product{}, &domain.ContactMessage{}, &domain.Review{}, &domain.Subscriber{},
	); err != nil {
		return err
	}

	// The usecase layer pre-checks dependents before a type delete; this
	// constraint is the authoritative guard behind that racy check.
	_ = a.DB.Exec(`DO $$ BEGIN
		ALTER TABLE products ADD CONSTRAINT fk_products_product_type
			FOREIGN KEY (product_type_id) REFERENCES product_types(id) ON DELETE RESTRICT;
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`).Error

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_contact_messages_status ON contact_messages(status)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_reviews_status ON reviews(status)").Error
	_ = a.DB.Exec("UPDATE products SET image_url = '" + domain.DefaultProductImage + "' WHERE image_url IS NULL OR image_url = ''").Error

	return nil
}
