// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pixelit-club/clubhub/internal/app/catalog"
	collectionsfeature "github.com/pixelit-club/clubhub/internal/app/features/collections"
	healthfeature "github.com/pixelit-club/clubhub/internal/app/features/health"
	loginfeature "github.com/pixelit-club/clubhub/internal/app/features/login"
	sendqueryfeature "github.com/pixelit-club/clubhub/internal/app/features/sendquery"
	adminstore "github.com/pixelit-club/clubhub/internal/app/store/admins"
	recordstore "github.com/pixelit-club/clubhub/internal/app/store/records"
	"github.com/pixelit-club/clubhub/internal/app/system/auth"
	"github.com/pixelit-club/clubhub/internal/app/system/mailer"
	"github.com/pixelit-club/clubhub/internal/app/system/storage"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ClubHub initializes the token signer,
// the storage backend, and the mail relay, then mounts the API feature
// routers under /api plus the health endpoint and static file serving.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokens(appCfg.JWTSecret, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token signer init failed", zap.Error(err))
		return nil, err
	}

	store, err := storage.New(storage.Config{
		Type:      appCfg.StorageType,
		LocalPath: appCfg.StorageLocalPath,
		LocalURL:  appCfg.StorageLocalURL,
		S3Region:  appCfg.StorageS3Region,
		S3Bucket:  appCfg.StorageS3Bucket,
		S3Prefix:  appCfg.StorageS3Prefix,
		PublicURL: appCfg.StoragePublicURL,
	}, logger)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	var mail mailer.Mailer
	if appCfg.MailResendKey != "" {
		mail, err = mailer.NewResend(appCfg.MailResendKey, appCfg.MailFrom, appCfg.MailFromName, logger)
		if err != nil {
			logger.Error("mailer init failed", zap.Error(err))
			return nil, err
		}
	} else {
		logger.Warn("mail_resend_key not set, contact-form delivery is disabled")
		mail = mailer.Disabled{}
	}

	cat := catalog.Default()
	records := recordstore.New(deps.MongoDatabase)
	admins := adminstore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// All application endpoints share the /api namespace. Static routes
	// (login, register, send-query) are registered alongside the
	// {collection} wildcard; chi matches them first.
	r.Route("/api", func(api chi.Router) {
		loginHandler := loginfeature.NewHandler(admins, tokens, logger)
		loginfeature.Routes(api, loginHandler)

		queryHandler := sendqueryfeature.NewHandler(mail, appCfg.QueryRecipient, logger)
		sendqueryfeature.Routes(api, queryHandler)

		collHandler := collectionsfeature.NewHandler(cat, records, store, logger)
		collectionsfeature.Routes(api, collHandler, tokens)
	})

	// Locally stored uploads are served straight from disk. The S3 backend
	// serves objects from the bucket (or CDN), so nothing is mounted here.
	if local, ok := store.(*storage.Local); ok {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, local.Root()))
	}

	// Public site assets (admin console build output)
	if appCfg.PublicDir != "" {
		r.Handle("/*", fileserver.Handler("/", appCfg.PublicDir))
	}

	return r, nil
}
