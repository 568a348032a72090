// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to the
// club admin panel: the database, the token secret, the storage backend,
// and the outbound mail relay.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token configuration
	JWTSecret string        // HS256 signing secret (must be strong in production)
	TokenTTL  time.Duration // token lifetime; re-login required after expiry

	// Admin bootstrap: seeds the credential pair at startup when no
	// admin exists yet. Leave blank to register through the API instead.
	AdminUsername string
	AdminPassword string

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region   string
	StorageS3Bucket   string
	StorageS3Prefix   string
	StoragePublicURL  string // optional CDN/base URL in front of the bucket

	// Outbound mail (Resend)
	MailResendKey  string // Resend API key
	MailFrom       string // From email address (e.g., noreply@pixelit.club)
	MailFromName   string // From display name
	QueryRecipient string // fixed inbox contact-form queries are sent to

	// Directory of static admin-console/public-site assets; served at /
	// when non-empty.
	PublicDir string
}
