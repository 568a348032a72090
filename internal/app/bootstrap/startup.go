// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	adminstore "github.com/pixelit-club/clubhub/internal/app/store/admins"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureAdmin(ctx, appCfg, deps, logger)
}

// ensureAdmin seeds the configured admin credential when the admins
// collection is empty, so a fresh deployment is usable without a manual
// registration step. Existing admins are never modified.
func ensureAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminUsername == "" || appCfg.AdminPassword == "" {
		logger.Info("admin bootstrap disabled (admin_username/admin_password not set)")
		return nil
	}

	admins := adminstore.New(deps.MongoDatabase)

	n, err := admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		logger.Info("admin credential already present, skipping bootstrap",
			zap.Int64("admins", n))
		return nil
	}

	if _, err := admins.Create(ctx, appCfg.AdminUsername, appCfg.AdminPassword); err != nil {
		// Concurrent instance won the race; that admin is the seed.
		if errors.Is(err, adminstore.ErrDuplicateUsername) {
			logger.Info("admin credential created by another instance")
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info("seeded admin credential",
		zap.String("username", appCfg.AdminUsername))
	return nil
}
