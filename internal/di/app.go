package di

import (
	"pulsefeed/internal/config"
	"pulsefeed/internal/notif"
	"pulsefeed/internal/notifdb"
	"pulsefeed/internal/worker"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Application bundles everything the worker binary needs.
type Application struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Storage  *notifdb.Storage
	Consumer *worker.Consumer
}

// ProvideURLs builds the URL composer from the configured webapp origin.
func ProvideURLs(cfg *config.Config) notif.URLs {
	return notif.NewURLs(cfg.Web.BaseURL)
}
