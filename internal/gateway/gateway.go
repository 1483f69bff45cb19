// Package gateway — источники данных витрины: встроенные фикстуры или удалённый бэкенд.
// Вариант выбирается один раз при сборке приложения.
package gateway

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/storefront/internal/ports"
)

// Config — выбор и параметры источника данных.
type Config struct {
	APIURL          string
	UseMock         bool
	MockDelay       time.Duration
	Timeout         time.Duration
	BreakerEnabled  bool
	BreakerFailures uint32
	BreakerCooldown time.Duration
	Transport       http.RoundTripper
}

// UsesFixtures — фикстуры включены явно или URL бэкенда не задан.
func (c *Config) UsesFixtures() bool { return c.UseMock || c.APIURL == "" }

// New — источник данных по конфигурации.
func New(cfg *Config, log ports.Logger) (ports.DataSource, error) {
	if cfg.UsesFixtures() {
		f, err := NewFixture(cfg.MockDelay)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	r, err := NewRemote(RemoteConfig{
		URL:             cfg.APIURL,
		Timeout:         cfg.Timeout,
		BreakerEnabled:  cfg.BreakerEnabled,
		BreakerFailures: cfg.BreakerFailures,
		BreakerCooldown: cfg.BreakerCooldown,
		Transport:       cfg.Transport,
	}, log)
	if err != nil {
		return nil, err
	}
	return r, nil
}
