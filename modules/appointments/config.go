package appointments

import (
	"time"

	"github.com/medcare-web/medcare/pkg/cookie"
)

// Config holds the tunables of the site. Field tags are read by pkg/config.
type Config struct {
	SubmitDelay      time.Duration `env:"SUBMIT_DELAY" envDefault:"2s"`
	SimulateFailure  bool          `env:"SIMULATE_FAILURE" envDefault:"false"`
	BannerTTL        time.Duration `env:"BANNER_TTL" envDefault:"5s"`
	SearchDebounce   time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`
	RotationInterval time.Duration `env:"ROTATION_INTERVAL" envDefault:"5s"`

	// Cookie carries the attributes of the theme preference cookie.
	Cookie cookie.Config
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		SubmitDelay:      2 * time.Second,
		BannerTTL:        5 * time.Second,
		SearchDebounce:   300 * time.Millisecond,
		RotationInterval: 5 * time.Second,
		Cookie: cookie.Config{
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			HTTPOnly: true,
		},
	}
}
