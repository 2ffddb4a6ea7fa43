package player

import "github.com/penwyp/go-sticky-scroll/internal/config"

// configDefaults is the option base for the configured run
func configDefaults(cfg *PlayConfig) config.Options {
	base := config.Defaults()
	if cfg.Smooth {
		base.UseSmoothScroll = true
	}
	return base
}
