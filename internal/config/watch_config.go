package config

import "time"

// FeedConfig identifies one status feed to watch.
type FeedConfig struct {
	IntervalSeconds int    `json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty" validate:"omitempty,min=1"`
	Name            string `json:"name" yaml:"name" validate:"required"`
	URL             string `json:"url" yaml:"url" validate:"required,http_url"`
}

// Interval returns the poll interval for this feed, applying the default
// when unset.
func (f FeedConfig) Interval() time.Duration {
	if f.IntervalSeconds <= 0 {
		return time.Duration(DefaultPollIntervalSeconds) * time.Second
	}
	return time.Duration(f.IntervalSeconds) * time.Second
}

// WatchConfig defines the set of feeds to monitor.
type WatchConfig struct {
	Feeds         []FeedConfig `json:"feeds,omitempty" yaml:"feeds,omitempty" validate:"required,min=1,dive"`
	StartSpreadMS int          `json:"start_spread_ms,omitempty" yaml:"start_spread_ms,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultWatchConfig creates default watch configuration.
func NewDefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Feeds:         []FeedConfig{},
		StartSpreadMS: 0,
	}
}

// StartSpread returns the delay inserted between monitor starts.
func (c WatchConfig) StartSpread() time.Duration {
	return time.Duration(c.StartSpreadMS) * time.Millisecond
}
