package config

import (
	"errors"
	"fmt"
	"strings"

	"statuswatch/internal/common"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the Config structure.
func ValidateConfig(cfg *Config) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", e.StructNamespace(), e.Tag()))
			}
			return common.NewValidationError("config", nil, strings.Join(messages, "; "))
		}
		return common.WrapError(err, "validating config")
	}

	// Feed names key per-monitor state and metrics labels, so they must be unique.
	seen := make(map[string]struct{}, len(cfg.Watch.Feeds))
	for _, feed := range cfg.Watch.Feeds {
		name := strings.TrimSpace(feed.Name)
		if name == "" {
			return common.NewValidationError("watch.feeds.name", feed.Name, "feed name must not be blank")
		}
		if _, dup := seen[name]; dup {
			return common.NewValidationError("watch.feeds.name", name, "feed names must be unique")
		}
		seen[name] = struct{}{}
	}

	return nil
}
