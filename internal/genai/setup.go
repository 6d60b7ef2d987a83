package genai

import (
	"fmt"
	"log/slog"

	"papertrail/internal/config"
)

// ProviderFactory builds a Client for a named provider. Registered by main
// to avoid an import cycle between this package and the provider packages.
type ProviderFactory func(cfg *config.Config) (Client, error)

// Setup selects and constructs the configured provider, checking the
// configured models against the capability registry.
func Setup(cfg *config.Config, factories map[string]ProviderFactory, logger *slog.Logger) (Client, error) {
	factory, ok := factories[cfg.DefaultProvider]
	if !ok {
		return nil, fmt.Errorf("unknown generative provider %q", cfg.DefaultProvider)
	}

	client, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up %s provider: %w", cfg.DefaultProvider, err)
	}

	registry, err := NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load capability registry: %w", err)
	}

	// The vision model handles rectification and image synthesis; a model
	// without vision support would fail every image upload at runtime.
	if !registry.SupportsVision(cfg.DefaultProvider, cfg.VisionModel) {
		logger.Warn("configured vision model is not known to support image input",
			"provider", cfg.DefaultProvider,
			"model", cfg.VisionModel,
		)
	}
	if caps, err := registry.ModelCapabilities(cfg.DefaultProvider, cfg.TextModel); err != nil {
		logger.Warn("configured text model is not in the capability registry",
			"provider", cfg.DefaultProvider,
			"model", cfg.TextModel,
		)
	} else if !caps.StructuredOutput {
		logger.Warn("configured text model does not report structured output support",
			"provider", cfg.DefaultProvider,
			"model", cfg.TextModel,
		)
	}

	logger.Info("generative provider initialized",
		"provider", client.Name(),
		"text_model", cfg.TextModel,
		"vision_model", cfg.VisionModel,
	)

	return client, nil
}
