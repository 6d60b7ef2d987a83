package genai

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ModelCapabilities describes what a single model can do.
type ModelCapabilities struct {
	ID               string `yaml:"id"`
	Vision           bool   `yaml:"vision"`
	StructuredOutput bool   `yaml:"structured_output"`
	ImageOutput      bool   `yaml:"image_output"`
}

// ProviderCapabilities lists the models of one provider.
type ProviderCapabilities struct {
	Provider string              `yaml:"provider"`
	Models   []ModelCapabilities `yaml:"models"`
}

// Registry holds model capabilities across all providers, loaded from
// embedded YAML files.
type Registry struct {
	providers map[string]*ProviderCapabilities
	mu        sync.RWMutex
}

// NewRegistry creates a capability registry from the embedded config files.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		providers: make(map[string]*ProviderCapabilities),
	}

	for _, provider := range []string{"anthropic", "scripted"} {
		if err := r.loadProviderFile(provider); err != nil {
			return nil, fmt.Errorf("failed to load %s capabilities: %w", provider, err)
		}
	}

	return r, nil
}

func (r *Registry) loadProviderFile(provider string) error {
	filename := fmt.Sprintf("config/%s.yaml", provider)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var providerCaps ProviderCapabilities
	if err := yaml.Unmarshal(data, &providerCaps); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	r.providers[provider] = &providerCaps
	r.mu.Unlock()

	return nil
}

// ModelCapabilities returns the capabilities of a specific model.
func (r *Registry) ModelCapabilities(provider, model string) (*ModelCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providerCaps, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	for i := range providerCaps.Models {
		if providerCaps.Models[i].ID == model {
			return &providerCaps.Models[i], nil
		}
	}

	return nil, fmt.Errorf("unknown model %q for provider %s", model, provider)
}

// SupportsVision reports whether the model accepts image input. Unknown
// models report false.
func (r *Registry) SupportsVision(provider, model string) bool {
	caps, err := r.ModelCapabilities(provider, model)
	return err == nil && caps.Vision
}
