package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

// Profile is the on-disk desktop profile: the contextual lookups, policies
// and defaults the backend would otherwise supply with every request. The
// CLI merges it into requests that omit context; the server can use it as
// fallback context for sessions without a published snapshot.
type Profile struct {
	DefaultSearchEngine string          `mapstructure:"default_search_engine"`
	AIProvider          string          `mapstructure:"ai_provider"`
	Policies            map[string]any  `mapstructure:"policies"`
	Apps                []ProfileEntity `mapstructure:"apps"`
	Windows             []ProfileEntity `mapstructure:"windows"`
	Folders             []ProfileEntity `mapstructure:"folders"`
	Macros              []ProfileEntity `mapstructure:"macros"`
	Aliases             []ProfileAlias  `mapstructure:"aliases"`
}

type ProfileEntity struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Title string `mapstructure:"title"`
	Label string `mapstructure:"label"`
	Path  string `mapstructure:"path"`
}

type ProfileAlias struct {
	Name   string `mapstructure:"name"`
	MapsTo string `mapstructure:"maps_to"`
}

// LoadProfile reads a profile file (yaml, json or toml, by extension).
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &profile, nil
}

// Validate rejects profiles naming an unknown AI provider. An empty
// provider is fine: it just disables LLM delegation.
func (p *Profile) Validate() error {
	switch p.AIProvider {
	case "", ProviderClaude, ProviderOpenAI:
		return nil
	default:
		return fmt.Errorf("unknown ai_provider %q (supported: %s, %s)",
			p.AIProvider, ProviderClaude, ProviderOpenAI)
	}
}

// Merge fills request fields left empty by the caller from the profile.
// Fields present on the request always win.
func (p *Profile) Merge(req *models.Request) {
	if len(req.Policies.Flags) == 0 && req.Policies.TTSMaxChars == 0 {
		req.Policies = p.policies()
	}
	if len(req.Apps) == 0 {
		req.Apps = toEntities(p.Apps)
	}
	if len(req.Windows) == 0 {
		req.Windows = toEntities(p.Windows)
	}
	if len(req.Folders) == 0 {
		req.Folders = toEntities(p.Folders)
	}
	if len(req.Macros) == 0 {
		req.Macros = toEntities(p.Macros)
	}
	if len(req.Aliases) == 0 {
		req.Aliases = toAliases(p.Aliases)
	}
	if req.DefaultSearchEngine == "" {
		req.DefaultSearchEngine = p.DefaultSearchEngine
	}
}

func (p *Profile) policies() models.Policies {
	policies := models.Policies{Flags: map[string]bool{}}
	for key, value := range p.Policies {
		switch v := value.(type) {
		case bool:
			policies.Flags[key] = v
		case int:
			if key == "tts_max_chars" {
				policies.TTSMaxChars = v
			}
		case float64:
			if key == "tts_max_chars" {
				policies.TTSMaxChars = int(v)
			}
		}
	}
	return policies
}

func toEntities(entries []ProfileEntity) []models.Entity {
	if len(entries) == 0 {
		return nil
	}
	out := make([]models.Entity, len(entries))
	for i, e := range entries {
		out[i] = models.Entity{ID: e.ID, Name: e.Name, Title: e.Title, Label: e.Label, Path: e.Path}
	}
	return out
}

func toAliases(entries []ProfileAlias) []models.Alias {
	if len(entries) == 0 {
		return nil
	}
	out := make([]models.Alias, len(entries))
	for i, a := range entries {
		out[i] = models.Alias{Name: a.Name, MapsTo: a.MapsTo}
	}
	return out
}
