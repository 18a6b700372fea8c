package orchestrator

import (
	"strings"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

// resolveEntity finds the first entity whose name, title or label (checked
// in that order) equals the spoken text case-insensitively. Matching is
// exact equality only, never substring or fuzzy. Ties break on input order.
func resolveEntity(entities []models.Entity, spoken string) *models.Entity {
	want := strings.ToLower(spoken)
	for i := range entities {
		entity := &entities[i]
		for _, handle := range []string{entity.Name, entity.Title, entity.Label} {
			if handle != "" && strings.ToLower(handle) == want {
				return entity
			}
		}
	}
	return nil
}

// matchAlias maps a spoken shorthand to its canonical name. Returns ""
// when no alias matches; the caller then uses the spoken text unchanged.
func matchAlias(aliases []models.Alias, spoken string) string {
	want := strings.ToLower(spoken)
	for _, alias := range aliases {
		if alias.Name != "" && alias.MapsTo != "" && strings.ToLower(alias.Name) == want {
			return alias.MapsTo
		}
	}
	return ""
}
