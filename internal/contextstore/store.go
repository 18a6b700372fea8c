// Package contextstore keeps the latest desktop-context snapshot per
// session: the apps, windows, folders, macros, aliases and prior search
// results the backend publishes between commands. This is collaborator
// state on the serving side; the orchestrator core never reads it directly
// and stays stateless.
package contextstore

import (
	"context"
	"time"

	"github.com/voiceking/voiceking-orchestrator/internal/models"
)

// Snapshot is one published desktop context for a session.
type Snapshot struct {
	SessionID string              `json:"session_id"`
	Apps      []models.Entity     `json:"apps,omitempty"`
	Windows   []models.Entity     `json:"windows,omitempty"`
	Folders   []models.Entity     `json:"folders,omitempty"`
	Macros    []models.Entity     `json:"macros,omitempty"`
	Aliases   []models.Alias      `json:"aliases,omitempty"`
	ResultSet []models.ResultItem `json:"result_set,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Merge fills request context fields the caller left empty. Fields present
// on the request always win over the stored snapshot.
func (s *Snapshot) Merge(req *models.Request) {
	if len(req.Apps) == 0 {
		req.Apps = s.Apps
	}
	if len(req.Windows) == 0 {
		req.Windows = s.Windows
	}
	if len(req.Folders) == 0 {
		req.Folders = s.Folders
	}
	if len(req.Macros) == 0 {
		req.Macros = s.Macros
	}
	if len(req.Aliases) == 0 {
		req.Aliases = s.Aliases
	}
	if len(req.ResultSet) == 0 {
		req.ResultSet = s.ResultSet
	}
}

// Store holds the latest snapshot per session. Implementations may expire
// snapshots after a TTL; Load returns nil without error for an unknown or
// expired session.
type Store interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Clear(ctx context.Context, sessionID string) error
	Close() error
}
