package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/steferic/workbench/internal/appdirs"
	"github.com/steferic/workbench/internal/atomicfile"
	"github.com/steferic/workbench/internal/identity"
	"github.com/steferic/workbench/internal/userpath"
)

var (
	ErrAlreadyExists = errors.New("workspace already exists")
	ErrInvalidPath   = errors.New("invalid workspace path")
	ErrNotFound      = errors.New("workspace not found")
)

// Store holds workspaces and session history, persisted as a single JSON
// state file under the user config dir.
type Store struct {
	path string

	Workspaces []Workspace                `json:"workspaces"`
	Sessions   map[string][]SessionRecord `json:"sessions"`
}

// DefaultStatePath resolves the state file location.
func DefaultStatePath() (string, error) {
	dir, err := appdirs.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.StateFile), nil
}

// Load reads the state file, returning an empty store if it doesn't exist.
// Sessions recorded as running are demoted to stopped: their PTYs are gone.
func Load(path string) (*Store, error) {
	s := &Store{path: path, Sessions: map[string][]SessionRecord{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("workspace: read state: %w", err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("workspace: parse state: %w", err)
	}
	if s.Sessions == nil {
		s.Sessions = map[string][]SessionRecord{}
	}
	now := time.Now().UTC()
	for id, records := range s.Sessions {
		for i := range records {
			if records[i].Running {
				records[i].Running = false
				if records[i].StoppedAt == nil {
					stopped := now
					records[i].StoppedAt = &stopped
				}
			}
		}
		s.Sessions[id] = records
	}
	return s, nil
}

// Save writes the state file atomically, creating directories as needed.
func (s *Store) Save() error {
	if s.path == "" {
		return errors.New("workspace: store has no path")
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("workspace: encode state: %w", err)
	}
	if err := atomicfile.Save(s.path, data, 0o600); err != nil {
		return fmt.Errorf("workspace: write state: %w", err)
	}
	return nil
}

// Add registers a directory as a workspace. The path must exist and be a
// directory; identity is the normalized absolute path.
func (s *Store) Add(path, name string) (Workspace, error) {
	abs, err := NormalizePath(path)
	if err != nil {
		return Workspace{}, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return Workspace{}, fmt.Errorf("%w: %s", ErrInvalidPath, abs)
	}
	for _, ws := range s.Workspaces {
		if ws.Path == abs {
			return Workspace{}, fmt.Errorf("%w: %s", ErrAlreadyExists, abs)
		}
	}
	ws := NewWorkspace(strings.TrimSpace(name), abs)
	s.Workspaces = append(s.Workspaces, ws)
	return ws, nil
}

// List returns workspaces in creation order.
func (s *Store) List() []Workspace {
	out := make([]Workspace, len(s.Workspaces))
	copy(out, s.Workspaces)
	return out
}

// Find locates a workspace by id.
func (s *Store) Find(id string) (*Workspace, error) {
	for i := range s.Workspaces {
		if s.Workspaces[i].ID == id {
			return &s.Workspaces[i], nil
		}
	}
	return nil, ErrNotFound
}

// FindByPath locates a workspace by normalized path.
func (s *Store) FindByPath(path string) (*Workspace, error) {
	abs, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}
	for i := range s.Workspaces {
		if s.Workspaces[i].Path == abs {
			return &s.Workspaces[i], nil
		}
	}
	return nil, ErrNotFound
}

// Rename changes a workspace's display name.
func (s *Store) Rename(id, name string) error {
	ws, err := s.Find(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("workspace: name required")
	}
	ws.Name = name
	return nil
}

// Remove deletes a workspace and its session history.
func (s *Store) Remove(id string) error {
	for i := range s.Workspaces {
		if s.Workspaces[i].ID == id {
			s.Workspaces = append(s.Workspaces[:i], s.Workspaces[i+1:]...)
			delete(s.Sessions, id)
			return nil
		}
	}
	return ErrNotFound
}

// RecordSession appends or updates a session record for a workspace.
func (s *Store) RecordSession(rec SessionRecord) {
	records := s.Sessions[rec.WorkspaceID]
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			s.Sessions[rec.WorkspaceID] = records
			return
		}
	}
	s.Sessions[rec.WorkspaceID] = append(records, rec)
}

// NormalizePath resolves a path, ~ included, to a cleaned absolute form.
func NormalizePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	abs, err := filepath.Abs(userpath.Expand(path))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return filepath.Clean(abs), nil
}
