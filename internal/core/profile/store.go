package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-session-window/internal/core/window"
	"github.com/penwyp/go-session-window/internal/util"
)

// Profile is a named session-window specification persisted on disk.
// The millisecond fields always describe a specification that passed
// factory validation; Load re-validates entries so a hand-edited file
// cannot smuggle an invalid configuration into a pipeline.
type Profile struct {
	Name            string `json:"name"`
	InactivityGapMs int64  `json:"inactivity_gap_ms"`
	MaxSpanMs       int64  `json:"max_span_ms"`
	GraceMs         int64  `json:"grace_ms"`
	UpdatedAt       int64  `json:"updated_at"`
}

// NewProfile builds a profile from an already-validated specification.
func NewProfile(name string, w window.SessionWindows) Profile {
	return Profile{
		Name:            name,
		InactivityGapMs: w.InactivityGap(),
		MaxSpanMs:       w.MaxSpan(),
		GraceMs:         w.GracePeriod(),
	}
}

// Windows reconstructs the specification through the validating
// factory, so a profile read from disk is held to the same constraints
// as fresh input.
func (p Profile) Windows() (window.SessionWindows, error) {
	return window.OfInactivityGapMaxSpanAndGrace(
		time.Duration(p.InactivityGapMs)*time.Millisecond,
		time.Duration(p.MaxSpanMs)*time.Millisecond,
		time.Duration(p.GraceMs)*time.Millisecond,
	)
}

type profileFile struct {
	Profiles    []Profile `json:"profiles"`
	LastUpdated int64     `json:"last_updated"`
}

// Store persists named window-spec profiles as a single JSON document.
type Store struct {
	path     string
	mu       sync.RWMutex
	profiles map[string]Profile
}

// DefaultPath returns ~/.go-session-window/profiles.json, falling back
// to the working directory when the home directory is not accessible.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "profiles.json"
	}
	return filepath.Join(homeDir, ".go-session-window", "profiles.json")
}

// NewStore creates a store backed by the given file path. The file is
// not touched until Load or Save is called.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		profiles: make(map[string]Profile),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads profiles from disk. A missing file is not an error: the
// store starts fresh. Entries failing specification validation abort
// the load.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogDebug("No existing profile file found, starting fresh")
			s.profiles = make(map[string]Profile)
			return nil
		}
		return fmt.Errorf("failed to read profiles: %w", err)
	}

	var file profileFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal profiles: %w", err)
	}

	profiles := make(map[string]Profile, len(file.Profiles))
	for _, p := range file.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profile with empty name in %s", s.path)
		}
		if _, err := p.Windows(); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
		profiles[p.Name] = p
	}

	s.profiles = profiles
	util.LogDebugf("Loaded %d profiles from %s", len(profiles), s.path)
	return nil
}

// Save writes all profiles to disk, sorted by name. The document is
// written to a temp file first and renamed into place so readers never
// observe a partial write.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := profileFile{
		Profiles:    s.sortedLocked(),
		LastUpdated: time.Now().Unix(),
	}

	data, err := sonic.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	util.LogDebugf("Saved %d profiles to %s", len(s.profiles), s.path)
	return nil
}

// Put adds or replaces a profile. The entry is re-validated through the
// factory before it is accepted.
func (s *Store) Put(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if _, err := p.Windows(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = time.Now().Unix()
	s.profiles[p.Name] = p
	return nil
}

// Get returns the named profile.
func (s *Store) Get(name string) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[name]
	return p, ok
}

// Remove deletes the named profile and reports whether it existed.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.profiles[name]
	delete(s.profiles, name)
	return ok
}

// List returns all profiles sorted by name.
func (s *Store) List() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Store) sortedLocked() []Profile {
	list := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}
