package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const markerFileName = "session.json"

// Marker is the on-disk admin session record. Each CLI invocation is its
// own process, so an `admin login` leaves this file behind and later
// mutating commands treat its presence as the Admin state. `admin
// logout` removes it.
type Marker struct {
	CreatedAt time.Time `json:"created_at"`
}

func markerPath(dir string) string {
	return filepath.Join(dir, markerFileName)
}

// SaveMarker records a successful admin login.
func SaveMarker(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(Marker{CreatedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	// owner-only, same as a credentials file
	if err := os.WriteFile(markerPath(dir), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ClearMarker ends the admin session. Clearing an absent marker is fine.
func ClearMarker(dir string) error {
	if err := os.Remove(markerPath(dir)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// ReadMarker returns the active marker, or nil when not logged in.
func ReadMarker(dir string) (*Marker, error) {
	b, err := os.ReadFile(markerPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var m Marker
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &m, nil
}

// HasMarker reports whether an admin session is active.
func HasMarker(dir string) bool {
	m, err := ReadMarker(dir)
	return err == nil && m != nil
}
