package jsonstore

// JSON-backed storage. Two human-readable files under the data dir:
// services.json holds the whole service tree as one record, checked.json
// is the sidecar for the user's checked-off items. No locking; this is a
// local single-user tool.

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aznadocs/docsuneed/internal/model"
)

const (
	treeFileName    = "services.json"
	checkedFileName = "checked.json"
)

// Files reads and writes the durable record. Loads never fail upward:
// an absent file means first run, anything unreadable or shape-invalid
// is replaced by the built-in seed tree. Corruption is a log line, not
// an error the user sees.
type Files struct {
	dir      string
	log      zerolog.Logger
	validate *validator.Validate
}

func New(dir string, log zerolog.Logger) *Files {
	return &Files{
		dir:      dir,
		log:      log,
		validate: validator.New(),
	}
}

func (f *Files) treePath() string    { return filepath.Join(f.dir, treeFileName) }
func (f *Files) checkedPath() string { return filepath.Join(f.dir, checkedFileName) }

// LoadTree reads the service tree, falling back to the seed tree when
// the record is absent, unparseable, or fails the shape check.
func (f *Files) LoadTree() []model.Service {
	b, err := os.ReadFile(f.treePath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.log.Warn().Err(err).Msg("read services record, using seed tree")
		}
		return model.SeedServices()
	}
	var services []model.Service
	if err := json.Unmarshal(b, &services); err != nil {
		f.log.Warn().Err(err).Msg("corrupt services record, using seed tree")
		return model.SeedServices()
	}
	if err := f.validate.Var(services, "dive"); err != nil {
		f.log.Warn().Err(err).Msg("invalid services record, using seed tree")
		return model.SeedServices()
	}
	return services
}

// SaveTree writes the whole tree back as one record.
func (f *Files) SaveTree(services []model.Service) error {
	b, err := json.MarshalIndent(services, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := f.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(f.treePath(), b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// LoadChecked reads the checked-state sidecar. Absent or corrupt means
// an empty map; the tree record is unaffected either way.
func (f *Files) LoadChecked() model.CheckedState {
	b, err := os.ReadFile(f.checkedPath())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.log.Warn().Err(err).Msg("read checked state")
		}
		return model.CheckedState{}
	}
	var checked model.CheckedState
	if err := json.Unmarshal(b, &checked); err != nil {
		f.log.Warn().Err(err).Msg("corrupt checked state, starting empty")
		return model.CheckedState{}
	}
	if checked == nil {
		checked = model.CheckedState{}
	}
	return checked
}

// SaveChecked writes the checked-state sidecar.
func (f *Files) SaveChecked(checked model.CheckedState) error {
	b, err := json.MarshalIndent(checked, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := f.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(f.checkedPath(), b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (f *Files) ensureDir() error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return nil
}
