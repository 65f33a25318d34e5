package settings

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/domain/interfaces"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
)

// DefaultPath is the settings file name, relative to the working directory
const DefaultPath = "settings.json"

type store struct {
	path string
}

// NewStore creates a JSON file backed SettingsStore
func NewStore(path string) interfaces.SettingsStore {
	if path == "" {
		path = DefaultPath
	}
	return &store{path: path}
}

// Load returns the saved settings. A missing file yields empty settings and
// no error; any other failure yields empty settings and the error.
func (s *store) Load() (*model.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &model.Settings{}, nil
		}
		return &model.Settings{}, goerr.Wrap(err, "failed to read settings",
			goerr.T(model.ErrTagIO),
			goerr.V("path", s.path),
		)
	}

	var settings model.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return &model.Settings{}, goerr.Wrap(err, "failed to parse settings",
			goerr.T(model.ErrTagParse),
			goerr.V("path", s.path),
		)
	}

	return &settings, nil
}

// Save overwrites the settings file with indented JSON
func (s *store) Save(settings *model.Settings) error {
	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode settings")
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0600); err != nil {
		return goerr.Wrap(err, "failed to write settings",
			goerr.T(model.ErrTagIO),
			goerr.V("path", s.path),
		)
	}

	return nil
}

// Clear removes the settings file. A missing file is not an error.
func (s *store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to remove settings",
			goerr.T(model.ErrTagIO),
			goerr.V("path", s.path),
		)
	}
	return nil
}
