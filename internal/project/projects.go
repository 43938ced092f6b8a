package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RackPlan/internal/model"
)

// ProjectFile is a set of named configurations saved together, for example
// the output of a batch import.
type ProjectFile struct {
	Projects []model.Project `json:"projects" yaml:"projects"`
}

// SaveProjects writes projects to path as JSON or YAML by extension.
func SaveProjects(path string, projects []model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file := ProjectFile{Projects: projects}
	if file.Projects == nil {
		file.Projects = []model.Project{}
	}

	var data []byte
	var err error
	if FormatFor(path) == FormatYAML {
		data, err = yaml.Marshal(file)
	} else {
		data, err = json.MarshalIndent(file, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProjects reads a project file. Each project's configuration is
// decoded on top of base so partial entries work. Projects without an ID
// get a fresh one.
func LoadProjects(path string, base model.Config) ([]model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	// Decode configurations as raw nodes first so each can start from base.
	var raw struct {
		Projects []struct {
			ID     string    `json:"id" yaml:"id"`
			Name   string    `json:"name" yaml:"name"`
			Config yaml.Node `json:"-" yaml:"config"`
		} `json:"projects" yaml:"projects"`
	}
	// JSON is a subset of YAML, so the YAML decoder reads both.
	if FormatFor(path) == FormatJSON && !json.Valid(data) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: invalid project file: %w", path, err)
	}

	projects := make([]model.Project, 0, len(raw.Projects))
	for i, p := range raw.Projects {
		cfg := base
		if !p.Config.IsZero() {
			if err := p.Config.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("%s: project %d: %w", path, i+1, err)
			}
		}
		project := model.NewProject(p.Name, cfg)
		if p.ID != "" {
			project.ID = p.ID
		}
		projects = append(projects, project)
	}
	return projects, nil
}
