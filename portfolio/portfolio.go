// Package portfolio holds the structured portfolio snapshot and its loader.
// Every field is optional; consumers must tolerate empty collections.
package portfolio

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is a read-only view of the portfolio data source.
type Snapshot struct {
	Hero       Hero         `json:"hero,omitempty" yaml:"hero,omitempty"`
	Contact    Contact      `json:"contact,omitempty" yaml:"contact,omitempty"`
	Skills     []Skill      `json:"skills,omitempty" yaml:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty" yaml:"experience,omitempty"`
	Projects   []Project    `json:"projects,omitempty" yaml:"projects,omitempty"`
	Education  []Education  `json:"education,omitempty" yaml:"education,omitempty"`
}

// Hero contains the landing-section basics.
type Hero struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Contact contains the contact-section details.
type Contact struct {
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Skill is a named skill with a 0-100 proficiency level.
type Skill struct {
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level,omitempty" yaml:"level,omitempty"`
}

// Experience is a single work-history entry.
type Experience struct {
	Role    string `json:"role" yaml:"role"`
	Company string `json:"company" yaml:"company"`
	Period  string `json:"period,omitempty" yaml:"period,omitempty"`
}

// Project is a single portfolio project.
type Project struct {
	Title string `json:"title" yaml:"title"`
}

// Education is a single education entry.
type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Year        string `json:"year,omitempty" yaml:"year,omitempty"`
}

// Parse decodes a YAML snapshot.
func Parse(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("portfolio: parse snapshot: %w", err)
	}
	return &snap, nil
}

// Load reads a snapshot from a YAML file. A missing file is not an error:
// the assistant falls back to placeholder answers for every topic.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("portfolio: read snapshot: %w", err)
	}
	return Parse(data)
}
