// Package preset stores named snapshots of wizard answers as YAML files so a
// new session can start from a previous project's choices.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// Preset is a named set of stage answers
type Preset struct {
	Name        string                                  `yaml:"name"`
	Description string                                  `yaml:"description,omitempty"`
	CreatedAt   time.Time                               `yaml:"created_at"`
	Answers     map[domain.StageName]domain.StageAnswer `yaml:"answers"`
}

// Stages returns the stages the preset has answers for, in wizard order
func (p *Preset) Stages() []domain.StageName {
	var out []domain.StageName
	for _, s := range domain.AllStages() {
		if a, ok := p.Answers[s]; ok && !a.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}

// Store manages preset files in a directory
type Store struct {
	dir string

	mu      sync.Mutex
	presets map[string]*Preset
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{
		dir:     dir,
		presets: make(map[string]*Preset),
	}
}

// Dir returns the directory presets are stored in
func (s *Store) Dir() string {
	return s.dir
}

// Load reads every preset file. Unreadable files are skipped.
func (s *Store) Load() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, file := range files {
		p, err := loadPreset(file)
		if err != nil {
			continue
		}
		s.presets[p.Name] = p
	}
	return nil
}

func loadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	for stage, a := range p.Answers {
		if stage.Index() < 0 {
			delete(p.Answers, stage)
			continue
		}
		a.Stage = stage
		p.Answers[stage] = a
	}
	return &p, nil
}

// ValidateName rejects names that could escape the preset directory
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return fmt.Errorf("preset name contains invalid characters: must not contain /, \\, or ..")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("preset name cannot start with a dot")
	}
	return nil
}

// Save writes a preset, replacing any preset of the same name
func (s *Store) Save(p *Preset) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, p.Name+".yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}

	s.mu.Lock()
	s.presets[p.Name] = p
	s.mu.Unlock()
	return nil
}

// Delete removes a preset from disk
func (s *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	path := filepath.Join(s.dir, name+".yaml")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	s.mu.Lock()
	delete(s.presets, name)
	s.mu.Unlock()
	return nil
}

// Get returns a preset by name
func (s *Store) Get(name string) (*Preset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presets[name]
	return p, ok
}

// List returns every preset, sorted by name
func (s *Store) List() []*Preset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Preset, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FromAnswers builds a preset from collected answers, skipping empty stages
func FromAnswers(name, description string, answers map[domain.StageName]domain.StageAnswer) *Preset {
	p := &Preset{
		Name:        name,
		Description: description,
		Answers:     make(map[domain.StageName]domain.StageAnswer),
	}
	for stage, a := range answers {
		if a.IsEmpty() {
			continue
		}
		p.Answers[stage] = a.Clone()
	}
	return p
}
