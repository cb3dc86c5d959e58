package portfolio

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jeffreysmith/portfolio/resume"
)

//go:embed content/content.yaml
var defaultContent []byte

// Content is the curated data behind the static pages.
type Content struct {
	Services       []Service       `yaml:"services"`
	Work           []WorkItem      `yaml:"work"`
	Certifications []Certification `yaml:"certifications"`
	Experience     []resume.Entry  `yaml:"experience"`
}

// Service is a card on the services page.
type Service struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// WorkItem is a project shown on the work page.
type WorkItem struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
	Image string   `yaml:"image"`
	Link  string   `yaml:"link"`
}

// Certification is a credential listed on the certifications page.
type Certification struct {
	Name   string `yaml:"name"`
	Issuer string `yaml:"issuer"`
	Date   string `yaml:"date"`
	Link   string `yaml:"link"`
}

// LoadContent decodes a content file. Unknown fields are rejected so typos
// in the file do not silently drop data.
func LoadContent(data []byte) (Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Content{}, fmt.Errorf("decode content: %w", err)
	}
	for i, e := range c.Experience {
		if e.Header == "" {
			return Content{}, fmt.Errorf("decode content: experience %d has no header", i)
		}
	}
	return c, nil
}

// DefaultContent returns the content file compiled into the binary.
func DefaultContent() (Content, error) {
	return LoadContent(defaultContent)
}
