package portfolio

import (
	"log/slog"

	"github.com/jeffreysmith/portfolio/resume"
)

// Where the resume entries came from.
const (
	ExperienceCurated = "curated"
	ExperiencePDF     = "pdf"
	ExperienceNone    = "none"
)

// Experience is the list of resume entries, fixed at startup and shared by
// every request.
type Experience struct {
	entries []resume.Entry
	source  string
}

// NewExperience copies entries into an Experience.
func NewExperience(entries []resume.Entry, source string) Experience {
	if len(entries) == 0 {
		return Experience{source: ExperienceNone}
	}
	return Experience{entries: cloneEntries(entries), source: source}
}

// Entries returns a copy of the entries.
func (e Experience) Entries() []resume.Entry { return cloneEntries(e.entries) }

// Len is the number of entries.
func (e Experience) Len() int { return len(e.entries) }

// Source reports where the entries came from, ExperienceNone when empty.
func (e Experience) Source() string {
	if e.source == "" {
		return ExperienceNone
	}
	return e.source
}

// LoadExperience picks the curated entries when they are preferred and
// present, and otherwise runs the extractor once over the resume PDF.
func LoadExperience(cfg ResumeConfig, curated []resume.Entry, ex *resume.Extractor, logger *slog.Logger) Experience {
	if cfg.PreferCurated && len(curated) > 0 {
		logger.Info("resume experience loaded", "source", ExperienceCurated, "entries", len(curated))
		return NewExperience(curated, ExperienceCurated)
	}

	exp := NewExperience(ex.Extract(cfg.Path), ExperiencePDF)
	if exp.Len() == 0 {
		logger.Warn("resume experience is empty", "path", cfg.Path)
	} else {
		logger.Info("resume experience loaded", "source", ExperiencePDF, "path", cfg.Path, "entries", exp.Len())
	}
	return exp
}

func cloneEntries(entries []resume.Entry) []resume.Entry {
	if entries == nil {
		return nil
	}
	out := make([]resume.Entry, len(entries))
	for i, e := range entries {
		out[i] = resume.Entry{Header: e.Header, Lines: append([]string(nil), e.Lines...)}
	}
	return out
}
