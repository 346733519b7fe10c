package knowledge

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/tinkerloft/promptshape/internal/model"
)

// ErrEmptyCorpus is returned when a corpus source contains no entries.
var ErrEmptyCorpus = errors.New("corpus has no entries")

// corpusSchema describes a YAML corpus document.
const corpusSchema = `{
  "type": "object",
  "required": ["entries"],
  "properties": {
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "info"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "info": {"type": "string"}
        }
      }
    }
  }
}`

var compiledCorpusSchema = jsonschema.MustCompileString("corpus.json", corpusSchema)

type corpusDocument struct {
	Entries []model.KnowledgeEntry `yaml:"entries"`
}

type entryFrontmatter struct {
	Title string `yaml:"title"`
}

// Load builds a corpus from path. A file is read as a YAML corpus document;
// a directory contributes one entry per markdown file (title in frontmatter,
// body as info) plus the entries of every YAML document, in file name order.
// Markdown bodies are collapsed to a single line: every run of whitespace,
// paragraph breaks included, becomes one space.
func Load(path string) (*Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus source: %w", err)
	}

	var entries []model.KnowledgeEntry
	if info.IsDir() {
		entries, err = loadDir(path)
	} else {
		entries, err = loadDocumentFile(path)
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyCorpus)
	}
	return NewCorpus(entries), nil
}

func loadDir(dir string) ([]model.KnowledgeEntry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus dir: %w", err)
	}

	var entries []model.KnowledgeEntry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		path := filepath.Join(dir, f.Name())
		switch strings.ToLower(filepath.Ext(f.Name())) {
		case ".md":
			entry, err := loadMarkdownEntry(path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		case ".yaml", ".yml":
			doc, err := loadDocumentFile(path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, doc...)
		}
	}
	return entries, nil
}

func loadDocumentFile(path string) ([]model.KnowledgeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	entries, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseDocument validates and decodes a YAML corpus document.
func ParseDocument(data []byte) ([]model.KnowledgeEntry, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing corpus document: %w", err)
	}
	if errs := validateDocument(raw); len(errs) > 0 {
		return nil, fmt.Errorf("invalid corpus document: %s", strings.Join(errs, "; "))
	}

	var doc corpusDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing corpus document: %w", err)
	}
	return doc.Entries, nil
}

func validateDocument(raw map[string]any) []string {
	if raw == nil {
		return []string{"/: document is empty"}
	}
	err := compiledCorpusSchema.Validate(raw)
	if err == nil {
		return nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var msgs []string
	collectValidationErrors(validationErr, &msgs)
	return msgs
}

func collectValidationErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if err.Message != "" && len(err.Causes) == 0 {
		path := err.InstanceLocation
		if path == "" {
			path = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", path, err.Message))
	}
	for _, cause := range err.Causes {
		collectValidationErrors(cause, msgs)
	}
}

func loadMarkdownEntry(path string) (model.KnowledgeEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return model.KnowledgeEntry{}, fmt.Errorf("reading knowledge file: %w", err)
	}

	var fm entryFrontmatter
	yamlFormat := frontmatter.NewFormat("---", "---", yaml.Unmarshal)
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm, yamlFormat)
	if err != nil {
		return model.KnowledgeEntry{}, fmt.Errorf("%s: parsing frontmatter: %w", path, err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return model.KnowledgeEntry{
		Title: title,
		Info:  strings.Join(strings.Fields(string(body)), " "),
	}, nil
}
