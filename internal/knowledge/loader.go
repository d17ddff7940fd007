package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"adastra/internal/domain"
)

// LoadFile reads a knowledge base from a YAML or TOML file, chosen by extension.
// Keywords are trimmed and lowercased before validation.
func LoadFile(path string) (domain.KnowledgeBase, error) {
	var kb domain.KnowledgeBase

	data, err := os.ReadFile(path)
	if err != nil {
		return kb, fmt.Errorf("failed to read knowledge base %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &kb); err != nil {
			return kb, fmt.Errorf("invalid yaml in %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &kb); err != nil {
			return kb, fmt.Errorf("invalid toml in %s: %w", path, err)
		}
	default:
		return kb, fmt.Errorf("unsupported knowledge file extension %q", ext)
	}

	normalize(&kb)
	if err := kb.Validate(); err != nil {
		return kb, fmt.Errorf("%s: %w", path, err)
	}
	return kb, nil
}

func normalize(kb *domain.KnowledgeBase) {
	for i := range kb.Entries {
		for j, kw := range kb.Entries[i].Keywords {
			kb.Entries[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
}
