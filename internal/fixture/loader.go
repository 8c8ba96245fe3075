package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	celerrors "github.com/celconf/celconf/internal/errors"
	"github.com/celconf/celconf/internal/schema"
)

// LoadSuite reads one suite file, validates it against the fixture schema,
// and converts it into a Suite.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, celerrors.Fixturef("read suite %s: %v", path, err)
	}

	// Validate the raw document first so authoring mistakes surface as schema
	// errors with paths instead of decode failures.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, celerrors.Fixturef("suite %s: invalid YAML: %v", path, err)
	}
	raw, err := docValue(&root)
	if err != nil {
		return nil, celerrors.Fixturef("suite %s: %v", path, err)
	}
	if err := schema.ValidateSuite(raw); err != nil {
		return nil, celerrors.Fixturef("suite %s: %v", path, err)
	}

	var doc suiteDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, celerrors.Fixturef("suite %s: %v", path, err)
	}

	suite := &Suite{Name: doc.Suite, Path: path}
	for _, sd := range doc.Scenarios {
		s, err := sd.convert()
		if err != nil {
			return nil, celerrors.Fixturef("suite %s: %v", path, err)
		}
		suite.Scenarios = append(suite.Scenarios, s)
	}

	return suite, nil
}

// LoadDir loads every suite under dir whose filename matches pattern,
// recursively, sorted by path for deterministic order.
func LoadDir(dir, pattern string) ([]*Suite, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, celerrors.NotFound("suite directory", dir)
	}

	matches, err := findMatches(dir, pattern)
	if err != nil {
		return nil, celerrors.Fixturef("scan %s: %v", dir, err)
	}

	suites := make([]*Suite, 0, len(matches))
	for _, path := range matches {
		s, err := LoadSuite(path)
		if err != nil {
			return nil, err
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		suites = append(suites, s)
	}

	return suites, nil
}

// docValue converts a parsed YAML tree into plain Go values for schema
// validation. Mapping keys keep their raw spelling, so a bare "null" key
// stays the string "null" instead of resolving to the null scalar.
func docValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return docValue(n.Content[0])
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := docValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := docValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.AliasNode:
		return docValue(n.Alias)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

// findMatches walks dir collecting files whose base name matches pattern.
// Pattern support is filepath.Match on the filename portion only; suites may
// live in nested directories.
func findMatches(dir, pattern string) ([]string, error) {
	var matches []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		matched, err := filepath.Match(pattern, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if matched {
			matches = append(matches, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}
