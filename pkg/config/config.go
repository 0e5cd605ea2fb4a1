// Package config loads and validates the codesnap selection spec: the
// folders, files, and ignore patterns for one run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = "codesnap.yml"

// ErrTemplateCreated signals that no config existed at the default location
// and a commented template was written there. The caller is expected to
// print instructions and exit without aggregating.
var ErrTemplateCreated = errors.New("template configuration created")

// ErrEmptySelection indicates a config whose folders and files are both
// empty; there is nothing to select.
var ErrEmptySelection = errors.New("configuration must specify at least one folder or file")

// ParseError wraps a YAML syntax failure in the config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid YAML in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates a recognized key holding a value of the wrong shape.
type SchemaError struct {
	Key  string
	Want string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("config key %q must be %s", e.Key, e.Want)
}

// Config is the validated selection spec for one invocation. Folders and
// Files hold absolute paths, resolved against the directory containing the
// config file. It is constructed once by Load and not mutated afterwards.
type Config struct {
	Folders   []string // Directories to walk, in list order.
	Files     []string // Individual files to include, in list order.
	Ignore    []string // Glob patterns matched against base-relative paths.
	TreeDepth int      // Maximum tree rendering depth; 0 means unlimited.
	BaseDir   string   // Absolute directory of the config file.
}

// Load reads and validates the config at path. An empty path selects
// DefaultFileName in the working directory; if that default file does not
// exist a template is written there and ErrTemplateCreated is returned.
// An explicitly supplied path that does not exist is a fatal error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			if werr := os.WriteFile(path, []byte(Template), 0o644); werr != nil {
				return nil, fmt.Errorf("failed to create template configuration: %w", werr)
			}
			return nil, fmt.Errorf("%w at %s", ErrTemplateCreated, path)
		}
		return nil, fmt.Errorf("cannot access config file %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve config path %s: %w", path, err)
	}
	baseDir := filepath.Dir(absPath)

	cfg, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = baseDir

	if len(cfg.Folders) == 0 && len(cfg.Files) == 0 {
		return nil, ErrEmptySelection
	}

	cfg.Folders = resolveAll(cfg.Folders, baseDir)
	cfg.Files = resolveAll(cfg.Files, baseDir)
	return cfg, nil
}

// parse decodes the raw YAML document. It goes through yaml.Node so that a
// syntax failure (ParseError) is distinguishable from a recognized key of
// the wrong shape (SchemaError).
func parse(data []byte, path string) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cfg := &Config{
		Folders: []string{},
		Files:   []string{},
		Ignore:  []string{},
	}
	if len(doc.Content) == 0 {
		return cfg, nil // empty document, keys default to empty
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &SchemaError{Key: "(document)", Want: "a mapping of folders, files, and ignore"}
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]
		switch key {
		case "folders":
			if err := decodeStringList(value, key, &cfg.Folders); err != nil {
				return nil, err
			}
		case "files":
			if err := decodeStringList(value, key, &cfg.Files); err != nil {
				return nil, err
			}
		case "ignore":
			if err := decodeStringList(value, key, &cfg.Ignore); err != nil {
				return nil, err
			}
		case "tree_depth":
			if isNull(value) {
				continue
			}
			if err := value.Decode(&cfg.TreeDepth); err != nil {
				return nil, &SchemaError{Key: key, Want: "an integer"}
			}
		}
	}
	return cfg, nil
}

// decodeStringList decodes a sequence of strings into dst. A null or absent
// value stays an empty list; any other shape is a SchemaError naming key.
func decodeStringList(node *yaml.Node, key string, dst *[]string) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return &SchemaError{Key: key, Want: "a list of strings"}
	}
	var out []string
	if err := node.Decode(&out); err != nil {
		return &SchemaError{Key: key, Want: "a list of strings"}
	}
	*dst = out
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == 0 || node.Tag == "!!null"
}

// resolveAll joins relative entries to baseDir. Absolute entries pass
// through unchanged; the working directory is never consulted.
func resolveAll(entries []string, baseDir string) []string {
	resolved := make([]string, 0, len(entries))
	for _, entry := range entries {
		if filepath.IsAbs(entry) {
			resolved = append(resolved, filepath.Clean(entry))
			continue
		}
		resolved = append(resolved, filepath.Join(baseDir, entry))
	}
	return resolved
}
