package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/microbrands/app/gallery"
)

// File is the on-disk layout of a single catalog file.
type File struct {
	Posts []gallery.BrandPost `yaml:"posts"`
}

// Loader reads brand posts from the YAML files of a catalog directory.
type Loader struct {
	catalogDir string
}

func NewLoader(catalogDir string) *Loader {
	return &Loader{catalogDir: catalogDir}
}

// Load returns every post of the catalog. Files are read in name order and
// posts keep their order inside each file, so the collection order is stable
// between runs. A missing directory yields an empty collection.
func (l *Loader) Load() ([]gallery.BrandPost, error) {
	if _, err := os.Stat(l.catalogDir); os.IsNotExist(err) {
		slog.Warn("Catalog directory not found", "dir", l.catalogDir)
		return []gallery.BrandPost{}, nil
	}

	files, err := l.listFiles()
	if err != nil {
		return nil, err
	}

	posts := make([]gallery.BrandPost, 0)
	seen := make(map[string]string)

	for _, file := range files {
		filePosts, err := l.parseFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		for i, post := range filePosts {
			if err := l.validatePost(post); err != nil {
				return nil, fmt.Errorf("invalid post at index %d in %s: %w", i, file, err)
			}
			if other, ok := seen[post.ID]; ok {
				return nil, fmt.Errorf("duplicate post id '%s' in %s (first defined in %s)", post.ID, file, other)
			}
			seen[post.ID] = file
			posts = append(posts, post)
		}

		slog.Debug("Catalog file loaded", "file", file, "posts", len(filePosts))
	}

	return posts, nil
}

func (l *Loader) listFiles() ([]string, error) {
	yamlFiles, err := filepath.Glob(filepath.Join(l.catalogDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(l.catalogDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}

	files := append(yamlFiles, ymlFiles...)
	slices.SortFunc(files, func(a, b string) int {
		return strings.Compare(filepath.Base(a), filepath.Base(b))
	})
	return files, nil
}

func (l *Loader) parseFile(path string) ([]gallery.BrandPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return file.Posts, nil
}

func (l *Loader) validatePost(post gallery.BrandPost) error {
	requiredFields := []struct {
		name  string
		value string
	}{
		{"id", post.ID},
		{"brand_name", post.BrandName},
		{"industry", post.Industry},
	}

	for _, field := range requiredFields {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}

	if !post.PostType.Valid() {
		return fmt.Errorf("invalid post_type '%s' for post '%s': must be '%s' or '%s'",
			post.PostType, post.ID, gallery.PostTypePost, gallery.PostTypeCarousel)
	}

	return nil
}
