package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const defaultDictionaryFile = "base.json"

// DiscoverSources lists the JSON dictionaries in dir, sorted by file name.
// The returned default is base.json when present, otherwise the first file.
func DiscoverSources(dir string) ([]Source, string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", fmt.Errorf("os.ReadDir(%s) > %w", dir, err)
	}

	var sources []Source
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		sources = append(sources, Source{
			Name: sourceID(path),
			Path: path,
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})
	if len(sources) == 0 {
		return nil, "", nil
	}

	defaultID := sources[0].Name
	for _, s := range sources {
		if filepath.Base(s.Path) == defaultDictionaryFile {
			defaultID = s.Name
			break
		}
	}
	return sources, defaultID, nil
}
