package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/at-ishikawa/kotoba/internal/transliterate"
)

// Loader resolves dictionary identifiers to files and caches the
// normalized sets until the file's modification time changes.
type Loader struct {
	sources        []Source
	defaultID      string
	transliterator transliterate.Transliterator
	logger         *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Set
}

func NewLoader(sources []Source, defaultID string, t transliterate.Transliterator, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	normalized := make([]Source, 0, len(sources))
	taken := make(map[string]bool, len(sources))
	for _, s := range sources {
		if s.Name != "" {
			taken[s.Name] = true
		}
	}
	for _, s := range sources {
		if s.Name == "" {
			// files sharing a basename are named by their path
			s.Name = sourceID(s.Path)
			if taken[s.Name] {
				s.Name = filepath.Clean(s.Path)
			}
			taken[s.Name] = true
		}
		normalized = append(normalized, s)
	}
	return &Loader{
		sources:        normalized,
		defaultID:      defaultID,
		transliterator: t,
		logger:         logger,
		cache:          make(map[string]*Set),
	}
}

// Sources returns the configured sources in configuration order.
func (l *Loader) Sources() []Source {
	return append([]Source(nil), l.sources...)
}

// DefaultSource returns the source used for an empty identifier.
func (l *Loader) DefaultSource() (Source, error) {
	return l.Resolve("")
}

// Resolve finds the source for an identifier. The identifier is matched
// against display names, then full paths, then file basenames.
// An empty identifier resolves the configured default, or the first source.
func (l *Loader) Resolve(identifier string) (Source, error) {
	if identifier == "" {
		if l.defaultID == "" {
			if len(l.sources) == 0 {
				return Source{}, fmt.Errorf("%w: no dictionaries are configured", ErrNotFound)
			}
			return l.sources[0], nil
		}
		identifier = l.defaultID
	}

	for _, s := range l.sources {
		if s.Name == identifier {
			return s, nil
		}
	}
	for _, s := range l.sources {
		if s.Path == identifier || filepath.Clean(s.Path) == filepath.Clean(identifier) {
			return s, nil
		}
	}
	for _, s := range l.sources {
		if filepath.Base(s.Path) == identifier || sourceID(s.Path) == identifier {
			return s, nil
		}
	}
	return Source{}, fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

// Load returns the normalized dictionary for an identifier.
func (l *Loader) Load(ctx context.Context, identifier string) (*Set, error) {
	source, err := l.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(source.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNotFound, source.Path)
		}
		return nil, fmt.Errorf("os.Stat(%s) > %w", source.Path, err)
	}
	key := cacheKey(source)

	l.mu.RLock()
	cached, ok := l.cache[key]
	l.mu.RUnlock()
	if ok && cached.ModTime.Equal(info.ModTime()) {
		return cached, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// another request may have rebuilt it while waiting for the lock
	if cached, ok := l.cache[key]; ok && cached.ModTime.Equal(info.ModTime()) {
		return cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := ReadRawFile(source.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNotFound, source.Path)
		}
		return nil, fmt.Errorf("ReadRawFile() > %w", err)
	}
	entries, err := normalizeAll(l.transliterator, dedupeRaw(raw))
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", source.Path, err)
	}

	set := NewSet(source.Name, source, info.ModTime(), entries)
	l.cache[key] = set
	l.logger.Info("loaded dictionary",
		slog.String("name", source.Name),
		slog.String("path", source.Path),
		slog.Int("entries", len(entries)),
	)
	return set, nil
}

// dedupeRaw keeps the first position of a repeated headword with its last
// gloss, the way a JSON object decodes into a map.
func dedupeRaw(raw []RawEntry) []RawEntry {
	positions := make(map[string]int, len(raw))
	result := make([]RawEntry, 0, len(raw))
	for _, r := range raw {
		if i, ok := positions[r.Headword]; ok {
			result[i].Gloss = r.Gloss
			continue
		}
		positions[r.Headword] = len(result)
		result = append(result, r)
	}
	return result
}

func cacheKey(source Source) string {
	abs, err := filepath.Abs(source.Path)
	if err != nil {
		abs = filepath.Clean(source.Path)
	}
	return source.Name + "\x00" + abs
}

// sourceID is the file name without its extension.
func sourceID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
