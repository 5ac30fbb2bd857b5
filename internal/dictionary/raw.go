package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// RawEntry is a headword and its gloss as written in a dictionary file.
type RawEntry struct {
	Headword string
	Gloss    string
}

// ReadRawFile reads a dictionary file, keeping the order of its keys.
func ReadRawFile(path string) ([]RawEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	entries, err := parseRaw(file)
	if err != nil {
		return nil, fmt.Errorf("parseRaw(%s) > %w", path, err)
	}
	return entries, nil
}

func parseRaw(r io.Reader) ([]RawEntry, error) {
	decoder := json.NewDecoder(r)
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("decoder.Token() > %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("dictionary must be a JSON object, got %v", token)
	}

	var entries []RawEntry
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decoder.Token() > %w", err)
		}
		headword, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", keyToken)
		}

		var gloss string
		if err := decoder.Decode(&gloss); err != nil {
			return nil, fmt.Errorf("gloss of %q must be a string: %w", headword, err)
		}
		entries = append(entries, RawEntry{Headword: headword, Gloss: gloss})
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token() > %w", err)
	}
	return entries, nil
}

// WriteRawFile writes entries as an indented JSON object in the given order.
// The file is replaced atomically.
func WriteRawFile(path string, entries []RawEntry) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		key, err := marshalString(e.Headword)
		if err != nil {
			return fmt.Errorf("marshalString(%q) > %w", e.Headword, err)
		}
		value, err := marshalString(e.Gloss)
		if err != nil {
			return fmt.Errorf("marshalString(%q) > %w", e.Gloss, err)
		}
		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(entries)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write() > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close() > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", path, err)
	}
	return nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// LockFile takes an exclusive lock next to path, waiting up to timeout.
// The returned function releases it.
func LockFile(path string, timeout time.Duration) (func(), error) {
	lockPath := path + ".lock"
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire lock %s: %w", lockPath, err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%s is being updated by another process (lock: %s)", path, lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
