// Package fsutil holds the file helpers shared by the source-editing plugins.
package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const DefaultFileMode os.FileMode = 0o644

// TextFile is a decoded source file.
type TextFile struct {
	Path     string
	Encoding string
	Mode     os.FileMode
	Content  string
}

// ReadText reads path and decodes it from the named encoding. An empty name means UTF-8.
func ReadText(path, enc string) (*TextFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, err := Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &TextFile{Path: path, Encoding: enc, Mode: info.Mode().Perm(), Content: content}, nil
}

// Write encodes content back into the file's encoding and replaces it atomically.
func (f *TextFile) Write(content string) error {
	data, err := Encode(content, f.Encoding)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.Path, err)
	}
	mode := f.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}
	return WriteFileAtomic(f.Path, data, mode)
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".workbench-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Decode converts data from the named encoding to a Go string.
func Decode(data []byte, name string) (string, error) {
	enc := encodingByName(name)
	if enc == nil {
		return string(data), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Encode converts content to the named encoding.
func Encode(content, name string) ([]byte, error) {
	enc := encodingByName(name)
	if enc == nil {
		return []byte(content), nil
	}
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, enc.NewEncoder())
	if _, err := w.Write([]byte(content)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// KnownEncoding reports whether name is accepted by Decode and Encode.
func KnownEncoding(name string) bool {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return true
	}
	return encodingByName(name) != nil
}

func encodingByName(name string) encoding.Encoding {
	switch strings.ToLower(name) {
	case "latin-1", "latin1", "iso-8859-1", "ascii":
		return charmap.ISO8859_1
	case "windows-1252":
		return charmap.Windows1252
	case "utf-16", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	default:
		return nil
	}
}

// SplitLines splits content on "\n" and reports whether it ended with a newline.
func SplitLines(content string) ([]string, bool) {
	if content == "" {
		return []string{}, false
	}
	trailing := strings.HasSuffix(content, "\n")
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		if trailing {
			return []string{""}, true
		}
		return []string{}, false
	}
	return strings.Split(trimmed, "\n"), trailing
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string, trailing bool) string {
	joined := strings.Join(lines, "\n")
	if trailing {
		return joined + "\n"
	}
	return joined
}
