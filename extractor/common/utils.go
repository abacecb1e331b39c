package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is assumed when no input encoding is given.
const DefaultEncoding = "utf-8"

// ExtractRowsFromReader reads a whole text export, decoding it from the named
// encoding (any WHATWG label such as "utf-8", "windows-1252" or "latin1"),
// and splits it into lines. Carriage returns are dropped.
func ExtractRowsFromReader(reader io.Reader, encoding string) (*[]string, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}

	raw, err := io.ReadAll(transform.NewReader(reader, enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		rows := []string{}
		return &rows, nil
	}

	rows := strings.Split(text, "\n")
	for i, row := range rows {
		rows[i] = strings.TrimSuffix(row, "\r")
	}
	return &rows, nil
}

// ExtractRowsFromFile opens path and hands it to ExtractRowsFromReader.
func ExtractRowsFromFile(path string, encoding string) (*[]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()
	return ExtractRowsFromReader(file, encoding)
}
