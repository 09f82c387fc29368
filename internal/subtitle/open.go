package subtitle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Open reads an SRT file from disk.
func Open(path string) (*Document, Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("failed to open SRT file: %w", err)
	}
	doc, report := ParseWithReport(string(data))
	return doc, report, nil
}

// Save writes doc to path as SRT, creating the parent directory.
func Save(doc *Document, path string) error {
	return WriteFile(doc, FormatSRT, path)
}

// WriteFile exports doc to path in the given format. The document is
// rendered before path is opened, so a failed export leaves it untouched.
func WriteFile(doc *Document, format Format, path string) error {
	var buf bytes.Buffer
	if err := Export(doc, format, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ImportFile reads any supported subtitle file, picking the format from
// its extension.
func ImportFile(path string) (*Document, error) {
	format, err := FormatFromExtension(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Import(format, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
