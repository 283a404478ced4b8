// Package content reads the page deck shown by the pager.
package content

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wheelpage/internal/domain"
)

// ErrEmptyDeck is returned when a source yields no pages
var ErrEmptyDeck = errors.New("no pages found")

// pageExts are the file types picked up from a directory
var pageExts = map[string]bool{".md": true, ".txt": true, "": true}

// Load reads a deck from a file or directory. An empty source returns the
// built-in sample deck.
func Load(source string) (*domain.Deck, error) {
	if source == "" {
		return Sample(), nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}

	var pages []domain.Page
	if info.IsDir() {
		pages, err = loadDir(source)
	} else {
		pages, err = loadFile(source)
	}
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyDeck)
	}
	return &domain.Deck{Source: source, Pages: pages}, nil
}

// loadFile splits a single file on "---" lines and form feeds
func loadFile(path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Split(string(data)), nil
}

// loadDir makes one page per file, ordered by name
func loadDir(dir string) ([]domain.Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !pageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var pages []domain.Page
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		body := strings.TrimSpace(string(data))
		if body == "" {
			continue
		}
		title := titleOf(body)
		if title == "" {
			title = strings.TrimSuffix(name, filepath.Ext(name))
		}
		pages = append(pages, domain.Page{Title: title, Body: body})
	}
	return pages, nil
}

// Split breaks text into pages. Blank pages are dropped.
func Split(text string) []domain.Page {
	var (
		pages   []domain.Page
		current []string
	)
	flush := func() {
		body := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if body != "" {
			pages = append(pages, domain.Page{Title: titleOf(body), Body: body})
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		// a form feed may sit mid-line
		parts := strings.Split(line, "\f")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			current = append(current, part)
		}
	}
	flush()
	return pages
}

// titleOf returns the first non-blank line without markdown heading marks
func titleOf(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return line
		}
	}
	return ""
}
