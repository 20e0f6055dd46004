// Package engine is the boundary to the pattern-matching engine. Rules
// are compiled once at startup and applied to many buffers. The YARA
// implementation is only built with the yara build tag; without it,
// Compile reports that the capability is missing.
package engine

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhcgn/eml-inspect/model"
)

// Match is one rule match against a buffer.
type Match struct {
	Namespace string
	Rule      string
	Strings   []model.StringMatch
}

// Rules is a compiled, reusable rule set.
type Rules interface {
	Match(data []byte) ([]Match, error)
}

// Sources expands a rule specifier into the list of rule files to
// compile: all files under a directory, the lines of an @file list, or
// the single named file.
func Sources(spec string) ([]string, error) {
	if info, err := os.Stat(spec); err == nil && info.IsDir() {
		var files []string
		err := filepath.WalkDir(spec, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", spec, err)
		}
		return files, nil
	}

	if strings.HasPrefix(spec, "@") {
		file, err := os.Open(spec[1:])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", spec, err)
		}
		defer file.Close()

		var files []string
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				files = append(files, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", spec, err)
		}
		return files, nil
	}

	return []string{spec}, nil
}
