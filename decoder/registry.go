package decoder

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Registry holds the ordered decoder list for one run. It is filled once
// by Load and read-only afterwards.
type Registry struct {
	descriptors []Descriptor
}

// Descriptors returns the loaded decoders in registration order. The
// identity decoder is not part of the registry; the scan pipeline always
// prepends it.
func (r *Registry) Descriptors() []Descriptor {
	return r.descriptors
}

// Load resolves a comma-separated list of decoder names/paths, any entry
// optionally an @file expanding to one name per line. A failing entry is
// logged and skipped; loading continues with the remaining entries.
func Load(spec string, verbose bool, logger *slog.Logger) *Registry {
	reg := &Registry{}
	if spec == "" {
		return reg
	}

	for _, entry := range strings.Split(spec, ",") {
		names, err := expandAt(entry)
		if err != nil {
			logLoadError(logger, entry, err, verbose)
			continue
		}
		for _, name := range names {
			desc, err := resolve(name)
			if err != nil {
				logLoadError(logger, name, err, verbose)
				continue
			}
			reg.descriptors = append(reg.descriptors, desc)
		}
	}

	return reg
}

func logLoadError(logger *slog.Logger, name string, err error, verbose bool) {
	if verbose {
		logger.Error("error loading decoder", "decoder", name, "err", err)
		return
	}
	logger.Error("error loading decoder", "decoder", name)
}

func expandAt(entry string) ([]string, error) {
	entry = strings.TrimSpace(entry)
	if !strings.HasPrefix(entry, "@") {
		return []string{entry}, nil
	}

	file, err := os.Open(entry[1:])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entry, err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", entry, err)
	}
	return names, nil
}

// resolve maps one entry to a Descriptor: built-in name first, then a
// shared object relative to the current directory, then relative to the
// directory of the running executable. A missing extension defaults to
// the platform plugin extension.
func resolve(name string) (Descriptor, error) {
	if desc, ok := builtins[name]; ok {
		return desc, nil
	}

	path := name
	if filepath.Ext(path) == "" {
		path += pluginExt
	}
	if _, err := os.Stat(path); err != nil && filepath.Dir(name) == "." {
		if exe, eerr := os.Executable(); eerr == nil {
			alt := filepath.Join(filepath.Dir(exe), path)
			if _, aerr := os.Stat(alt); aerr == nil {
				path = alt
			}
		}
	}

	return openPlugin(path)
}
