//go:build yara

package engine

import (
	"fmt"
	"os"

	"github.com/hillu/go-yara/v4"

	"github.com/dhcgn/eml-inspect/model"
)

type yaraRules struct {
	rules *yara.Rules
}

// Compile gathers rule files per Sources and compiles them into one YARA
// rule set.
func Compile(spec string) (Rules, error) {
	files, err := Sources(spec)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no rule files in %s", spec)
	}

	compiler, err := yara.NewCompiler()
	if err != nil {
		return nil, fmt.Errorf("yara compiler: %w", err)
	}
	defer compiler.Destroy()

	for _, path := range files {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open rule file: %w", err)
		}
		err = compiler.AddFile(file, "")
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", path, err)
		}
	}

	rules, err := compiler.GetRules()
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}
	return &yaraRules{rules: rules}, nil
}

func (y *yaraRules) Match(data []byte) ([]Match, error) {
	var matched yara.MatchRules
	if err := y.rules.ScanMem(data, 0, 0, &matched); err != nil {
		return nil, err
	}

	out := make([]Match, 0, len(matched))
	for _, m := range matched {
		match := Match{Namespace: m.Namespace, Rule: m.Rule}
		for _, s := range m.Strings {
			match.Strings = append(match.Strings, model.StringMatch{
				Offset:     int64(s.Offset),
				Identifier: s.Name,
				Data:       s.Data,
			})
		}
		out = append(out, match)
	}
	return out, nil
}
