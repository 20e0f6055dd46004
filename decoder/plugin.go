package decoder

import (
	"fmt"
	"plugin"
)

const pluginExt = ".so"

// openPlugin loads a Go plugin and extracts its exported Decoder symbol,
// which must be a *decoder.Descriptor.
func openPlugin(path string) (Descriptor, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("open plugin: %w", err)
	}

	sym, err := p.Lookup("Decoder")
	if err != nil {
		return Descriptor{}, fmt.Errorf("plugin %s: %w", path, err)
	}

	desc, ok := sym.(*Descriptor)
	if !ok {
		return Descriptor{}, fmt.Errorf("plugin %s: symbol Decoder is %T, want *decoder.Descriptor", path, sym)
	}
	if desc.Name == "" || desc.New == nil {
		return Descriptor{}, fmt.Errorf("plugin %s: incomplete Decoder descriptor", path)
	}
	return *desc, nil
}
