// Package decoder defines the byte-transform plugin contract used by the
// scan pipeline, the built-in bruteforce decoders, and the registry that
// loads decoders by name or shared-object path.
package decoder

// Instance is one in-flight enumeration of transformed renditions of a
// single buffer. Decode advances the internal state and may flip
// Available to false; Name describes the transform applied to the buffer
// just produced.
type Instance interface {
	Available() bool
	Decode() []byte
	Name() string
}

// Descriptor is a loadable decoder: a display name plus a constructor
// producing one fresh Instance per (input, options) pair. Instances are
// stateful within one part's enumeration only and are discarded after.
type Descriptor struct {
	Name string
	New  func(data []byte, options string) (Instance, error)
}

type identity struct {
	data []byte
	done bool
}

// Identity returns the built-in pass-through decoder instance. It yields
// its input exactly once, with an empty label. It is always the first
// decoder tried for every part and is never user-supplied.
func Identity(data []byte) Instance {
	return &identity{data: data}
}

func (d *identity) Available() bool {
	return !d.done
}

func (d *identity) Decode() []byte {
	d.done = true
	return d.data
}

func (d *identity) Name() string {
	return ""
}
