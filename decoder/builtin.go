package decoder

import "fmt"

// Built-in bruteforce decoders, resolvable by bare name without touching
// the filesystem. Enumeration order is ascending key value and stable
// across runs.
var builtins = map[string]Descriptor{
	"xor1": {Name: "XOR 1 byte decoder", New: newXOR1},
	"rol1": {Name: "ROL 1 byte decoder", New: newROL1},
	"add1": {Name: "ADD 1 byte decoder", New: newADD1},
}

type xor1 struct {
	data  []byte
	key   int
	label string
}

func newXOR1(data []byte, options string) (Instance, error) {
	return &xor1{data: data}, nil
}

func (d *xor1) Available() bool {
	return d.key <= 0xff
}

func (d *xor1) Decode() []byte {
	out := make([]byte, len(d.data))
	for i, b := range d.data {
		out[i] = b ^ byte(d.key)
	}
	d.label = fmt.Sprintf("XOR 1 byte key 0x%02x", d.key)
	d.key++
	return out
}

func (d *xor1) Name() string {
	return d.label
}

type rol1 struct {
	data  []byte
	key   int
	label string
}

func newROL1(data []byte, options string) (Instance, error) {
	return &rol1{data: data, key: 1}, nil
}

func (d *rol1) Available() bool {
	return d.key <= 7
}

func (d *rol1) Decode() []byte {
	out := make([]byte, len(d.data))
	k := uint(d.key)
	for i, b := range d.data {
		out[i] = b<<k | b>>(8-k)
	}
	d.label = fmt.Sprintf("ROL 1 byte key %d", d.key)
	d.key++
	return out
}

func (d *rol1) Name() string {
	return d.label
}

type add1 struct {
	data  []byte
	key   int
	label string
}

func newADD1(data []byte, options string) (Instance, error) {
	return &add1{data: data, key: 1}, nil
}

func (d *add1) Available() bool {
	return d.key <= 0xff
}

func (d *add1) Decode() []byte {
	out := make([]byte, len(d.data))
	for i, b := range d.data {
		out[i] = b + byte(d.key)
	}
	d.label = fmt.Sprintf("ADD 1 byte key 0x%02x", d.key)
	d.key++
	return out
}

func (d *add1) Name() string {
	return d.label
}
