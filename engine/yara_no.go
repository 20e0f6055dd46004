//go:build !yara

package engine

import "errors"

// placeholder to not compile against libyara

// Compile reports the missing capability once, at startup.
func Compile(spec string) (Rules, error) {
	return nil, errors.New("yara support is not enabled in this build, rebuild with -tags yara")
}
