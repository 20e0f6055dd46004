// Package selector resolves a user selection token to a single part.
package selector

import "github.com/dhcgn/eml-inspect/model"

// Selector matches parts against one selection token: an all-decimal
// token selects by 1-based index, anything else by exact content type.
type Selector struct {
	token   string
	byIndex bool
	index   int
}

func New(token string) *Selector {
	s := &Selector{token: token}
	if allDecimal(token) {
		s.byIndex = true
		for _, r := range token {
			s.index = s.index*10 + int(r-'0')
		}
	}
	return s
}

// Find returns the first matching part. The bool reports whether any
// part matched; a matched container comes back as is and must not be
// dumped by the caller.
func (s *Selector) Find(parts []model.Part) (model.Part, bool) {
	for _, p := range parts {
		if s.matches(p) {
			return p, true
		}
	}
	return model.Part{}, false
}

func (s *Selector) matches(p model.Part) bool {
	if s.byIndex {
		return p.Index == s.index
	}
	return p.ContentType == s.token
}

func allDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
