// Package scan drives the brute-force decode-and-match pass over every
// part of a message.
package scan

import (
	"fmt"
	"log/slog"

	"github.com/dhcgn/eml-inspect/decoder"
	"github.com/dhcgn/eml-inspect/engine"
	"github.com/dhcgn/eml-inspect/model"
)

// maxDecoderOutputs bounds a runaway decoder enumeration. A well-behaved
// single-byte bruteforcer produces at most 256 outputs.
const maxDecoderOutputs = 65536

// Options carries the per-run scan settings.
type Options struct {
	DecoderOptions string
	MatchStrings   bool
	Verbose        bool
}

// Pipeline scans parts sequentially, in traversal order, with an ordered
// decoder set that is fixed after construction.
type Pipeline struct {
	rules    engine.Rules
	decoders []decoder.Descriptor
	opts     Options
	logger   *slog.Logger
}

func New(rules engine.Rules, decoders []decoder.Descriptor, opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		rules:    rules,
		decoders: decoders,
		opts:     opts,
		logger:   logger,
	}
}

// Run scans every part that carries payload bytes and calls emit for each
// hit. A decoder instantiation failure aborts the whole run; a part is
// only left once its full decoder set is exhausted.
func (p *Pipeline) Run(parts []model.Part, emit func(model.ScanHit)) error {
	for _, part := range parts {
		if !part.HasPayload() {
			continue
		}

		sessions, err := p.instantiate(part)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			if err := s.run(p.rules, p.opts.MatchStrings, p.logger, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

// instantiate builds the identity session plus one session per registered
// decoder, all over the same payload and options string. Any single
// failure is fatal, so a partial decoder set is never scanned.
func (p *Pipeline) instantiate(part model.Part) ([]*session, error) {
	sessions := make([]*session, 0, len(p.decoders)+1)
	sessions = append(sessions, &session{part: part, inst: decoder.Identity(part.Payload)})

	for _, desc := range p.decoders {
		inst, err := desc.New(part.Payload, p.opts.DecoderOptions)
		if err != nil {
			if p.opts.Verbose {
				return nil, fmt.Errorf("instantiate decoder %s: %w", desc.Name, err)
			}
			return nil, fmt.Errorf("instantiate decoder %s", desc.Name)
		}
		sessions = append(sessions, &session{part: part, inst: inst})
	}

	return sessions, nil
}

// A session drives one decoder instance through its full enumeration,
// matching every produced rendition against the rule set.
type session struct {
	part model.Part
	inst decoder.Instance
}

func (s *session) run(rules engine.Rules, matchStrings bool, logger *slog.Logger, emit func(model.ScanHit)) error {
	for n := 0; s.inst.Available(); n++ {
		if n >= maxDecoderOutputs {
			logger.Warn("decoder enumeration truncated", "part", s.part.Index, "outputs", n)
			return nil
		}

		buf := s.inst.Decode()
		matches, err := rules.Match(buf)
		if err != nil {
			return fmt.Errorf("part %d: match: %w", s.part.Index, err)
		}

		for _, m := range matches {
			hit := model.ScanHit{
				PartIndex:   s.part.Index,
				Container:   s.part.Container,
				Length:      len(s.part.Payload),
				ContentType: s.part.ContentType,
				Namespace:   m.Namespace,
				Rule:        m.Rule,
				Decoder:     s.inst.Name(),
			}
			if matchStrings {
				hit.Strings = m.Strings
			}
			emit(hit)
		}
	}
	return nil
}
