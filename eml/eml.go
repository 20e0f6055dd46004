// Package eml turns raw message bytes into the ordered part list the
// rest of the tool works on.
package eml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"

	"github.com/dhcgn/eml-inspect/model"
)

// Parse walks the MIME structure depth-first, root entity included, and
// returns one Part per node with a 1-based index. Containers carry no
// payload; a leaf whose body cannot be read keeps a nil payload instead
// of failing the whole walk.
func Parse(data []byte) ([]model.Part, error) {
	entity, err := message.Read(bytes.NewReader(data))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	var parts []model.Part
	index := 0
	walkErr := entity.Walk(func(path []int, e *message.Entity, err error) error {
		index++
		part := model.Part{Index: index, ContentType: contentType(e)}

		if strings.HasPrefix(part.ContentType, "multipart/") {
			part.Container = true
		} else if err == nil {
			if body, readErr := io.ReadAll(e.Body); readErr == nil {
				part.Payload = body
			}
		}

		parts = append(parts, part)
		return nil
	})
	if walkErr != nil && !message.IsUnknownCharset(walkErr) {
		return nil, fmt.Errorf("walk message: %w", walkErr)
	}

	return parts, nil
}

func contentType(e *message.Entity) string {
	t, _, err := e.Header.ContentType()
	if err != nil || t == "" {
		return "text/plain"
	}
	return t
}
