package eml_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhcgn/eml-inspect/eml"
)

const textBody = "A copy of your invoice follows.\n"

var binaryBody = func() []byte {
	b := make([]byte, 300)
	copy(b, "MZ")
	for i := 2; i < len(b); i++ {
		b[i] = byte(i)
	}
	return b
}()

func sampleMessage() []byte {
	var sb strings.Builder
	sb.WriteString("From: sender@example.com\r\n")
	sb.WriteString("To: victim@example.com\r\n")
	sb.WriteString("Subject: invoice\r\n")
	sb.WriteString("Content-Type: multipart/mixed; boundary=BOUNDARY\r\n")
	sb.WriteString("\r\n")
	sb.WriteString("--BOUNDARY\r\n")
	sb.WriteString("Content-Type: text/plain\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(textBody)
	sb.WriteString("\r\n--BOUNDARY\r\n")
	sb.WriteString("Content-Type: application/octet-stream\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(base64.StdEncoding.EncodeToString(binaryBody))
	sb.WriteString("\r\n--BOUNDARY--\r\n")
	return []byte(sb.String())
}

func TestParseThreePartMessage(t *testing.T) {
	t.Parallel()

	parts, err := eml.Parse(sampleMessage())
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, 1, parts[0].Index)
	assert.Equal(t, "multipart/mixed", parts[0].ContentType)
	assert.True(t, parts[0].Container)
	assert.False(t, parts[0].HasPayload())

	assert.Equal(t, 2, parts[1].Index)
	assert.Equal(t, "text/plain", parts[1].ContentType)
	assert.False(t, parts[1].Container)
	assert.Equal(t, []byte(textBody), parts[1].Payload)

	assert.Equal(t, 3, parts[2].Index)
	assert.Equal(t, "application/octet-stream", parts[2].ContentType)
	assert.False(t, parts[2].Container)
	assert.Equal(t, binaryBody, parts[2].Payload, "transfer encoding is undone by the walker")
}

func TestParseSinglePartMessage(t *testing.T) {
	t.Parallel()

	raw := []byte("Subject: plain\r\nContent-Type: text/plain\r\n\r\nhello\r\n")

	parts, err := eml.Parse(raw)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "text/plain", parts[0].ContentType)
	assert.False(t, parts[0].Container)
	assert.Equal(t, []byte("hello\r\n"), parts[0].Payload)
}

func TestParseMissingContentTypeDefaultsToTextPlain(t *testing.T) {
	t.Parallel()

	raw := []byte("Subject: bare\r\n\r\nbody\r\n")

	parts, err := eml.Parse(raw)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "text/plain", parts[0].ContentType)
}

func TestParseNestedMultipart(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("Content-Type: multipart/mixed; boundary=OUTER\r\n\r\n")
	sb.WriteString("--OUTER\r\n")
	sb.WriteString("Content-Type: multipart/related; boundary=INNER\r\n\r\n")
	sb.WriteString("--INNER\r\n")
	sb.WriteString("Content-Type: text/html\r\n\r\n")
	sb.WriteString("<html></html>\r\n")
	sb.WriteString("\r\n--INNER--\r\n")
	sb.WriteString("--OUTER\r\n")
	sb.WriteString("Content-Type: text/plain\r\n\r\n")
	sb.WriteString("plain\r\n")
	sb.WriteString("\r\n--OUTER--\r\n")

	parts, err := eml.Parse([]byte(sb.String()))
	require.NoError(t, err)
	require.Len(t, parts, 4)

	// depth-first: outer container, inner container, its leaf, then the
	// outer's second leaf
	assert.True(t, parts[0].Container)
	assert.True(t, parts[1].Container)
	assert.Equal(t, "multipart/related", parts[1].ContentType)
	assert.Equal(t, "text/html", parts[2].ContentType)
	assert.Equal(t, "text/plain", parts[3].ContentType)
}

func TestParseGarbage(t *testing.T) {
	t.Parallel()

	// headerless garbage parses as a single text/plain body rather than
	// failing, matching how mail tools treat malformed input
	parts, err := eml.Parse([]byte("\r\nnot a mime message at all"))
	require.NoError(t, err)
	require.Len(t, parts, 1)
}
