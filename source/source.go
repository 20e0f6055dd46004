// Package source acquires the raw message bytes: a plain file, stdin, the
// first entry of a password-protected zip, or the first message of an
// mbox archive.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/yeka/zip"
)

// MalwarePassword is the documented default password for zipped malware
// samples.
const MalwarePassword = "infected"

// Read loads the message bytes for path. An empty path reads stdin. A
// .zip path extracts the first archive entry with the fixed malware
// password; a .mbox path takes the first message of the archive.
// skipHeader drops everything through the first newline, for messages
// saved with a leading info line.
func Read(path string, skipHeader bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case path == "":
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			err = fmt.Errorf("read stdin: %w", err)
		}
	case strings.HasSuffix(strings.ToLower(path), ".zip"):
		data, err = readZip(path)
	case strings.HasSuffix(strings.ToLower(path), ".mbox"):
		data, err = readMbox(path)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if skipHeader {
		data = skipFirstLine(data)
	}
	return data, nil
}

func readZip(path string) ([]byte, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer archive.Close()

	if len(archive.File) == 0 {
		return nil, fmt.Errorf("zip %s contains no entries", path)
	}

	entry := archive.File[0]
	if entry.IsEncrypted() {
		entry.SetPassword(MalwarePassword)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read zip entry %s: %w", entry.Name, err)
	}
	return data, nil
}

func readMbox(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	reader := mboxlib.NewReader(file)
	msg, err := reader.NextMessage()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("mbox %s contains no messages", path)
		}
		return nil, fmt.Errorf("read mbox: %w", err)
	}

	data, err := io.ReadAll(msg)
	if err != nil {
		return nil, fmt.Errorf("read mbox message: %w", err)
	}
	return data, nil
}

func skipFirstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[i+1:]
	}
	return data
}
