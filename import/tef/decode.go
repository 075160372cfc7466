package tef

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/zeebo/errs/v2"
)

// Error tags errors produced while reading or converting trace events.
var Error = errs.Tag("tef")

var gzipMagic = []byte{0x1f, 0x8b}

// Decode reads trace events from r. The document is either a File object or
// a bare array of events, optionally gzip compressed.
func Decode(r io.Reader) ([]Event, error) {
	br := bufio.NewReader(r)
	if magic, _ := br.Peek(len(gzipMagic)); bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, Error.Errorf("failed to open gzip stream: %w", err)
		}
		defer func() { _ = zr.Close() }()
		return decodeJSON(zr)
	}
	return decodeJSON(br)
}

func decodeJSON(r io.Reader) ([]Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Error.Errorf("failed to read trace: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal parses a File object or a bare array of events.
func Unmarshal(data []byte) ([]Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var events []Event
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, Error.Errorf("failed to parse event array: %w", err)
		}
		return events, nil
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, Error.Errorf("failed to parse trace file: %w", err)
	}
	return file.TraceEvents, nil
}
