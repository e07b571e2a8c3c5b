package ingest

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// decodeResults streams the "results" array of a bulk document, calling fn
// for each element in order. Other top-level keys are skipped.
func decodeResults[T any](r io.Reader, fn func(T) error) error {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrMalformedDocument, keyTok)
		}

		if key != "results" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}
			continue
		}

		if err := expectDelim(dec, '['); err != nil {
			return err
		}
		for dec.More() {
			var v T
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}
			if err := fn(v); err != nil {
				return err
			}
		}
		if err := expectDelim(dec, ']'); err != nil {
			return err
		}
	}

	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedDocument, want, tok)
	}
	return nil
}

// openDocuments calls fn with a reader for each bulk document in path.
// Zip archives, as published for download, yield every .json member, named
// path/member.
func openDocuments(path string, fn func(name string, r io.Reader) error) error {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return fn(path, f)
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer archive.Close()

	for _, member := range archive.File {
		if !strings.EqualFold(filepath.Ext(member.Name), ".json") {
			continue
		}
		if err := readMember(member, func(r io.Reader) error {
			return fn(path+"/"+member.Name, r)
		}); err != nil {
			return err
		}
	}
	return nil
}

func readMember(member *zip.File, fn func(io.Reader) error) error {
	rc, err := member.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return fn(rc)
}
