// Package spdx provides a validity oracle backed by the SPDX license list. The list is read from the JSON
// files the SPDX project publishes in its license-list-data repository (licenses.json and exceptions.json).
package spdx

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

type License struct {
	ID         string `json:"licenseId"`
	Name       string `json:"name,omitempty"`
	Deprecated bool   `json:"isDeprecatedLicenseId"`
}

type Exception struct {
	ID         string `json:"licenseExceptionId"`
	Name       string `json:"name,omitempty"`
	Deprecated bool   `json:"isDeprecatedLicenseId"`
}

type document struct {
	Version    string       `json:"licenseListVersion"`
	Licenses   []*License   `json:"licenses"`
	Exceptions []*Exception `json:"exceptions"`
}

// List is a set of SPDX license identifiers and exception identifiers. A List is read-only once loaded, so
// it can be shared between goroutines.
type List struct {
	version    string
	licenses   map[string]*License
	exceptions map[string]*Exception
}

// Load reads license-list-data documents and merges them into one list. Every document must carry the same
// license list version.
func Load(docs ...io.Reader) (*List, error) {
	l := &List{
		licenses:   map[string]*License{},
		exceptions: map[string]*Exception{},
	}
	for _, r := range docs {
		doc := &document{}
		err := json.NewDecoder(r).Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("cannot decode a license list: %w", err)
		}
		err = l.merge(doc)
		if err != nil {
			return nil, err
		}
	}
	return l, nil
}

func LoadFile(paths ...string) (*List, error) {
	var docs []io.Reader
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, bytes.NewReader(b))
	}
	l, err := Load(docs...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", paths, err)
	}
	return l, nil
}

func (l *List) merge(doc *document) error {
	if doc.Version != "" {
		if l.version != "" && l.version != doc.Version {
			return fmt.Errorf("license list versions mismatch: %v and %v", l.version, doc.Version)
		}
		l.version = doc.Version
	}
	for _, lic := range doc.Licenses {
		if lic.ID == "" {
			return fmt.Errorf("a license must have an identifier")
		}
		l.licenses[lic.ID] = lic
	}
	for _, exc := range doc.Exceptions {
		if exc.ID == "" {
			return fmt.Errorf("an exception must have an identifier")
		}
		l.exceptions[exc.ID] = exc
	}
	return nil
}

// IsRecognized reports whether the token is a license identifier in the list, deprecated ones included.
// The comparison is case-sensitive. Exception identifiers are not license identifiers.
func (l *List) IsRecognized(token string) bool {
	_, ok := l.licenses[token]
	return ok
}

func (l *List) IsException(token string) bool {
	_, ok := l.exceptions[token]
	return ok
}

func (l *List) License(id string) (*License, bool) {
	lic, ok := l.licenses[id]
	return lic, ok
}

func (l *List) Version() string {
	return l.version
}

// IDs returns the license identifiers in ascending order.
func (l *List) IDs() []string {
	ids := make([]string, 0, len(l.licenses))
	for id := range l.licenses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

//go:embed licenses.json
var licensesJSON []byte

//go:embed exceptions.json
var exceptionsJSON []byte

var (
	defaultList     *List
	defaultListOnce sync.Once
)

// Default returns the list embedded in this package.
func Default() *List {
	defaultListOnce.Do(func() {
		l, err := Load(bytes.NewReader(licensesJSON), bytes.NewReader(exceptionsJSON))
		if err != nil {
			panic(fmt.Errorf("the embedded license list is broken: %w", err))
		}
		defaultList = l
	})
	return defaultList
}
