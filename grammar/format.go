package grammar

import "fmt"

// Format is a textual convention of a license string.
type Format int

const (
	// FormatLegacy is the historical Fedora convention: lowercase `and`/`or` keywords and identifiers
	// that may contain spaces, such as `ASL 2.0`.
	FormatLegacy Format = 1

	// FormatSPDX is the SPDX license expression convention: uppercase `AND`/`OR` keywords and
	// identifiers without spaces.
	FormatSPDX Format = 2
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatSPDX:
		return "spdx"
	}
	return fmt.Sprintf("<invalid format: %d>", int(f))
}

func ParseFormat(s string) (Format, error) {
	switch s {
	case "legacy":
		return FormatLegacy, nil
	case "spdx":
		return FormatSPDX, nil
	}
	return 0, fmt.Errorf("unknown format: %v", s)
}

func (f Format) MarshalText() ([]byte, error) {
	if f != FormatLegacy && f != FormatSPDX {
		return nil, fmt.Errorf("cannot marshal an invalid format: %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Keywords returns the conjunction and disjunction keywords of the format.
func (f Format) Keywords() (string, string) {
	if f == FormatSPDX {
		return "AND", "OR"
	}
	return "and", "or"
}
