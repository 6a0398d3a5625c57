// Package measurement loads override records. Loading is best-effort: any
// problem with the source yields an empty record, never an error.
package measurement

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/couchcryptid/methane-report-service/internal/domain"
)

// Outcome classifies a load.
type Outcome string

const (
	OutcomeAbsent    Outcome = "absent"
	OutcomeParsed    Outcome = "parsed"
	OutcomeMalformed Outcome = "malformed"
)

// Load reads the override record at path. A missing or empty file, an
// unreadable file, and content that is not a JSON object all yield an empty
// record.
func Load(path string) domain.Overrides {
	o, _ := load(path)
	return o
}

// Parse applies the Load policy to bytes already in memory.
func Parse(data []byte) domain.Overrides {
	o, _ := parse(data)
	return o
}

// Loader wraps Load and Parse with an outcome callback.
type Loader struct {
	observe func(path string, o Outcome)
}

// NewLoader returns a Loader. observe may be nil.
func NewLoader(observe func(path string, o Outcome)) *Loader {
	return &Loader{observe: observe}
}

// Load behaves like the package-level Load.
func (l *Loader) Load(path string) domain.Overrides {
	o, outcome := load(path)
	l.record(path, outcome)
	return o
}

// Parse behaves like the package-level Parse. source names the origin in the
// callback.
func (l *Loader) Parse(source string, data []byte) domain.Overrides {
	o, outcome := parse(data)
	l.record(source, outcome)
	return o
}

func (l *Loader) record(path string, o Outcome) {
	if l != nil && l.observe != nil {
		l.observe(path, o)
	}
}

func load(path string) (domain.Overrides, Outcome) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Overrides{}, OutcomeAbsent
		}
		return domain.Overrides{}, OutcomeMalformed
	}
	return parse(data)
}

func parse(data []byte) (domain.Overrides, Outcome) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Overrides{}, OutcomeAbsent
	}
	var o domain.Overrides
	if err := json.Unmarshal(data, &o); err != nil || o == nil {
		return domain.Overrides{}, OutcomeMalformed
	}
	return o, OutcomeParsed
}
