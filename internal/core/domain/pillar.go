package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Pillar is a stem-branch pair (柱). It is a value type: the display
// name is derived from the pair on every call and never stored.
type Pillar struct {
	Stem   Stem
	Branch Branch
}

// NewPillar creates a pillar from the given stem and branch.
func NewPillar(stem Stem, branch Branch) Pillar {
	return Pillar{Stem: StemAt(int(stem)), Branch: BranchAt(int(branch))}
}

// String returns the two glyphs concatenated, e.g. "甲子".
func (p Pillar) String() string {
	return p.Stem.Name() + p.Branch.Name()
}

// Pinyin returns the romanised name, e.g. "Jia-Zi".
func (p Pillar) Pinyin() string {
	return p.Stem.Pinyin() + "-" + p.Branch.Pinyin()
}

// CycleIndex returns the position of the pair within the sixty-pair cycle,
// or -1 if the pair cannot occur (stem and branch of different parity).
func (p Pillar) CycleIndex() int {
	s, b := p.Stem.Index(), p.Branch.Index()
	if s%2 != b%2 {
		return -1
	}
	for i := 0; i < 60; i++ {
		if i%StemCount == s && i%BranchCount == b {
			return i
		}
	}
	return -1
}

// pillarJSON is the wire shape of a Pillar.
type pillarJSON struct {
	Stem   string `json:"stem"`
	Branch string `json:"branch"`
	Name   string `json:"name"`
}

// MarshalJSON implements json.Marshaler.
func (p Pillar) MarshalJSON() ([]byte, error) {
	return json.Marshal(pillarJSON{
		Stem:   p.Stem.Name(),
		Branch: p.Branch.Name(),
		Name:   p.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pillar) UnmarshalJSON(data []byte) error {
	var raw pillarJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePillar(raw.Stem + raw.Branch)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler without importing yaml.
func (p Pillar) MarshalYAML() (any, error) {
	return p.String(), nil
}

// ParsePillar parses a two-glyph pillar name such as "甲子".
// Pairs that never occur in the sixty-pair cycle, such as "甲丑", are rejected.
func ParsePillar(name string) (Pillar, error) {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) != 2 {
		return Pillar{}, ErrInvalidInput
	}
	stemIdx := indexOf(stemGlyphs[:], string(runes[0]))
	branchIdx := indexOf(branchGlyphs[:], string(runes[1]))
	if stemIdx < 0 || branchIdx < 0 {
		return Pillar{}, ErrInvalidInput
	}
	p := NewPillar(Stem(stemIdx), Branch(branchIdx))
	if p.CycleIndex() < 0 {
		return Pillar{}, fmt.Errorf("%w: %s is not in the sexagenary cycle", ErrInvalidInput, p)
	}
	return p, nil
}

func indexOf(glyphs []string, g string) int {
	for i, v := range glyphs {
		if v == g {
			return i
		}
	}
	return -1
}
