package java

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Modifiers is a set of Java modifiers.
type Modifiers uint16

// Modifier flags.
const (
	Public Modifiers = 1 << iota
	Protected
	Private
	Abstract
	Default
	Static
	Sealed
	NonSealed
	Final
	Transient
	Volatile
	Synchronized
	Native
	Strictfp
)

// canonical is the conventional modifier order.
var canonical = []struct {
	flag    Modifiers
	keyword string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Default, "default"},
	{Static, "static"},
	{Sealed, "sealed"},
	{NonSealed, "non-sealed"},
	{Final, "final"},
	{Transient, "transient"},
	{Volatile, "volatile"},
	{Synchronized, "synchronized"},
	{Native, "native"},
	{Strictfp, "strictfp"},
}

// ParseModifiers parses modifier keywords in any order.
func ParseModifiers(keywords ...string) (Modifiers, error) {
	var m Modifiers

outer:
	for _, kw := range keywords {
		for _, c := range canonical {
			if c.keyword == kw {
				m |= c.flag

				continue outer
			}
		}

		return 0, errors.Wrapf(ErrUnknownModifier, "%q", kw)
	}

	return m, nil
}

// Has reports whether all flags in o are set.
func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

// Keywords returns the set modifiers in canonical order.
func (m Modifiers) Keywords() []string {
	var kws []string

	for _, c := range canonical {
		if m&c.flag != 0 {
			kws = append(kws, c.keyword)
		}
	}

	return kws
}

func (m Modifiers) String() string {
	return strings.Join(m.Keywords(), " ")
}

// emit writes the modifiers followed by a space, or nothing when empty.
func (m Modifiers) emit(b *Builder) {
	if m != 0 {
		b.Append(m.String()).Space()
	}
}
