// Package record defines the Character record, the two numeric attributes
// that queries operate on, and the canonical orderings used wherever
// characters are collected into a result.
package record

import (
	"fmt"
	"strings"

	"github.com/paveg/statdex/internal/common"
	"github.com/paveg/statdex/internal/errors"
)

// NotAvailable is printed in place of an empty alternate name.
const NotAvailable = "N/A"

// Attribute identifies one of the numeric columns of a Character.
type Attribute int

const (
	// HP is the hit point attribute.
	HP Attribute = iota
	// Speed is the speed attribute.
	Speed
)

// Attributes lists every queryable attribute.
var Attributes = []Attribute{HP, Speed}

// String returns the column name of the attribute.
func (a Attribute) String() string {
	switch a {
	case HP:
		return "hp"
	case Speed:
		return "speed"
	default:
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
}

// Label returns the attribute name as printed in summaries.
func (a Attribute) Label() string {
	switch a {
	case HP:
		return "HP"
	case Speed:
		return "Speed"
	default:
		return a.String()
	}
}

// Of returns the value of the attribute for c.
func (a Attribute) Of(c Character) int {
	if a == Speed {
		return c.speed
	}
	return c.hp
}

// Other returns the attribute used as the secondary sort key.
func (a Attribute) Other() Attribute {
	if a == Speed {
		return HP
	}
	return Speed
}

// ParseAttribute resolves an attribute name, ignoring case and surrounding spaces.
func ParseAttribute(name string) (Attribute, error) {
	switch common.FoldKey(strings.TrimSpace(name)) {
	case "hp", "hitpoints", "hit_points":
		return HP, nil
	case "speed":
		return Speed, nil
	default:
		return HP, errors.NewUnknownAttributeError("ParseAttribute", name)
	}
}

// Character is one validated dataset row. It is an immutable value:
// all fields are set by New and only read afterwards.
type Character struct {
	name          string
	alternateName string
	hp            int
	speed         int
	key           string
}

// New creates a Character. The fold key of the name is computed once here
// and reused by every comparison.
func New(name, alternateName string, hp, speed int) Character {
	return Character{
		name:          name,
		alternateName: alternateName,
		hp:            hp,
		speed:         speed,
		key:           common.FoldKey(name),
	}
}

// Name returns the primary name.
func (c Character) Name() string { return c.name }

// AlternateName returns the secondary label, which may be empty.
func (c Character) AlternateName() string { return c.alternateName }

// HP returns the hit points.
func (c Character) HP() int { return c.hp }

// Speed returns the speed.
func (c Character) Speed() int { return c.speed }

// Key returns the case-folded name used for lookups and ordering.
func (c Character) Key() string { return c.key }

// String formats the single-line summary
// "<name> / <alternate name or N/A> | HP: <hp> | Speed: <speed>".
func (c Character) String() string {
	alt := c.alternateName
	if alt == "" {
		alt = NotAvailable
	}
	return fmt.Sprintf("%s / %s | HP: %d | Speed: %d", c.name, alt, c.hp, c.speed)
}
