package store

import "github.com/paveg/statdex/internal/record"

// Bound tracks the minimum and maximum of one attribute. The zero value has
// no data, which is distinct from every real pair of values.
type Bound struct {
	min   int
	max   int
	valid bool
}

// Valid reports whether at least one value was observed.
func (b Bound) Valid() bool { return b.valid }

// Min returns the smallest observed value and whether it exists.
func (b Bound) Min() (int, bool) { return b.min, b.valid }

// Max returns the largest observed value and whether it exists.
func (b Bound) Max() (int, bool) { return b.max, b.valid }

// Pick returns Min when wantMinimum is set and Max otherwise.
func (b Bound) Pick(wantMinimum bool) (int, bool) {
	if wantMinimum {
		return b.Min()
	}
	return b.Max()
}

func (b Bound) observe(v int) Bound {
	if !b.valid {
		return Bound{min: v, max: v, valid: true}
	}
	b.min = min(b.min, v)
	b.max = max(b.max, v)
	return b
}

// Extrema holds the running bounds of hp and speed.
type Extrema struct {
	HP    Bound
	Speed Bound
}

// For returns the bound of attr.
func (e Extrema) For(attr record.Attribute) Bound {
	if attr == record.Speed {
		return e.Speed
	}
	return e.HP
}

func (e Extrema) observe(c record.Character) Extrema {
	e.HP = e.HP.observe(c.HP())
	e.Speed = e.Speed.observe(c.Speed())
	return e
}
