package headless

import "slices"

type observer[F any] struct {
	fn      F
	removed bool
}

// observers is an ordered callback list that tolerates removal while it is
// being notified.
type observers[F any] struct {
	entries []*observer[F]
}

func (o *observers[F]) add(fn F) func() {
	entry := &observer[F]{fn: fn}
	o.entries = append(o.entries, entry)
	return func() {
		if entry.removed {
			return
		}
		entry.removed = true
		if i := slices.Index(o.entries, entry); i >= 0 {
			o.entries = slices.Delete(o.entries, i, i+1)
		}
	}
}

func (o *observers[F]) each(call func(F)) {
	for _, entry := range slices.Clone(o.entries) {
		if !entry.removed {
			call(entry.fn)
		}
	}
}

func (o *observers[F]) len() int {
	return len(o.entries)
}

func (o *observers[F]) clear() {
	for _, entry := range o.entries {
		entry.removed = true
	}
	o.entries = nil
}
