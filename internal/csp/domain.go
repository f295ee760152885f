// Package csp implements a small finite-domain constraint solver used by
// the program/constraint mutator (component D), the goal mutator
// (component E), and the world synthesizer (component F) to enumerate
// models of a hand-built constraint system over typed enum variables.
//
// It is deliberately scoped to what those three components need: bitset
// domains over small integer ranges, a handful of global constraints
// (equality, membership, all-different, bounded sum, arbitrary n-ary
// predicates), and depth-first search with a model-blocker enumeration
// loop. It is not a general-purpose SAT/SMT engine.
package csp

import "math/bits"

// Domain is an immutable bitset over the values [0, n). Operations
// return new domains rather than mutating in place, matching the
// copy-on-write discipline the search needs for cheap backtracking.
type Domain struct {
	words []uint64
}

// wordsFor returns the word count needed to hold n values.
func wordsFor(n int) int {
	return (n + 63) / 64
}

// FullDomain returns a domain containing every value in [0, n).
func FullDomain(n int) Domain {
	d := Domain{words: make([]uint64, wordsFor(n))}
	for i := 0; i < n; i++ {
		d.words[i/64] |= 1 << uint(i%64)
	}
	return d
}

// EmptyDomain returns a domain with no values, sized for n possible
// values.
func EmptyDomain(n int) Domain {
	return Domain{words: make([]uint64, wordsFor(n))}
}

// SingletonDomain returns a domain containing exactly value, sized for n
// possible values.
func SingletonDomain(n, value int) Domain {
	d := EmptyDomain(n)
	d.words[value/64] |= 1 << uint(value%64)
	return d
}

// DomainOf returns a domain containing exactly the given values, sized
// for n possible values.
func DomainOf(n int, values ...int) Domain {
	d := EmptyDomain(n)
	for _, v := range values {
		d.words[v/64] |= 1 << uint(v%64)
	}
	return d
}

// Has reports whether value is in the domain.
func (d Domain) Has(value int) bool {
	w := value / 64
	if w >= len(d.words) {
		return false
	}
	return d.words[w]&(1<<uint(value%64)) != 0
}

// Count returns the number of values in the domain.
func (d Domain) Count() int {
	n := 0
	for _, w := range d.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the domain has no values.
func (d Domain) IsEmpty() bool {
	return d.Count() == 0
}

// IsSingleton reports whether the domain has exactly one value.
func (d Domain) IsSingleton() bool {
	return d.Count() == 1
}

// SingletonValue returns the sole value of a singleton domain. Behaviour
// is undefined if the domain is not a singleton.
func (d Domain) SingletonValue() int {
	v, _ := d.firstAfter(-1)
	return v
}

// firstAfter returns the smallest value > after, or (0,false) if none.
func (d Domain) firstAfter(after int) (int, bool) {
	start := after + 1
	for w := start / 64; w < len(d.words); w++ {
		word := d.words[w]
		lo := 0
		if w == start/64 {
			lo = start % 64
		}
		word >>= uint(lo)
		if word == 0 {
			continue
		}
		return w*64 + lo + bits.TrailingZeros64(word), true
	}
	return 0, false
}

// Values returns every value in the domain in ascending order.
func (d Domain) Values() []int {
	out := make([]int, 0, d.Count())
	v, ok := d.firstAfter(-1)
	for ok {
		out = append(out, v)
		v, ok = d.firstAfter(v)
	}
	return out
}

// Without returns a copy of d with value removed.
func (d Domain) Without(value int) Domain {
	out := Domain{words: append([]uint64(nil), d.words...)}
	w := value / 64
	if w < len(out.words) {
		out.words[w] &^= 1 << uint(value%64)
	}
	return out
}

// Intersect returns the intersection of d and other.
func (d Domain) Intersect(other Domain) Domain {
	n := len(d.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	out := Domain{words: make([]uint64, n)}
	for i := range out.words {
		var a, b uint64
		if i < len(d.words) {
			a = d.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		out.words[i] = a & b
	}
	return out
}

// Equal reports whether d and other contain exactly the same values.
func (d Domain) Equal(other Domain) bool {
	n := len(d.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(d.words) {
			a = d.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// Min returns the smallest value in the domain and true, or (0,false)
// if empty.
func (d Domain) Min() (int, bool) {
	return d.firstAfter(-1)
}

// Max returns the largest value in the domain and true, or (0,false) if
// empty.
func (d Domain) Max() (int, bool) {
	best, ok := -1, false
	for w := len(d.words) - 1; w >= 0; w-- {
		if d.words[w] == 0 {
			continue
		}
		return w*64 + (63 - bits.LeadingZeros64(d.words[w])), true
	}
	return best, ok
}
