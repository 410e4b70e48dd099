package truth

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// MaxVars is the largest number of variables a table may have.
const MaxVars = 16

// ErrInvalidHex is returned by [FromHex] for malformed input.
var ErrInvalidHex = errors.New("invalid hex truth table")

// projections holds the bit patterns of the first six variables.
var projections = [6]uint64{
	0xaaaaaaaaaaaaaaaa,
	0xcccccccccccccccc,
	0xf0f0f0f0f0f0f0f0,
	0xff00ff00ff00ff00,
	0xffff0000ffff0000,
	0xffffffff00000000,
}

// Table is the value vector of a Boolean function.
//
// The zero Table is a constant-false function of zero variables. Tables
// returned by the package never alias each other's storage, except that
// copying a Table value shares its words; use [Table.Clone] before calling
// [Table.SetBit] on a copy.
type Table struct {
	n     int
	words []uint64
}

func numWords(n int) int {
	if n <= 6 {
		return 1
	}
	return 1 << (n - 6)
}

// mask returns the valid-bit mask of the first word.
func mask(n int) uint64 {
	if n >= 6 {
		return ^uint64(0)
	}
	return (uint64(1) << (1 << n)) - 1
}

// New returns the constant-false function of n variables.
func New(n int) Table {
	if n < 0 || n > MaxVars {
		panic(fmt.Sprintf("truth: %d variables out of range", n))
	}
	return Table{n: n, words: make([]uint64, numWords(n))}
}

// Const returns the constant function of n variables with value v.
func Const(n int, v bool) Table {
	t := New(n)
	if v {
		for i := range t.words {
			t.words[i] = ^uint64(0)
		}
		t.words[0] &= mask(n)
	}
	return t
}

// Nth returns the projection onto variable i in an n-variable space.
func Nth(n, i int) Table {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("truth: variable %d out of range for %d variables", i, n))
	}
	t := New(n)
	if i < 6 {
		for w := range t.words {
			t.words[w] = projections[i]
		}
		t.words[0] &= mask(n)
		return t
	}
	for w := range t.words {
		if (w>>(i-6))&1 == 1 {
			t.words[w] = ^uint64(0)
		}
	}
	return t
}

// FromBits builds a table of at most six variables from its packed bits.
func FromBits(n int, b uint64) Table {
	if n > 6 {
		panic("truth: FromBits supports at most 6 variables")
	}
	t := New(n)
	t.words[0] = b & mask(n)
	return t
}

// FromHex parses a hex string (most significant digit first, optional 0x
// prefix) into a table of n variables. Shorter strings are zero-extended.
func FromHex(n int, s string) (Table, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return Table{}, fmt.Errorf("%w: empty", ErrInvalidHex)
	}
	t := New(n)
	digits := max(1, (1<<n)/4)
	if len(s) > digits {
		return Table{}, fmt.Errorf("%w: %q has more than %d digits", ErrInvalidHex, s, digits)
	}
	for i := 0; i < len(s); i++ {
		c := s[len(s)-1-i]
		var v uint64
		switch {
		case c >= '0' && c <= '9':
			v = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			v = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = uint64(c-'A') + 10
		default:
			return Table{}, fmt.Errorf("%w: bad digit %q", ErrInvalidHex, c)
		}
		t.words[i/16] |= v << (4 * (i % 16))
	}
	if t.words[0]&^mask(n) != 0 {
		return Table{}, fmt.Errorf("%w: %q exceeds %d variables", ErrInvalidHex, s, n)
	}
	return t, nil
}

// NumVars returns the number of variables.
func (t Table) NumVars() int { return t.n }

// NumBits returns the number of rows, 2^n.
func (t Table) NumBits() int { return 1 << t.n }

func (t Table) word(i int) uint64 {
	if t.words == nil {
		return 0
	}
	return t.words[i]
}

// Bit returns the function value for input assignment i.
func (t Table) Bit(i int) bool {
	return (t.word(i>>6)>>(i&63))&1 == 1
}

// SetBit sets the function value for input assignment i.
func (t *Table) SetBit(i int, v bool) {
	if t.words == nil {
		t.words = make([]uint64, 1)
	}
	if v {
		t.words[i>>6] |= 1 << (i & 63)
	} else {
		t.words[i>>6] &^= 1 << (i & 63)
	}
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	c := New(t.n)
	copy(c.words, t.words)
	return c
}

// Words returns the underlying words. Callers must not modify them.
func (t Table) Words() []uint64 {
	if t.words == nil {
		return []uint64{0}
	}
	return t.words
}

func (t Table) check(o Table) {
	if t.n != o.n {
		panic(fmt.Sprintf("truth: arity mismatch %d != %d", t.n, o.n))
	}
}

func (t Table) binary(o Table, op func(a, b uint64) uint64) Table {
	t.check(o)
	r := New(t.n)
	for i := range r.words {
		r.words[i] = op(t.word(i), o.word(i))
	}
	r.words[0] &= mask(t.n)
	return r
}

// Not returns the complement of t.
func (t Table) Not() Table {
	r := New(t.n)
	for i := range r.words {
		r.words[i] = ^t.word(i)
	}
	r.words[0] &= mask(t.n)
	return r
}

// NotIf returns the complement of t when c is true and t otherwise.
func (t Table) NotIf(c bool) Table {
	if c {
		return t.Not()
	}
	return t
}

// And returns the conjunction of t and o.
func (t Table) And(o Table) Table {
	return t.binary(o, func(a, b uint64) uint64 { return a & b })
}

// Or returns the disjunction of t and o.
func (t Table) Or(o Table) Table {
	return t.binary(o, func(a, b uint64) uint64 { return a | b })
}

// Xor returns the exclusive or of t and o.
func (t Table) Xor(o Table) Table {
	return t.binary(o, func(a, b uint64) uint64 { return a ^ b })
}

// Equal reports whether t and o have the same arity and values.
func (t Table) Equal(o Table) bool {
	if t.n != o.n {
		return false
	}
	for i := range numWords(t.n) {
		if t.word(i) != o.word(i) {
			return false
		}
	}
	return true
}

// IsZero reports whether t is constant false.
func (t Table) IsZero() bool {
	for i := range numWords(t.n) {
		if t.word(i) != 0 {
			return false
		}
	}
	return true
}

// IsOne reports whether t is constant true.
func (t Table) IsOne() bool {
	return t.Not().IsZero()
}

// IsConst reports whether t is constant and, if so, its value.
func (t Table) IsConst() (value, ok bool) {
	if t.IsZero() {
		return false, true
	}
	if t.IsOne() {
		return true, true
	}
	return false, false
}

// Maj3 returns the majority of three variables.
func Maj3() Table { return FromBits(3, 0xe8) }

// CountOnes returns the number of satisfying assignments.
func (t Table) CountOnes() int {
	c := 0
	for i := range numWords(t.n) {
		c += bits.OnesCount64(t.word(i))
	}
	return c
}

// Cofactor0 returns t with variable i fixed to false, still over n variables.
func (t Table) Cofactor0(i int) Table { return t.cofactor(i, false) }

// Cofactor1 returns t with variable i fixed to true, still over n variables.
func (t Table) Cofactor1(i int) Table { return t.cofactor(i, true) }

func (t Table) cofactor(i int, v bool) Table {
	r := New(t.n)
	for b := range t.NumBits() {
		src := b &^ (1 << i)
		if v {
			src |= 1 << i
		}
		if t.Bit(src) {
			r.SetBit(b, true)
		}
	}
	return r
}

// DependsOn reports whether t depends on variable i.
func (t Table) DependsOn(i int) bool {
	for b := range t.NumBits() {
		if b&(1<<i) == 0 && t.Bit(b) != t.Bit(b|1<<i) {
			return true
		}
	}
	return false
}

// Support returns the variables t depends on, in ascending order.
func (t Table) Support() []int {
	var s []int
	for i := range t.n {
		if t.DependsOn(i) {
			s = append(s, i)
		}
	}
	return s
}

// Shrink re-expresses t over the variables in support, which become
// variables 0..len(support)-1 of the result. Variables outside support are
// read as false.
func (t Table) Shrink(support []int) Table {
	r := New(len(support))
	for b := range r.NumBits() {
		src := 0
		for j, v := range support {
			if b&(1<<j) != 0 {
				src |= 1 << v
			}
		}
		if t.Bit(src) {
			r.SetBit(b, true)
		}
	}
	return r
}

// Expand re-expresses t in an n-variable space where variable j of t
// becomes variable positions[j].
func (t Table) Expand(n int, positions []int) Table {
	if len(positions) != t.n {
		panic("truth: Expand positions do not match arity")
	}
	r := New(n)
	for b := range r.NumBits() {
		src := 0
		for j, p := range positions {
			if b&(1<<p) != 0 {
				src |= 1 << j
			}
		}
		if t.Bit(src) {
			r.SetBit(b, true)
		}
	}
	return r
}

// Compose evaluates gate over the given child functions. All children must
// share one arity, which becomes the arity of the result.
func Compose(gate Table, children []Table) Table {
	if gate.n != len(children) {
		panic(fmt.Sprintf("truth: gate has %d inputs, got %d children", gate.n, len(children)))
	}
	if len(children) == 0 {
		panic("truth: Compose needs at least one child")
	}
	n := children[0].n
	r := New(n)
	for b := range r.NumBits() {
		idx := 0
		for j, c := range children {
			if c.Bit(b) {
				idx |= 1 << j
			}
		}
		if gate.Bit(idx) {
			r.SetBit(b, true)
		}
	}
	return r
}

// Hex returns the table as hex digits, most significant first.
func (t Table) Hex() string {
	digits := max(1, t.NumBits()/4)
	var sb strings.Builder
	for i := digits - 1; i >= 0; i-- {
		d := (t.word(i/16) >> (4 * (i % 16))) & 0xf
		sb.WriteByte("0123456789abcdef"[d])
	}
	return sb.String()
}

// Key returns a string uniquely identifying arity and values.
func (t Table) Key() string {
	return fmt.Sprintf("%d:%s", t.n, t.Hex())
}

// String implements fmt.Stringer.
func (t Table) String() string {
	return "0x" + t.Hex()
}
