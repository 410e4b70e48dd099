// Package bench reads and writes netlists in the BENCH format.
//
// The reader accepts the ISCAS-style gate syntax together with the LUT
// extension used by logic synthesis tools:
//
//	# full adder carry
//	INPUT(a)
//	INPUT(b)
//	INPUT(c)
//	OUTPUT(co)
//	ab = AND(a, b)
//	co = LUT 0xe8 (a, b, c)
//	q  = DFF(co)
//
// Supported gates are AND, NAND, OR, NOR, XOR, XNOR (any number of
// inputs), NOT, BUF/BUFF, DFF and LUT. A statement "x = y" aliases a
// signal, and the names gnd and vdd denote the constants unless the file
// defines them. Statements may appear in any order.
//
// The writer emits every live gate as a LUT over uncomplemented signals, so
// [Write] followed by [Read] reproduces the same functions.
package bench
