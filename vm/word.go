package vm

// Word is the LC-3 machine word. All arithmetic on it wraps modulo 2^16.
type Word uint16

// sext sign extends the low bitCount bits of x to a full word.
func sext(x Word, bitCount uint) Word {
	x &= 1<<bitCount - 1
	if ((x >> (bitCount - 1)) & 0b1) != 0 {
		x |= 0xFFFF << bitCount
	}
	return x
}
