package plot

// MaxFixed is the largest value FormatFixed renders as digits (500.0).
const MaxFixed = 5000

// InvalidMarker replaces the digits of a value FormatFixed cannot represent.
const InvalidMarker = "*.* "

// FormatFixed renders n, a fixed-point value in tenths, as a decimal string.
//
//	2345 -> "234.5"
//	2100 -> "210.0"
//	 120 -> "12.0"
//	  31 -> "3.1"
//	5001 -> "*.* "
//
// Leading zeros in the hundreds and tens place are dropped. The value is
// truncated, never rounded.
func FormatFixed(n uint32) string {
	var buf [len("500.0")]byte
	return string(AppendFixed(buf[:0], n))
}

// AppendFixed appends the FormatFixed rendering of n to dst.
func AppendFixed(dst []byte, n uint32) []byte {
	if n > MaxFixed {
		return append(dst, InvalidMarker...)
	}

	hundreds := (n / 1000) % 10
	tens := (n / 100) % 10
	if hundreds > 0 {
		dst = append(dst, byte('0'+hundreds), byte('0'+tens))
	} else if tens > 0 {
		dst = append(dst, byte('0'+tens))
	}

	return append(dst,
		byte('0'+(n/10)%10),
		'.',
		byte('0'+n%10),
	)
}
