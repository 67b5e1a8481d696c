package order

import "strings"

// digits strips every non-digit byte from s.
func digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// FormatCPF normalizes a tax-id to ###.###.###-##. Inputs with fewer
// than 11 digits produce the most complete partial mask; extra digits
// are dropped.
func FormatCPF(raw string) string {
	d := digits(raw)
	if len(d) > 11 {
		d = d[:11]
	}

	var b strings.Builder
	for i := 0; i < len(d); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// FormatPhone applies the progressive (##) #####-#### mask, degrading
// gracefully while fewer than the maximum digits have been typed:
// up to 2 digits yields "(dd", up to 7 "(dd) ddddd", and beyond that
// the full form. Extra digits are dropped.
func FormatPhone(raw string) string {
	d := digits(raw)
	if len(d) > 11 {
		d = d[:11]
	}

	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// FormatCEP normalizes a postal code to #####-###. Fewer than six
// digits are kept bare; extra digits are dropped.
func FormatCEP(raw string) string {
	d := digits(raw)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}
