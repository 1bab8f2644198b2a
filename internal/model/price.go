package model

import "strconv"

// FormatIDR renders a rupiah amount the way the venue prints prices:
// "Rp 150.000" with dots grouping thousands. Amounts here are whole rupiah,
// so there is no fractional part to render.
func FormatIDR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}
