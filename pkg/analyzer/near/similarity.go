package near

// Dice returns the Sørensen–Dice coefficient over character bigrams of two
// strings, in [0,1]. Identical strings score 1.0; strings shorter than one
// bigram score 0 unless equal.
func Dice(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) < 2 || len(b) < 2 {
		return 0.0
	}

	counts := make(map[string]int, len(a)-1)
	for i := 0; i < len(a)-1; i++ {
		counts[a[i:i+2]]++
	}

	overlap := 0
	for i := 0; i < len(b)-1; i++ {
		bigram := b[i : i+2]
		if counts[bigram] > 0 {
			counts[bigram]--
			overlap++
		}
	}

	return 2.0 * float64(overlap) / float64(len(a)+len(b)-2)
}
