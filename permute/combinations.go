package permute

// Unique returns the distinct labels in order of first occurrence.
func Unique[L comparable](labels []L) []L {
	seen := make(map[L]struct{}, 16)
	out := make([]L, 0, 16)
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Combinations enumerates the label pairs to test.
//
//	ordered == true:  all U×U ordered pairs, row-major: (u0,u0), (u0,u1), ...
//	ordered == false: (u[i], u[j]) for j >= i, i.e. U(U+1)/2 pairs with
//	                  self pairs kept and mirror pairs dropped.
func Combinations[L comparable](unique []L, ordered bool) []Pair[L] {
	u := len(unique)
	var out []Pair[L]
	if ordered {
		out = make([]Pair[L], 0, u*u)
	} else {
		out = make([]Pair[L], 0, u*(u+1)/2)
	}
	for i := 0; i < u; i++ {
		j0 := i
		if ordered {
			j0 = 0
		}
		for j := j0; j < u; j++ {
			out = append(out, Pair[L]{A: unique[i], B: unique[j]})
		}
	}
	return out
}
