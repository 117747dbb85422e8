package chapters

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter restricts all to the ordinals named by rng ("5-12") or list
// ("1,3,5"). Both empty returns all. Order stays ascending.
func Filter(all []Chapter, rng, list string) ([]Chapter, error) {
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all, nil
}

func FilterRange(all []Chapter, rng string) ([]Chapter, error) {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q (want start-end)", rng)
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("invalid range %q (want start-end)", rng)
	}
	if start <= 0 || start > end {
		return nil, fmt.Errorf("invalid range %q", rng)
	}

	out := []Chapter{}
	for _, ch := range all {
		if ch.Ordinal >= start && ch.Ordinal <= end {
			out = append(out, ch)
		}
	}

	return out, nil
}

func FilterList(all []Chapter, list string) ([]Chapter, error) {
	want := map[int]bool{}
	for n := range strings.SplitSeq(list, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		idx, err := atoi(n)
		if err != nil || idx <= 0 {
			return nil, fmt.Errorf("invalid chapter number %q in list", n)
		}
		want[idx] = true
	}

	out := []Chapter{}
	for _, ch := range all {
		if want[ch.Ordinal] {
			out = append(out, ch)
		}
	}

	return out, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
