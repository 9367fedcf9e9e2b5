package providers

import (
	"strconv"
	"strings"
)

func Filter(all []Article, date, rng, list string) []Article {
	if date != "" {
		return FilterByDate(all, date)
	}
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

// FilterByDate accepts either a digit prefix of the sort key (2024, 20240615)
// or a display date such as 2024年06月15日.
func FilterByDate(all []Article, date string) []Article {
	date = strings.TrimSpace(date)
	out := []Article{}
	for _, a := range all {
		if a.PublishedDate == date {
			out = append(out, a)
			continue
		}
		if isDigits(date) && a.SortKey != "" && strings.HasPrefix(a.SortKey, date) {
			out = append(out, a)
		}
	}

	return out
}

func FilterRange(all []Article, rng string) []Article {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}

	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))

	if err1 != nil || err2 != nil {
		return nil
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil
	}

	return all[start-1 : end]
}

func FilterList(all []Article, list string) []Article {
	var out []Article
	parts := strings.SplitSeq(list, ",")

	for p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		idx, err := strconv.Atoi(p)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}

		out = append(out, all[idx-1])
	}

	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
