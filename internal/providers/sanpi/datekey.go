package sanpi

// DateKey is what a slug's leading YYMMDDNN code expands to.
type DateKey struct {
	Year          string
	Month         string
	Day           string
	Seq           string
	SortKey       string
	PublishedDate string
}

// Valid reports whether the slug carried a date code. Slugs without one
// produce an empty key and sort after every dated article.
func (k DateKey) Valid() bool {
	return k.SortKey != ""
}

// DeriveDateKey reads YYMMDDNN from the start of slug. A single '-' may
// separate the day from the sequence number ("240615-01").
func DeriveDateKey(slug string) DateKey {
	date, ok := leadingDigits(slug, 6)
	if !ok {
		return DateKey{}
	}

	rest := slug[6:]
	if len(rest) > 0 && rest[0] == '-' {
		rest = rest[1:]
	}
	seq, ok := leadingDigits(rest, 2)
	if !ok {
		return DateKey{}
	}

	k := DateKey{
		Year:  "20" + date[0:2],
		Month: date[2:4],
		Day:   date[4:6],
		Seq:   seq,
	}
	k.SortKey = k.Year + k.Month + k.Day + k.Seq
	k.PublishedDate = k.Year + "年" + k.Month + "月" + k.Day + "日"

	return k
}

func leadingDigits(s string, n int) (string, bool) {
	if len(s) < n {
		return "", false
	}
	for i := 0; i < n; i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}

	return s[:n], true
}
