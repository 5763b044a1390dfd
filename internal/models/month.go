package models

// SchemeLength is the number of months a committee run spans.
const SchemeLength = 16

// Sequence is the ordered, immutable list of month identifiers spanning the
// scheme's lifetime. It is the single source of truth for "next month",
// "starting month" and the canonical month ordering.
type Sequence struct {
	months []string
	index  map[string]int
}

// NewSequence builds a Sequence from the configured month identifiers.
func NewSequence(months []string) *Sequence {
	idx := make(map[string]int, len(months))
	copied := make([]string, len(months))
	for i, m := range months {
		copied[i] = m
		idx[m] = i
	}
	return &Sequence{months: copied, index: idx}
}

// Months returns the identifiers in scheme order.
func (s *Sequence) Months() []string {
	out := make([]string, len(s.months))
	copy(out, s.months)
	return out
}

// Contains reports whether month is part of the scheme.
func (s *Sequence) Contains(month string) bool {
	_, ok := s.index[month]
	return ok
}

// Index returns the zero-based position of month, or -1 if unknown.
func (s *Sequence) Index(month string) int {
	i, ok := s.index[month]
	if !ok {
		return -1
	}
	return i
}

// IsStart reports whether month is the starting month of the scheme.
func (s *Sequence) IsStart(month string) bool {
	return len(s.months) > 0 && s.months[0] == month
}

// Next returns the month following month. ok is false when month is unknown
// or is the last element of the sequence.
func (s *Sequence) Next(month string) (next string, ok bool) {
	i, found := s.index[month]
	if !found || i+1 >= len(s.months) {
		return "", false
	}
	return s.months[i+1], true
}

// Before returns the months strictly earlier than month, in scheme order.
func (s *Sequence) Before(month string) []string {
	i, ok := s.index[month]
	if !ok {
		return nil
	}
	out := make([]string, i)
	copy(out, s.months[:i])
	return out
}
