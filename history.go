package scicalc

// Entry is one evaluated input and its result.
type Entry struct {
	Input  string
	Result Number
}

func (e Entry) String() string {
	return e.Input + " = " + e.Result.String()
}

// History is an append-only list of evaluations. It can only be cleared as a
// whole. The zero value is an empty history.
type History struct {
	entries []Entry
}

// Append adds an entry to the end of the history.
func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the i'th entry, oldest first.
func (h *History) At(i int) (Entry, bool) {
	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = nil
}
