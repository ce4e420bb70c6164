package domain

// WordItemsKey is the storage slot holding the serialized word list
const WordItemsKey = "word-items"

// Usage is an example expression for a word
type Usage struct {
	Expression string `json:"expression"`
	Meaning    string `json:"meaning"`
}

// WordRecord represents one vocabulary entry with its memorization state
type WordRecord struct {
	ID                  string  `json:"id"`
	Word                string  `json:"word"`
	Meaning             string  `json:"meaning"`
	Usages              []Usage `json:"usages,omitempty"`
	IsMarkedAsMemorized bool    `json:"isMarkedAsMemorized"`
}

// Clone returns a copy that shares no memory with r
func (r WordRecord) Clone() WordRecord {
	if r.Usages != nil {
		r.Usages = append([]Usage(nil), r.Usages...)
	}
	return r
}

// WordPatch holds a partial update; nil fields are left untouched
type WordPatch struct {
	Word                *string  `json:"word,omitempty"`
	Meaning             *string  `json:"meaning,omitempty"`
	Usages              *[]Usage `json:"usages,omitempty"`
	IsMarkedAsMemorized *bool    `json:"isMarkedAsMemorized,omitempty"`
}

// Apply merges the patch over r and returns the result
func (p WordPatch) Apply(r WordRecord) WordRecord {
	out := r.Clone()
	if p.Word != nil {
		out.Word = *p.Word
	}
	if p.Meaning != nil {
		out.Meaning = *p.Meaning
	}
	if p.Usages != nil {
		out.Usages = NormalizeUsages(*p.Usages)
	}
	if p.IsMarkedAsMemorized != nil {
		out.IsMarkedAsMemorized = *p.IsMarkedAsMemorized
	}
	return out
}

// NormalizeUsages copies usages, mapping an empty list to nil so that
// records survive a storage round trip unchanged
func NormalizeUsages(usages []Usage) []Usage {
	if len(usages) == 0 {
		return nil
	}
	return append([]Usage(nil), usages...)
}

// ListView is the active/completed split shown to users
type ListView struct {
	Active    []WordRecord `json:"active"`
	Completed []WordRecord `json:"completed"`
}

// Stats counts words per grouping
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}
