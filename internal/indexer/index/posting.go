package index

// PostingList is the ordered list of study titles recorded for one term.
// Titles appear in the order their studies were added; a title repeats when
// several studies share it.
type PostingList []string

// Stats summarises the size of an Index.
type Stats struct {
	Studies  int `json:"studies"`
	Terms    int `json:"terms"`
	Postings int `json:"postings"`
}
