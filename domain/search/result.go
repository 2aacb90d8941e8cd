package search

// SimilarityFromDistance converts a cosine distance (range [0, 2]) into a
// bounded similarity score in [0, 1]. The raw distance stays authoritative
// for ranking; the score is a display convenience.
func SimilarityFromDistance(distance float64) float64 {
	s := 1.0 - distance/2.0
	if s < 0 {
		return 0
	}
	return s
}

// Result is one ranked candidate from a similarity query.
type Result struct {
	kind       EntityKind
	id         string
	title      string
	status     string
	customerID string
	distance   float64
	similarity float64
}

// NewResult creates a result, deriving the similarity score from the raw
// distance.
func NewResult(kind EntityKind, id, title, status, customerID string, distance float64) Result {
	return Result{
		kind:       kind,
		id:         id,
		title:      title,
		status:     status,
		customerID: customerID,
		distance:   distance,
		similarity: SimilarityFromDistance(distance),
	}
}

// Kind returns the entity kind of the candidate.
func (r Result) Kind() EntityKind { return r.kind }

// ID returns the candidate entity identifier.
func (r Result) ID() string { return r.id }

// Title returns the candidate title.
func (r Result) Title() string { return r.title }

// Status returns the candidate's lifecycle status.
func (r Result) Status() string { return r.status }

// CustomerID returns the candidate's owning customer.
func (r Result) CustomerID() string { return r.customerID }

// Distance returns the raw vector distance (smaller is more similar).
func (r Result) Distance() float64 { return r.distance }

// Similarity returns the bounded similarity score in [0, 1].
func (r Result) Similarity() float64 { return r.similarity }
