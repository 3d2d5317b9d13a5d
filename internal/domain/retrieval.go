package domain

// RetrievalHit is one ranked result from the vector search collaborator.
// Distance is the collaborator's native similarity distance (lower = more
// similar); HasDistance is false when the engine returned no distance for the
// hit, in which case the hit must not pass threshold filtering.
type RetrievalHit struct {
	Text        string
	Source      string
	Distance    float64
	HasDistance bool
}
