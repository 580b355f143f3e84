package season

// Season groups matches and standings of one competition period.
type Season struct {
	ID   int64
	Year string
}
