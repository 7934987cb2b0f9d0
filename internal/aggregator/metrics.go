package aggregator

import (
	"math/rand"

	"github.com/jonmartinstorm/repokontekst/internal/models"
)

// MetricsProvider er sømmen for de "myke" tallene. Dagens
// implementasjon er et plassholdertall – en ekte statisk analyse kan
// byttes inn her uten at resten av pipelinen endres.
type MetricsProvider interface {
	ComplexityScore(raw models.RawRepoData) int
}

// RandomMetrics gir et tilfeldig tall i 40–100, som kildeoppførselen.
// Ikke bruk i tester.
type RandomMetrics struct{}

func (RandomMetrics) ComplexityScore(models.RawRepoData) int {
	return 40 + rand.Intn(61)
}

// FixedMetrics gir samme tall hver gang, for deterministiske tester.
type FixedMetrics struct {
	Score int
}

func (f FixedMetrics) ComplexityScore(models.RawRepoData) int {
	return f.Score
}
