package cohesion

import (
	"fmt"

	"github.com/kailas-cloud/cohesion/internal/domain/classification"
)

// ClassifyBreaks bins data by explicit ascending interior breaks. The bins
// span [min(data), max(data)]; every break must lie inside that range.
func ClassifyBreaks(breaks, data []float64) (Classification, error) {
	c, err := classification.BreaksToClassification(breaks, data)
	if err != nil {
		return nil, fmt.Errorf("cohesion: %w", err)
	}
	return classificationFromDomain(c), nil
}
