package model

import (
	"errors"
	"slices"

	"github.com/godilite/airsat-server/internal/features"
)

// Classifier is a pre-trained binary classifier over a single feature row.
type Classifier interface {
	FeatureNames() []string
	Classes() []int
	Predict(row features.FeatureVector) (int, error)
	PredictProba(row features.FeatureVector) ([]float64, error)
}

// schema is embedded by every classifier variant and owns the column check.
type schema struct {
	name         Name
	featureNames []string
	classes      []int
}

func (s *schema) FeatureNames() []string { return slices.Clone(s.featureNames) }

func (s *schema) Classes() []int { return slices.Clone(s.classes) }

// align returns the row values if the row matches the trained column set.
func (s *schema) align(row features.FeatureVector) ([]float64, error) {
	names := row.Names()
	if !slices.Equal(names, s.featureNames) {
		return nil, &SchemaMismatchError{
			Model:    s.name,
			Expected: slices.Clone(s.featureNames),
			Got:      names,
		}
	}
	return row.Values(), nil
}

func (s *schema) validate(weightsLen int) error {
	if len(s.featureNames) == 0 {
		return errors.New("no feature names")
	}
	if len(s.classes) != 2 {
		return errors.New("expected exactly two classes")
	}
	if weightsLen >= 0 && weightsLen != len(s.featureNames) {
		return errors.New("coefficient count does not match feature names")
	}
	return nil
}

// classFor picks the class with the highest probability; ties go to the
// earlier class.
func (s *schema) classFor(proba []float64) int {
	best := 0
	for i := 1; i < len(proba); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}
	return s.classes[best]
}
