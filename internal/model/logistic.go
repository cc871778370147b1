package model

import (
	"math"

	"github.com/godilite/airsat-server/internal/features"
)

// Logistic is a fitted binary logistic regression.
type Logistic struct {
	schema
	coefficients []float64
	intercept    float64
}

func (m *Logistic) decision(x []float64) float64 {
	z := m.intercept
	for i, w := range m.coefficients {
		z += w * x[i]
	}
	return z
}

// Predict returns the positive class when the decision function is above zero.
func (m *Logistic) Predict(row features.FeatureVector) (int, error) {
	x, err := m.align(row)
	if err != nil {
		return 0, err
	}
	if m.decision(x) > 0 {
		return m.classes[1], nil
	}
	return m.classes[0], nil
}

func (m *Logistic) PredictProba(row features.FeatureVector) ([]float64, error) {
	x, err := m.align(row)
	if err != nil {
		return nil, err
	}
	p := sigmoid(m.decision(x))
	return []float64{1 - p, p}, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
