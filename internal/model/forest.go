package model

import (
	"fmt"

	"github.com/godilite/airsat-server/internal/features"
)

// Forest averages the class probabilities of its trees.
type Forest struct {
	schema
	trees [][]TreeNode
}

func (f *Forest) Predict(row features.FeatureVector) (int, error) {
	proba, err := f.PredictProba(row)
	if err != nil {
		return 0, err
	}
	return f.classFor(proba), nil
}

func (f *Forest) PredictProba(row features.FeatureVector) ([]float64, error) {
	x, err := f.align(row)
	if err != nil {
		return nil, err
	}
	sum := make([]float64, len(f.classes))
	for i, nodes := range f.trees {
		leaf, err := walk(nodes, x)
		if err != nil {
			return nil, fmt.Errorf("%s: tree %d: %w", f.name, i, err)
		}
		for c, p := range normalize(leaf.Value) {
			sum[c] += p
		}
	}
	for c := range sum {
		sum[c] /= float64(len(f.trees))
	}
	return sum, nil
}
