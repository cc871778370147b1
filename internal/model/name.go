package model

import "fmt"

// Name identifies one of the registered classifiers.
type Name string

const (
	LogisticRegression Name = "logistic_regression"
	RandomForest       Name = "random_forest"
	DecisionTree       Name = "decision_tree"
)

// Names lists every registered model in display order.
func Names() []Name {
	return []Name{LogisticRegression, RandomForest, DecisionTree}
}

// ParseName validates s against the registered set.
func ParseName(s string) (Name, error) {
	for _, n := range Names() {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

func (n Name) String() string { return string(n) }
