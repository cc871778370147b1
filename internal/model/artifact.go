package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is the on-disk JSON form of a fitted classifier. Which fields are
// used depends on Kind.
type Artifact struct {
	Kind         Name         `json:"kind"`
	FeatureNames []string     `json:"feature_names"`
	Classes      []int        `json:"classes"`
	Coefficients []float64    `json:"coefficients,omitempty"`
	Intercept    float64      `json:"intercept,omitempty"`
	Nodes        []TreeNode   `json:"nodes,omitempty"`
	Trees        [][]TreeNode `json:"trees,omitempty"`
}

// ArtifactPath is where LoadRegistry looks for a model inside dir.
func ArtifactPath(dir string, name Name) string {
	return filepath.Join(dir, string(name)+".json")
}

func readArtifact(path string) (Artifact, []byte, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, nil, err
	}
	var a Artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return Artifact{}, nil, fmt.Errorf("decode artifact: %w", err)
	}
	return a, payload, nil
}

// Build turns an artifact into the classifier registered under name.
func Build(name Name, a Artifact) (Classifier, error) {
	if a.Kind != name {
		return nil, fmt.Errorf("artifact kind %q does not match model %q", a.Kind, name)
	}
	s := schema{name: name, featureNames: a.FeatureNames, classes: a.Classes}

	switch name {
	case LogisticRegression:
		if err := s.validate(len(a.Coefficients)); err != nil {
			return nil, err
		}
		return &Logistic{schema: s, coefficients: a.Coefficients, intercept: a.Intercept}, nil

	case DecisionTree:
		if err := s.validate(-1); err != nil {
			return nil, err
		}
		if err := validateNodes(a.Nodes, len(a.FeatureNames), len(a.Classes)); err != nil {
			return nil, err
		}
		return &Tree{schema: s, nodes: a.Nodes}, nil

	case RandomForest:
		if err := s.validate(-1); err != nil {
			return nil, err
		}
		if len(a.Trees) == 0 {
			return nil, errors.New("forest has no trees")
		}
		for i, nodes := range a.Trees {
			if err := validateNodes(nodes, len(a.FeatureNames), len(a.Classes)); err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
		}
		return &Forest{schema: s, trees: a.Trees}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}
