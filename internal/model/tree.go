package model

import (
	"errors"
	"fmt"

	"github.com/godilite/airsat-server/internal/features"
)

// TreeNode is one node of a fitted tree, stored in a flat array. Leaves have
// LeftChild == RightChild == -1. Value holds the training sample count per
// class at the node.
type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	Value      []float64 `json:"value"`
}

func (n TreeNode) isLeaf() bool {
	return n.LeftChild < 0 && n.RightChild < 0
}

// Tree is a fitted decision tree classifier.
type Tree struct {
	schema
	nodes []TreeNode
}

func (t *Tree) Predict(row features.FeatureVector) (int, error) {
	proba, err := t.PredictProba(row)
	if err != nil {
		return 0, err
	}
	return t.classFor(proba), nil
}

func (t *Tree) PredictProba(row features.FeatureVector) ([]float64, error) {
	x, err := t.align(row)
	if err != nil {
		return nil, err
	}
	leaf, err := walk(t.nodes, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.name, err)
	}
	return normalize(leaf.Value), nil
}

// walk descends from the root, going left when the feature is <= threshold.
func walk(nodes []TreeNode, x []float64) (TreeNode, error) {
	if len(nodes) == 0 {
		return TreeNode{}, errors.New("empty tree")
	}
	idx := 0
	for steps := 0; steps <= len(nodes); steps++ {
		node := nodes[idx]
		if node.isLeaf() {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(x) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if x[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
	return TreeNode{}, errors.New("tree contains a cycle")
}

func normalize(counts []float64) []float64 {
	out := make([]float64, len(counts))
	var total float64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}

func validateNodes(nodes []TreeNode, featureCount, classCount int) error {
	if len(nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, n := range nodes {
		if n.isLeaf() {
			if len(n.Value) != classCount {
				return fmt.Errorf("leaf %d: expected %d class counts, got %d", i, classCount, len(n.Value))
			}
			continue
		}
		if n.FeatureIdx < 0 || n.FeatureIdx >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.FeatureIdx)
		}
		if n.LeftChild <= i || n.LeftChild >= len(nodes) || n.RightChild <= i || n.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return nil
}
