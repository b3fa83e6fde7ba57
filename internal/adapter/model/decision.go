package model

import (
	"errors"
	"fmt"
	"math"
)

// decisionFunction maps a scaled vector to the probability of class 1
type decisionFunction interface {
	probability(x []float64) (float64, error)
}

type logisticRegression struct {
	coefficients []float64
	intercept    float64
}

func (m *logisticRegression) probability(x []float64) (float64, error) {
	if len(x) != len(m.coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.coefficients), len(x))
	}
	z := m.intercept
	for i, v := range x {
		z += m.coefficients[i] * v
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	// Split on sign so exp never overflows
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// Tree is a binary decision tree stored as parallel node arrays, the same
// layout scikit-learn uses. A node with Left == -1 is a leaf.
type Tree struct {
	Feature   []int        `json:"feature"`
	Threshold []float64    `json:"threshold"`
	Left      []int        `json:"children_left"`
	Right     []int        `json:"children_right"`
	Value     [][2]float64 `json:"value"`
}

const leafNode = -1

func (t *Tree) validate(nFeatures int) error {
	n := len(t.Left)
	if n == 0 {
		return errors.New("no nodes")
	}
	if len(t.Right) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if t.Left[i] == leafNode {
			if t.Value[i][0]+t.Value[i][1] <= 0 {
				return fmt.Errorf("leaf %d has no class weight", i)
			}
			continue
		}
		// Children must point forward so traversal always terminates
		if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
			return fmt.Errorf("node %d has invalid children", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on unknown feature %d", i, t.Feature[i])
		}
	}
	return nil
}

func (t *Tree) leafProbability(x []float64) float64 {
	node := 0
	for t.Left[node] != leafNode {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	v := t.Value[node]
	return v[1] / (v[0] + v[1])
}

type randomForest struct {
	trees     []Tree
	nFeatures int
}

func (m *randomForest) probability(x []float64) (float64, error) {
	if m.nFeatures > 0 && len(x) != m.nFeatures {
		return 0, fmt.Errorf("expected %d features, got %d", m.nFeatures, len(x))
	}
	var sum float64
	for i := range m.trees {
		sum += m.trees[i].leafProbability(x)
	}
	return sum / float64(len(m.trees)), nil
}
