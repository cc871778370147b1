package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/godilite/airsat-server/internal/features"
)

const (
	LabelSatisfied    = "Satisfied"
	LabelNotSatisfied = "Not Satisfied"
)

// Result is the outcome of applying one classifier to one feature row.
type Result struct {
	Model         Name
	Class         int
	Label         string
	Probabilities []float64
}

// LabelFor maps a raw class to the display label.
func LabelFor(class int) string {
	if class == 1 {
		return LabelSatisfied
	}
	return LabelNotSatisfied
}

// Registry holds one classifier per registered Name. It is built once and
// never mutated, so it is safe for concurrent use.
type Registry struct {
	classifiers map[Name]Classifier
	fingerprint string
}

// NewRegistry builds a registry from already constructed classifiers. Every
// registered Name must be present.
func NewRegistry(classifiers map[Name]Classifier, fingerprint string) (*Registry, error) {
	m := make(map[Name]Classifier, len(classifiers))
	for _, name := range Names() {
		c, ok := classifiers[name]
		if !ok || c == nil {
			return nil, &MissingArtifactError{Model: name, Err: fmt.Errorf("no classifier registered")}
		}
		m[name] = c
	}
	return &Registry{classifiers: m, fingerprint: fingerprint}, nil
}

// LoadRegistry reads every registered model's artifact from dir.
func LoadRegistry(dir string) (*Registry, error) {
	classifiers := make(map[Name]Classifier, len(Names()))
	h := sha256.New()

	for _, name := range Names() {
		path := ArtifactPath(dir, name)
		a, payload, err := readArtifact(path)
		if err != nil {
			return nil, &MissingArtifactError{Model: name, Path: path, Err: err}
		}
		c, err := Build(name, a)
		if err != nil {
			return nil, &MissingArtifactError{Model: name, Path: path, Err: err}
		}
		classifiers[name] = c
		h.Write([]byte(name))
		h.Write(payload)
	}

	return NewRegistry(classifiers, hex.EncodeToString(h.Sum(nil))[:16])
}

// Fingerprint identifies the loaded artifact set.
func (r *Registry) Fingerprint() string { return r.fingerprint }

func (r *Registry) Names() []Name { return Names() }

// Classifier returns the classifier registered under name.
func (r *Registry) Classifier(name Name) (Classifier, error) {
	c, ok := r.classifiers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return c, nil
}

// Predict applies the named classifier to row. Classifier errors, including
// schema mismatches, are returned unchanged.
func (r *Registry) Predict(name Name, row features.FeatureVector) (Result, error) {
	c, err := r.Classifier(name)
	if err != nil {
		return Result{}, err
	}
	class, err := c.Predict(row)
	if err != nil {
		return Result{}, err
	}
	proba, err := c.PredictProba(row)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Model:         name,
		Class:         class,
		Label:         LabelFor(class),
		Probabilities: proba,
	}, nil
}
