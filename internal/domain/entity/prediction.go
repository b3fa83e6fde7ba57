package entity

// Class labels
const (
	LabelFraud      = "Fraud"
	LabelLegitimate = "Legitimate"
)

// Prediction is the output of a binary classifier
type Prediction struct {
	Class       int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// Label returns the human-readable class name
func (p Prediction) Label() string {
	if p.Class == 1 {
		return LabelFraud
	}
	return LabelLegitimate
}

// IsFraud returns true if the classifier flagged the transaction
func (p Prediction) IsFraud() bool {
	return p.Class == 1
}

// Verdict is a parsed answer from the text-generation service
type Verdict struct {
	Label       string `json:"prediction"`
	Explanation string `json:"explanation"`
}
