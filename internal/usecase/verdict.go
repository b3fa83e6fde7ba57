package usecase

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
)

// Delimiters the model is asked to answer with
const (
	PredictionMarker  = "Prediction:"
	ExplanationMarker = "Explanation:"

	UnknownVerdict       = "Unknown"
	NoExplanationMessage = "No explanation provided."
)

const promptPreamble = "You are an AI fraud detection assistant. Based on the following transaction data, " +
	"predict whether it is Fraudulent or Legitimate. Also provide a short explanation for your prediction."

const promptFormat = "Respond in the format:\nPrediction: <Fraud or Legitimate>\nExplanation: <your reasoning>"

// BuildPrompt renders features into the instruction sent to the language
// model. Known fields come first in schema order, then any extra keys sorted
// by name, so identical input always yields an identical prompt.
func BuildPrompt(features entity.TransactionFeatures) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nTransaction Data:\n")

	known := make(map[string]struct{}, len(entity.TransactionSchema))
	for _, field := range entity.TransactionSchema {
		known[field.Name] = struct{}{}
		if v, ok := features[field.Name]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", field.Name, formatValue(v))
		}
	}

	extra := make([]string, 0, len(features))
	for k := range features {
		if _, ok := known[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		fmt.Fprintf(&b, "- %s: %s\n", k, formatValue(features[k]))
	}

	b.WriteString("\n")
	b.WriteString(promptFormat)
	return b.String()
}

func formatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case json.Number:
		return n.String()
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	default:
		if data, err := json.Marshal(n); err == nil {
			return string(data)
		}
		return fmt.Sprint(n)
	}
}

// ParseVerdict extracts a verdict and explanation from free text.
//
// Everything after the first "Prediction:" is split once on "Explanation:";
// both halves are trimmed. Without "Explanation:" the explanation falls back
// to NoExplanationMessage. Without "Prediction:" the verdict is
// UnknownVerdict and the whole trimmed text is the explanation.
func ParseVerdict(text string) entity.Verdict {
	_, rest, found := strings.Cut(text, PredictionMarker)
	if !found {
		return entity.Verdict{Label: UnknownVerdict, Explanation: strings.TrimSpace(text)}
	}

	label, explanation, found := strings.Cut(rest, ExplanationMarker)
	if !found {
		return entity.Verdict{Label: strings.TrimSpace(label), Explanation: NoExplanationMessage}
	}

	return entity.Verdict{
		Label:       strings.TrimSpace(label),
		Explanation: strings.TrimSpace(explanation),
	}
}
