package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
	"github.com/ressKim-io/fraudlens/internal/domain/service"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/logger"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/metrics"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/tracing"
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DefaultAITimeout bounds a text-generation call when none is configured
const DefaultAITimeout = 60 * time.Second

// PredictOutput is the result of scoring a transaction with the classifier
type PredictOutput struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
	Status      string  `json:"status"`
}

// AIPredictOutput is the result of asking the language model for a verdict
type AIPredictOutput struct {
	Prediction  string `json:"prediction"`
	Explanation string `json:"explanation"`
	Status      string `json:"status"`
}

// ModelStatus describes what backs each prediction path
type ModelStatus struct {
	ModelLoaded    bool   `json:"model_loaded"`
	ModelAvailable bool   `json:"model_available"`
	ModelError     string `json:"model_error,omitempty"`
	ModelVersion   string `json:"model_version,omitempty"`
	AIConfigured   bool   `json:"ai_configured"`
	FeatureCount   int    `json:"feature_count,omitempty"`
}

// PredictionUsecase defines the interface for fraud scoring
type PredictionUsecase interface {
	// Predict scores a transaction with the loaded classifier
	Predict(ctx context.Context, input entity.TransactionFeatures) (*PredictOutput, error)

	// Analyze asks the language model for a verdict on a transaction
	Analyze(ctx context.Context, input entity.TransactionFeatures) (*AIPredictOutput, error)

	// Status reports which prediction paths are available. Classifiers that
	// can become unreachable are probed.
	Status(ctx context.Context) ModelStatus
}

type predictionUsecase struct {
	classifier service.Classifier
	generator  service.TextGenerator
	aiTimeout  time.Duration
	logger     *zap.Logger
}

// Option configures the prediction usecase
type Option func(*predictionUsecase)

// WithAITimeout overrides DefaultAITimeout
func WithAITimeout(d time.Duration) Option {
	return func(u *predictionUsecase) {
		if d > 0 {
			u.aiTimeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(u *predictionUsecase) { u.logger = l }
}

// NewPredictionUsecase creates a new prediction usecase. Either dependency may
// be nil, in which case the matching path reports an error per request.
func NewPredictionUsecase(classifier service.Classifier, generator service.TextGenerator, opts ...Option) PredictionUsecase {
	u := &predictionUsecase{
		classifier: classifier,
		generator:  generator,
		aiTimeout:  DefaultAITimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// prepare checks required fields and fills optional defaults
func prepare(input entity.TransactionFeatures) (entity.TransactionFeatures, error) {
	if missing := input.MissingRequired(); len(missing) > 0 {
		return nil, NewMissingFieldsError(missing)
	}
	return input.WithDefaults(), nil
}

func (u *predictionUsecase) Predict(ctx context.Context, input entity.TransactionFeatures) (*PredictOutput, error) {
	out, err := u.predict(ctx, input)
	if err != nil {
		metrics.RecordPredictionError(metrics.SourceModel, ErrorKind(err))
		return nil, err
	}
	metrics.RecordPrediction(metrics.SourceModel, out.Label)
	metrics.FraudProbability.Observe(out.Probability)
	return out, nil
}

func (u *predictionUsecase) predict(ctx context.Context, input entity.TransactionFeatures) (*PredictOutput, error) {
	features, err := prepare(input)
	if err != nil {
		return nil, err
	}

	if u.classifier == nil {
		return nil, &ModelError{Message: "Model not loaded"}
	}

	ctx, span := tracing.StartSpan(ctx, "prediction.classify",
		tracing.PredictionSource(metrics.SourceModel),
		tracing.ModelVersion(u.classifier.Version()),
	)
	defer span.End()

	vector, err := service.Normalize(features, u.classifier.FeatureNames(), u.classifier.Scaler())
	if err != nil {
		var fieldErr *service.InvalidFieldError
		if errors.As(err, &fieldErr) {
			return nil, &ValidationError{Message: fieldErr.Error(), Err: err}
		}
		tracing.Fail(span, err)
		u.logger.Error("Failed to normalize features", zap.Error(err))
		return nil, newModelError(err)
	}

	prediction, err := u.classifier.Predict(ctx, vector)
	if err != nil {
		tracing.Fail(span, err)
		u.logger.Error("Classifier failed",
			zap.String("model_version", u.classifier.Version()),
			zap.Error(err),
		)
		if errors.Is(err, service.ErrMalformedResponse) {
			return nil, &SerializationError{Message: "Prediction could not be serialized: " + err.Error(), Err: err}
		}
		return nil, newModelError(err)
	}

	// encoding/json cannot represent NaN or Inf
	if math.IsNaN(prediction.Probability) || math.IsInf(prediction.Probability, 0) {
		err := &SerializationError{Message: "Prediction could not be serialized: probability is not finite"}
		tracing.Fail(span, err)
		return nil, err
	}

	span.SetAttributes(
		tracing.FraudProbability(prediction.Probability),
		tracing.VerdictLabel(prediction.Label()),
	)

	if prediction.IsFraud() {
		u.logger.Info("Transaction flagged as fraud",
			zap.String("request_id", logger.RequestIDFrom(ctx)),
			zap.Float64("probability", prediction.Probability),
		)
	}

	return &PredictOutput{
		Prediction:  prediction.Class,
		Probability: prediction.Probability,
		Label:       prediction.Label(),
		Status:      StatusSuccess,
	}, nil
}

func (u *predictionUsecase) Analyze(ctx context.Context, input entity.TransactionFeatures) (*AIPredictOutput, error) {
	out, err := u.analyze(ctx, input)
	if err != nil {
		metrics.RecordPredictionError(metrics.SourceAI, ErrorKind(err))
		return nil, err
	}
	metrics.RecordPrediction(metrics.SourceAI, verdictMetricLabel(out.Prediction))
	return out, nil
}

// verdictMetricLabel folds free-text verdicts into a small label set
func verdictMetricLabel(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.HasPrefix(l, "fraud"):
		return entity.LabelFraud
	case strings.HasPrefix(l, "legit"):
		return entity.LabelLegitimate
	case label == UnknownVerdict:
		return UnknownVerdict
	default:
		return "other"
	}
}

func (u *predictionUsecase) analyze(ctx context.Context, input entity.TransactionFeatures) (*AIPredictOutput, error) {
	features, err := prepare(input)
	if err != nil {
		return nil, err
	}

	if u.generator == nil {
		return nil, &ExternalServiceError{Message: "AI service not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, u.aiTimeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, "prediction.ai_analyze", tracing.PredictionSource(metrics.SourceAI))
	defer span.End()

	start := time.Now()
	text, err := collect(ctx, u.generator, BuildPrompt(features))
	metrics.AIRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		tracing.Fail(span, err)
		u.logger.Error("AI service call failed", zap.Error(err))
		return nil, newExternalServiceError(err)
	}

	verdict := ParseVerdict(text)
	span.SetAttributes(tracing.VerdictLabel(verdict.Label))

	if verdict.Label == UnknownVerdict {
		u.logger.Warn("AI response did not follow the expected format",
			zap.Int("response_length", len(text)),
		)
	}

	return &AIPredictOutput{
		Prediction:  verdict.Label,
		Explanation: verdict.Explanation,
		Status:      StatusSuccess,
	}, nil
}

// collect drains the stream into one string. Partial text is discarded on error.
func collect(ctx context.Context, generator service.TextGenerator, prompt string) (string, error) {
	var b strings.Builder
	for chunk, err := range generator.GenerateStream(ctx, prompt) {
		if err != nil {
			return "", err
		}
		b.WriteString(chunk)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (u *predictionUsecase) Status(ctx context.Context) ModelStatus {
	status := ModelStatus{AIConfigured: u.generator != nil}
	if u.classifier == nil {
		return status
	}

	status.ModelLoaded = true
	status.ModelAvailable = true
	status.ModelVersion = u.classifier.Version()
	status.FeatureCount = len(u.classifier.FeatureNames())

	if checker, ok := u.classifier.(service.ReadinessChecker); ok {
		if err := checker.Ready(ctx); err != nil {
			u.logger.Warn("Classifier backend not ready", zap.Error(err))
			status.ModelAvailable = false
			status.ModelError = err.Error()
		}
	}
	return status
}
