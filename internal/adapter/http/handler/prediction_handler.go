package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/fraudlens/internal/usecase"
)

// PredictionHandler handles fraud scoring requests
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
	maxBodyBytes int64
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionUC usecase.PredictionUsecase, maxBodyBytes int64) *PredictionHandler {
	return &PredictionHandler{
		predictionUC: predictionUC,
		maxBodyBytes: maxBodyBytes,
	}
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	features, ok := bindTransaction(c, h.maxBodyBytes)
	if !ok {
		return
	}

	output, err := h.predictionUC.Predict(c.Request.Context(), features)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// AIPrediction handles POST /ai-prediction
func (h *PredictionHandler) AIPrediction(c *gin.Context) {
	features, ok := bindTransaction(c, h.maxBodyBytes)
	if !ok {
		return
	}

	output, err := h.predictionUC.Analyze(c.Request.Context(), features)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
