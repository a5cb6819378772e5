package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"timelock-node/internal/codec"
	"timelock-node/internal/config"
	"timelock-node/internal/dto"
	"timelock-node/internal/logger"
	"timelock-node/internal/message"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// Error codes returned in the "code" field of failed decodes.
const (
	CodeBadTuple           = "bad_tuple"
	CodeMalformedHex       = "malformed_hex"
	CodeOverflow           = "overflow"
	CodePrecisionLoss      = "precision_loss"
	CodeInvariantViolation = "invariant_violation"
	CodeTupleShape         = "tuple_shape"
)

// ErrorResponse is the body of a failed decode.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// BatchItem is one entry of a batch decode response.
type BatchItem struct {
	Index   int                  `json:"index"`
	Message *dto.MessageResponse `json:"message,omitempty"`
	Error   *ErrorResponse       `json:"error,omitempty"`
}

// MessageHandler serves the message decoding endpoints.
type MessageHandler struct {
	cfg config.DecoderConfig
}

// NewMessageHandler creates a handler bound to the decoder limits.
func NewMessageHandler(cfg config.DecoderConfig) *MessageHandler {
	return &MessageHandler{cfg: cfg}
}

// ErrorCode classifies a decode failure.
func ErrorCode(err error) string {
	var (
		hexErr       *codec.MalformedHexError
		overflowErr  *codec.OverflowError
		precisionErr *codec.PrecisionLossError
		invariantErr *message.InvariantViolationError
		shapeErr     *message.TupleShapeError
	)
	switch {
	case errors.As(err, &hexErr):
		return CodeMalformedHex
	case errors.As(err, &overflowErr):
		return CodeOverflow
	case errors.As(err, &precisionErr):
		return CodePrecisionLoss
	case errors.As(err, &invariantErr):
		return CodeInvariantViolation
	case errors.As(err, &shapeErr):
		return CodeTupleShape
	default:
		return CodeBadTuple
	}
}

func (h *MessageHandler) decode(raw []byte) (*dto.MessageResponse, *ErrorResponse) {
	data, err := dto.ParseDataArray(raw)
	if err != nil {
		return nil, &ErrorResponse{Code: CodeBadTuple, Error: err.Error()}
	}
	m, err := message.Decode(data)
	if err != nil {
		return nil, &ErrorResponse{Code: ErrorCode(err), Error: err.Error()}
	}
	resp := dto.NewMessageResponse(m, h.cfg.Describe())
	return &resp, nil
}

// Decode handles POST /messages/decode with a single tuple as the body.
func (h *MessageHandler) Decode(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeBadTuple, Error: err.Error()})
		return
	}

	resp, failure := h.decode(raw)
	if failure != nil {
		status := http.StatusUnprocessableEntity
		if failure.Code == CodeBadTuple {
			status = http.StatusBadRequest
		}
		logger.Log.WithFields(logrus.Fields{
			RequestIDKey: c.GetString(RequestIDKey),
			"code":       failure.Code,
		}).Warnf("Message decode failed: %s", failure.Error)
		c.JSON(status, failure)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DecodeBatch handles POST /messages/decode/batch with an array of tuples.
// Each tuple succeeds or fails on its own.
func (h *MessageHandler) DecodeBatch(c *gin.Context) {
	var tuples []json.RawMessage
	if err := c.ShouldBindJSON(&tuples); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeBadTuple, Error: err.Error()})
		return
	}
	if len(tuples) > h.cfg.MaxBatchSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:  CodeBadTuple,
			Error: "batch exceeds max_batch_size",
		})
		return
	}

	items := make([]BatchItem, len(tuples))
	failed := 0
	for i, raw := range tuples {
		resp, failure := h.decode(raw)
		items[i] = BatchItem{Index: i, Message: resp, Error: failure}
		if failure != nil {
			failed++
			logger.Log.WithFields(logrus.Fields{
				RequestIDKey: c.GetString(RequestIDKey),
				"index":      i,
				"code":       failure.Code,
			}).Warnf("Skipping undecodable message: %s", failure.Error)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    items,
		"successful": len(tuples) - failed,
		"failed":     failed,
	})
}
