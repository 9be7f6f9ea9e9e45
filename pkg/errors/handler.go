package errors

import (
	"net/http"

	"wishbloom-backend/pkg/common"

	"go.uber.org/zap"
)

// Handler maps errors onto HTTP responses. Validation and moderation
// failures pass their structured detail through; everything else is logged
// and, in production, collapsed to a generic message so internal error text
// never reaches end users.
type Handler struct {
	logger *zap.Logger
	debug  bool
}

// NewHandler creates an error handler. debug should be true outside
// production; it exposes raw error text in responses.
func NewHandler(logger *zap.Logger, debug bool) *Handler {
	return &Handler{logger: logger, debug: debug}
}

// Handle writes the response for err and logs it.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	appErr := GetAppError(err)
	if appErr == nil {
		h.logger.Error("unhandled error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		message := "an internal error occurred"
		if h.debug {
			message = err.Error()
		}
		common.RespondError(w, http.StatusInternalServerError, string(ErrorTypeInternal), message)
		return
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	h.log(r, appErr, status)

	message := appErr.Message
	if status >= 500 && !h.debug {
		// 5xx messages may carry infrastructure detail; keep the taxonomy
		// visible but swap the text for a generic one.
		message = "an internal error occurred"
	}

	code := appErr.Code
	if code == "" {
		code = string(appErr.Type)
	}
	common.RespondErrorWithDetails(w, status, code, message, appErr.Details)
}

func (h *Handler) log(r *http.Request, appErr *AppError, status int) {
	fields := []zap.Field{
		zap.String("type", string(appErr.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.NamedError("cause", appErr.Cause))
	}

	switch {
	case status >= 500:
		h.logger.Error(appErr.Message, fields...)
	case status == http.StatusTooManyRequests:
		h.logger.Warn(appErr.Message, fields...)
	default:
		// Client errors are expected traffic.
		h.logger.Debug(appErr.Message, fields...)
	}
}
