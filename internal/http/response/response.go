package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/open-agent-labs/skills-catalog/internal/logger"
	"github.com/open-agent-labs/skills-catalog/internal/pkg/apperror"
)

// Envelope - единый формат ответа API. Исход различается полем code, HTTP статус 200.
type Envelope struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Code:    apperror.CodeSuccess,
		Data:    data,
		Message: "success",
	})
}

// Error пишет ошибку в конверт. Внутренние ошибки логируются с контекстом запроса,
// клиент получает только общее сообщение.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)

	var known *apperror.AppError
	if !errors.As(err, &known) || appErr.EnvelopeCode() == apperror.CodeInternal {
		logRequestError(c, err)
	}

	c.JSON(http.StatusOK, Envelope{
		Code:    appErr.EnvelopeCode(),
		Data:    nil,
		Message: appErr.Message,
	})
}

// Abort пишет ошибку и прерывает цепочку обработчиков.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.ErrCodeBadRequest, message))
}

func NotFound(c *gin.Context, message string) {
	Error(c, apperror.New(apperror.ErrCodeNotFound, message))
}

func Unauthorized(c *gin.Context) {
	Abort(c, apperror.ErrUnauthorized)
}

// TooManyRequests - единственный ответ с HTTP статусом, отличным от 200.
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Envelope{
		Code:    apperror.CodeRateLimited,
		Data:    nil,
		Message: "too many requests, try again later",
	})
}

func logRequestError(c *gin.Context, err error) {
	fields := logrus.Fields{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
		"query":  c.Request.URL.RawQuery,
	}
	for _, p := range c.Params {
		fields["param_"+p.Key] = p.Value
	}
	logger.Log.WithFields(fields).WithError(err).Error("Request error")
}
