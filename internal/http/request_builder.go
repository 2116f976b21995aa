package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/domain/dto"
	"github.com/guttosm/package-form/internal/i18n"
	"github.com/guttosm/package-form/internal/middleware"
)

var successResponsePool = sync.Pool{
	New: func() interface{} {
		return &dto.SuccessResponse{}
	},
}

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// BuildOptionalRequest is BuildRequest that accepts an empty body.
func BuildOptionalRequest[T any](c *gin.Context) (*T, error) {
	if c.Request.ContentLength == 0 {
		return new(T), nil
	}
	return BuildRequest[T](c)
}

// ResponseBuilder writes the JSON envelopes of the API.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	defer putSuccessResponse(resp)

	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Rendering completes before the deferred put.
	b.c.JSON(statusCode, resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// Error sends a translated error whose code is derived from statusCode.
// err, when non-nil, is attached for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, b.locale())
	b.send(statusCode, dto.NewError(dto.ErrCodeFromStatus(statusCode), message), err)
}

// ErrorWithMessage sends an untranslated message, such as the package API's
// own error text, under an explicit code.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, code, message string, err error) {
	b.send(statusCode, dto.NewError(code, message), err)
}

// ErrorResponse sends a prepared error envelope.
func (b *ResponseBuilder) ErrorResponse(statusCode int, resp dto.ErrorResponse, err error) {
	b.send(statusCode, resp, err)
}

func (b *ResponseBuilder) locale() string {
	return i18n.GetLocale(b.c)
}

func (b *ResponseBuilder) send(statusCode int, resp dto.ErrorResponse, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp.WithRequestID(middleware.GetRequestID(b.c)))
}
