package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/circuitbreaker"
	"github.com/guttosm/package-form/internal/domain/dto"
	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/form"
	"github.com/guttosm/package-form/internal/i18n"
	"github.com/guttosm/package-form/internal/middleware"
	"github.com/guttosm/package-form/internal/service"
	"github.com/guttosm/package-form/internal/upstream"
)

// FormHandler serves the package form, both as an HTML page and as a JSON API
// over the same per-session state.
type FormHandler struct {
	forms service.FormService
	audit *middleware.AsyncLogger
}

// NewFormHandler creates a FormHandler. audit may be nil.
func NewFormHandler(forms service.FormService, audit *middleware.AsyncLogger) *FormHandler {
	return &FormHandler{forms: forms, audit: audit}
}

// session returns the caller's form, mounting it on first use.
func (h *FormHandler) session(c *gin.Context) (*service.FormSession, error) {
	return h.forms.Session(c.Request.Context(), middleware.GetSessionID(c))
}

// applyUpdates records the posted selections in form order. A failed package
// type load is already reflected in the list state, so it does not stop the
// remaining updates.
func applyUpdates(ctx context.Context, sess *service.FormSession, updates []dto.FieldUpdate) {
	for _, u := range updates {
		_ = sess.Form.Select(ctx, u.Field, u.Value)
	}
}

// submit applies the posted selections, submits the form and audits the
// attempt. Calls rejected before reaching the package API are not audited.
func (h *FormHandler) submit(c *gin.Context, sess *service.FormSession, req *dto.SubmitRequest) (string, model.PackagePayload, error) {
	ctx := c.Request.Context()
	applyUpdates(ctx, sess, req.Updates())

	payload := sess.Form.Snapshot().Selection.Payload()
	result, err := sess.Form.Submit(ctx)
	switch {
	case errors.Is(err, form.ErrIncompleteSelection):
		middleware.AuditSubmission(h.audit, c, form.ResultIncomplete, payload, err)
	case errors.Is(err, form.ErrFormClosed), errors.Is(err, form.ErrSubmitInProgress):
	default:
		middleware.AuditSubmission(h.audit, c, result, payload, err)
	}
	return result, payload, err
}

// State returns the caller's form.
//
// @Summary      Get form state
// @Description  Returns the package form of the current session, mounting it on first use, and drains its pending notifications.
// @Tags         Form
// @Produce      json
// @Param        X-Form-Session header string false "Form session id"
// @Success      200 {object} dto.SuccessResponse{data=dto.FormStateResponse} "Form state"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/package-form [get]
func (h *FormHandler) State(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess, err := h.session(c)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(stateResponse(sess))
}

// Open shows the modal.
//
// @Summary      Open the form
// @Description  Shows the package form modal. Selections made earlier are kept.
// @Tags         Form
// @Produce      json
// @Param        X-Form-Session header string false "Form session id"
// @Success      200 {object} dto.SuccessResponse{data=dto.FormStateResponse} "Form state"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/package-form/open [post]
func (h *FormHandler) Open(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess, err := h.session(c)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	sess.Form.Open()
	builder.SuccessOK(stateResponse(sess))
}

// Close hides the modal.
//
// @Summary      Close the form
// @Description  Hides the package form modal without submitting. Selections are kept.
// @Tags         Form
// @Produce      json
// @Param        X-Form-Session header string false "Form session id"
// @Success      200 {object} dto.SuccessResponse{data=dto.FormStateResponse} "Form state"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/package-form/close [post]
func (h *FormHandler) Close(c *gin.Context) {
	builder := NewResponseBuilder(c)
	sess, err := h.session(c)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	sess.Form.Close()
	builder.SuccessOK(stateResponse(sess))
}

// End forgets the caller's form.
//
// @Summary      End the session
// @Description  Unmounts the package form of the current session, cancelling its in-flight loads.
// @Tags         Form
// @Param        X-Form-Session header string false "Form session id"
// @Success      204 "Session ended"
// @Router       /api/package-form [delete]
func (h *FormHandler) End(c *gin.Context) {
	h.forms.End(middleware.GetSessionID(c))
	c.Status(http.StatusNoContent)
}

// Select changes one select of the form.
//
// @Summary      Change a selection
// @Description  Records the value of one select. Choosing a warehouse reloads the package types that warehouse still has capacity for; a failed reload is reported in the list state.
// @Tags         Form
// @Accept       json
// @Produce      json
// @Param        X-Form-Session header string false "Form session id"
// @Param        request body dto.SelectRequest true "Field and value"
// @Success      200 {object} dto.SuccessResponse{data=dto.FormStateResponse} "Form state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - unknown field"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/package-form/select [post]
func (h *FormHandler) Select(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.SelectRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyUnknownField, err)
		return
	}

	sess, err := h.session(c)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	_ = sess.Form.Select(c.Request.Context(), req.FormField(), model.ID(req.Value))
	builder.SuccessOK(stateResponse(sess))
}

// Submit creates the package.
//
// @Summary      Submit the form
// @Description  Applies the posted selections, then sends the package to the package API. Only a form with a customer, a warehouse and a package type is sent. Success closes the modal.
// @Tags         Form
// @Accept       json
// @Produce      json
// @Param        X-Form-Session header string false "Form session id"
// @Param        Idempotency-Key header string false "Replays the stored response for a repeated key"
// @Param        request body dto.SubmitRequest false "Selections to apply before submitting"
// @Success      200 {object} dto.SuccessResponse{data=dto.SubmitResponse} "Package created"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid body"
// @Failure      409 {object} dto.ErrorResponse "Form closed or a submission in progress"
// @Failure      422 {object} dto.ErrorResponse "Incomplete selection or package rejected"
// @Failure      502 {object} dto.ErrorResponse "Package API failed"
// @Failure      503 {object} dto.ErrorResponse "Package API unavailable"
// @Failure      504 {object} dto.ErrorResponse "Package API timed out"
// @Router       /api/package-form/submit [post]
func (h *FormHandler) Submit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildOptionalRequest[dto.SubmitRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	sess, err := h.session(c)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	result, payload, err := h.submit(c, sess, req)
	var notifications []form.Notification
	if result != "" {
		// The outcome travels in this response instead.
		notifications = sess.Notifications.Drain()
	}
	if err != nil {
		writeSubmitError(builder, payload, err)
		return
	}

	builder.SuccessOK(dto.SubmitResponse{
		Result:  result,
		Message: lastMessage(notifications, form.KindSuccess),
		Form:    sess.Form.Snapshot(),
	})
}

// writeSubmitError maps a Submit error to a response.
func writeSubmitError(builder *ResponseBuilder, payload model.PackagePayload, err error) {
	var rejected *upstream.RejectedError
	switch {
	case errors.Is(err, form.ErrFormClosed):
		builder.Error(http.StatusConflict, i18n.ErrKeyFormClosed, err)
	case errors.Is(err, form.ErrSubmitInProgress):
		builder.Error(http.StatusConflict, i18n.ErrKeySubmitInProgress, err)
	case errors.Is(err, form.ErrIncompleteSelection):
		message := i18n.GetTranslator().Translate(i18n.ErrKeyIncompleteSelection, builder.locale())
		resp := dto.NewError(dto.ErrCodeIncompleteSelection, message).
			WithDetail("missing", strings.Join(payload.MissingFields(), ","))
		builder.ErrorResponse(http.StatusUnprocessableEntity, resp, nil)
	case errors.As(err, &rejected) && rejected.Code < http.StatusInternalServerError:
		builder.ErrorWithMessage(http.StatusUnprocessableEntity, dto.ErrCodeRejected, rejected.Message, nil)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyUpstreamUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		builder.ErrorWithMessage(http.StatusBadGateway, dto.ErrCodeUpstream, err.Error(), err)
	}
}

// lastMessage returns the newest message of the given kind.
func lastMessage(notifications []form.Notification, kind form.Kind) string {
	for i := len(notifications) - 1; i >= 0; i-- {
		if notifications[i].Kind == kind {
			return notifications[i].Message
		}
	}
	return ""
}

func stateResponse(sess *service.FormSession) dto.FormStateResponse {
	return dto.FormStateResponse{
		SessionID:     sess.ID,
		Form:          sess.Form.Snapshot(),
		Notifications: sess.Notifications.Drain(),
	}
}
