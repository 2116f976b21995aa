package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/guttosm/package-form/internal/domain/dto"
	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/i18n"
	"github.com/guttosm/package-form/internal/logger"
	"github.com/guttosm/package-form/internal/middleware"
	"github.com/guttosm/package-form/internal/service"
)

// PagePath is where the form page lives. Every form post redirects back here.
const PagePath = "/"

// Page renders the form page and drains the pending notifications into it.
func (h *FormHandler) Page(c *gin.Context) {
	sess, ok := h.pageSession(c)
	if !ok {
		return
	}

	view := newPageView(i18n.GetLocale(c), sess.Form.Snapshot(), sess.Notifications.Drain())
	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{Template: pageTemplate, Name: "form.html", Data: view})
}

// pageSession returns the caller's form. On failure the error is left for
// middleware.ErrorHandler, which answers the browser with a translated 500.
func (h *FormHandler) pageSession(c *gin.Context) (*service.FormSession, bool) {
	sess, err := h.session(c)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return nil, false
	}
	return sess, true
}

// OpenPage shows the modal.
func (h *FormHandler) OpenPage(c *gin.Context) {
	sess, ok := h.pageSession(c)
	if !ok {
		return
	}
	sess.Form.Open()
	c.Redirect(http.StatusSeeOther, PagePath)
}

// ClosePage hides the modal without submitting.
func (h *FormHandler) ClosePage(c *gin.Context) {
	sess, ok := h.pageSession(c)
	if !ok {
		return
	}
	sess.Form.Close()
	c.Redirect(http.StatusSeeOther, PagePath)
}

// SelectPage records selections without submitting. It accepts either a
// single field/value pair or the fields of the whole form, which is what the
// warehouse select posts when it changes.
func (h *FormHandler) SelectPage(c *gin.Context) {
	var updates []dto.FieldUpdate
	if _, single := c.GetPostForm("field"); single {
		var req dto.SelectRequest
		if err := c.ShouldBind(&req); err != nil {
			_ = c.Error(err)
			c.String(http.StatusBadRequest, i18n.GetTranslator().Translate(i18n.ErrKeyUnknownField, i18n.GetLocale(c)))
			return
		}
		updates = []dto.FieldUpdate{{Field: req.FormField(), Value: model.ID(req.Value)}}
	} else {
		var req dto.SubmitRequest
		if err := c.ShouldBind(&req); err != nil {
			_ = c.Error(err)
			c.String(http.StatusBadRequest, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequestBody, i18n.GetLocale(c)))
			return
		}
		updates = req.Updates()
	}

	sess, ok := h.pageSession(c)
	if !ok {
		return
	}
	applyUpdates(c.Request.Context(), sess, updates)
	c.Redirect(http.StatusSeeOther, PagePath)
}

// SubmitPage submits the form. The outcome reaches the page as a
// notification; an incomplete or closed form is left as it is.
func (h *FormHandler) SubmitPage(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err)
		c.String(http.StatusBadRequest, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequestBody, i18n.GetLocale(c)))
		return
	}

	sess, ok := h.pageSession(c)
	if !ok {
		return
	}

	if _, _, err := h.submit(c, sess, &req); err != nil {
		log := logger.ForSession(middleware.GetSessionID(c))
		log.Debug().Err(err).Msg("Package form not submitted")
	}
	c.Redirect(http.StatusSeeOther, PagePath)
}
