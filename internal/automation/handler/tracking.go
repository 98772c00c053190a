package handler

import (
	"errors"
	"html"
	"net/http"

	"crm-automation/internal/apierrors"
	"crm-automation/internal/automation/processor"
	"crm-automation/internal/automation/tracking"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandleOpen handles GET /t/o/:execution_id. The pixel is served whatever happens
// to the recording so mail clients never show a broken image.
func (h *Handler) HandleOpen(c *gin.Context) {
	ctx := c.Request.Context()

	if executionID, err := uuid.Parse(c.Param("execution_id")); err == nil {
		if err := h.processor.RecordOpen(ctx, executionID, clientInfo(c)); err != nil && !errors.Is(err, processor.ErrExecutionNotFound) {
			h.logger.Error(ctx, "failed to record email open", err)
		}
	}

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
	c.Data(http.StatusOK, "image/gif", tracking.Pixel)
}

// HandleClick handles GET /t/c/:execution_id?u=&k=&i=&s= and redirects to the signed target
func (h *Handler) HandleClick(c *gin.Context) {
	ctx := c.Request.Context()

	executionID, err := uuid.Parse(c.Param("execution_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid execution ID format"))
		return
	}
	target := c.Query("u")
	if target == "" {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Missing link target"))
		return
	}

	err = h.processor.RecordClick(ctx, executionID, target, c.Query("k"), c.Query("s"), clientInfo(c))
	switch {
	case errors.Is(err, processor.ErrInvalidSignature):
		apierrors.RespondWithError(c, err)
		return
	case err != nil:
		// the signature proved the link is ours; recording problems must not block the visitor
		h.logger.Error(ctx, "failed to record email click", err)
	}

	c.Redirect(http.StatusFound, target)
}

// HandleUnsubscribePage handles GET /unsubscribe?token=
func (h *Handler) HandleUnsubscribePage(c *gin.Context) {
	claims, err := h.processor.Unsubscribe(c.Request.Context(), c.Query("token"), store.UnsubscribeSourceLink)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	page := "<!DOCTYPE html><html><body><p>" + html.EscapeString(claims.Email) +
		" has been unsubscribed and will no longer receive these emails.</p></body></html>"
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// HandleOneClickUnsubscribe handles POST /unsubscribe?token= sent by mail clients
// honouring List-Unsubscribe-Post.
func (h *Handler) HandleOneClickUnsubscribe(c *gin.Context) {
	if _, err := h.processor.Unsubscribe(c.Request.Context(), c.Query("token"), store.UnsubscribeSourceOneClick); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func clientInfo(c *gin.Context) processor.ClientInfo {
	userAgent := c.Request.UserAgent()
	return processor.ClientInfo{
		IP:         observability.ClientIP(c),
		UserAgent:  userAgent,
		DeviceType: observability.DeviceType(userAgent),
	}
}
