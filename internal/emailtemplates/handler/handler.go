package handler

import (
	"net/http"

	"crm-automation/internal/apierrors"
	"crm-automation/internal/emailtemplates/processor"
	"crm-automation/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// organizationKey matches the key the api middleware sets
const organizationKey = "Organization-ID"

type Handler struct {
	processor EmailTemplateProcessor
	logger    *observability.Logger
}

func New(processor EmailTemplateProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateEmailTemplateRequest represents the HTTP request for creating an email template
type CreateEmailTemplateRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Subject  string `json:"subject" binding:"required,max=255"`
	HTMLBody string `json:"html_body" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// UpdateEmailTemplateRequest represents the HTTP request for updating an email template
type UpdateEmailTemplateRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Subject  *string `json:"subject,omitempty" binding:"omitempty,max=255"`
	HTMLBody *string `json:"html_body,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// PreviewEmailTemplateRequest renders a template against a contact
type PreviewEmailTemplateRequest struct {
	ContactID   string                 `json:"contact_id" binding:"required,uuid"`
	TriggerData map[string]interface{} `json:"trigger_data"`
}

// SendTestEmailRequest represents the HTTP request for sending a test email
type SendTestEmailRequest struct {
	RecipientEmail string                 `json:"recipient_email" binding:"required,email"`
	ContactID      string                 `json:"contact_id" binding:"required,uuid"`
	TriggerData    map[string]interface{} `json:"trigger_data"`
}

// HandleCreateEmailTemplate handles POST /api/email-templates
func (h *Handler) HandleCreateEmailTemplate(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req CreateEmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	emailTemplate, err := h.processor.CreateEmailTemplate(c.Request.Context(), orgID, processor.CreateEmailTemplateRequest{
		Name:     req.Name,
		Subject:  req.Subject,
		HTMLBody: req.HTMLBody,
		IsActive: req.IsActive,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, emailTemplate)
}

// HandleListEmailTemplates handles GET /api/email-templates
func (h *Handler) HandleListEmailTemplates(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	templates, err := h.processor.ListEmailTemplates(c.Request.Context(), orgID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// HandleGetEmailTemplate handles GET /api/email-templates/:template_id
func (h *Handler) HandleGetEmailTemplate(c *gin.Context) {
	orgID, templateID, ok := templateScope(c)
	if !ok {
		return
	}

	emailTemplate, err := h.processor.GetEmailTemplate(c.Request.Context(), orgID, templateID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, emailTemplate)
}

// HandleUpdateEmailTemplate handles PUT /api/email-templates/:template_id
func (h *Handler) HandleUpdateEmailTemplate(c *gin.Context) {
	orgID, templateID, ok := templateScope(c)
	if !ok {
		return
	}

	var req UpdateEmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	emailTemplate, err := h.processor.UpdateEmailTemplate(c.Request.Context(), orgID, templateID, processor.UpdateEmailTemplateRequest{
		Name:     req.Name,
		Subject:  req.Subject,
		HTMLBody: req.HTMLBody,
		IsActive: req.IsActive,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, emailTemplate)
}

// HandleDeleteEmailTemplate handles DELETE /api/email-templates/:template_id
func (h *Handler) HandleDeleteEmailTemplate(c *gin.Context) {
	orgID, templateID, ok := templateScope(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteEmailTemplate(c.Request.Context(), orgID, templateID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandlePreviewEmailTemplate handles POST /api/email-templates/:template_id/preview
func (h *Handler) HandlePreviewEmailTemplate(c *gin.Context) {
	orgID, templateID, ok := templateScope(c)
	if !ok {
		return
	}

	var req PreviewEmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	rendered, err := h.processor.PreviewEmailTemplate(c.Request.Context(), orgID, templateID, uuid.MustParse(req.ContactID), req.TriggerData)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rendered)
}

// HandleSendTestEmail handles POST /api/email-templates/:template_id/test
func (h *Handler) HandleSendTestEmail(c *gin.Context) {
	orgID, templateID, ok := templateScope(c)
	if !ok {
		return
	}

	var req SendTestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	err := h.processor.SendTestEmail(c.Request.Context(), orgID, templateID, processor.SendTestEmailRequest{
		RecipientEmail: req.RecipientEmail,
		ContactID:      uuid.MustParse(req.ContactID),
		TriggerData:    req.TriggerData,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "test email sent successfully"})
}

func organizationID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(organizationKey)
	if !exists {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Organization ID not found in context"))
		return uuid.Nil, false
	}
	orgID, ok := value.(uuid.UUID)
	if !ok {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid organization ID format"))
		return uuid.Nil, false
	}
	return orgID, true
}

func templateScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	orgID, ok := organizationID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	templateID, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid template ID format"))
		return uuid.Nil, uuid.Nil, false
	}
	return orgID, templateID, true
}
