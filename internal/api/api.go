package api

import (
	"net/http"

	"crm-automation/internal/apierrors"
	automationHandler "crm-automation/internal/automation/handler"
	emailTemplateHandler "crm-automation/internal/emailtemplates/handler"
	"crm-automation/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrganizationHeader carries the tenant of an /api request. It is set by the
// gateway in front of this service.
const OrganizationHeader = "X-Organization-ID"

type API struct {
	router               *gin.RouterGroup
	automationHandler    automationHandler.Handler
	emailTemplateHandler emailTemplateHandler.Handler
	ingestRateLimiter    *ratelimit.Service
}

func New(router *gin.RouterGroup, automationHandler automationHandler.Handler, emailTemplateHandler emailTemplateHandler.Handler, ingestRateLimiter *ratelimit.Service) API {
	return API{
		router:               router,
		automationHandler:    automationHandler,
		emailTemplateHandler: emailTemplateHandler,
		ingestRateLimiter:    ingestRateLimiter,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()

	// Public links embedded in automation emails
	a.router.GET("/t/o/:execution_id", a.automationHandler.HandleOpen)
	a.router.GET("/t/c/:execution_id", a.automationHandler.HandleClick)
	a.router.GET("/unsubscribe", a.automationHandler.HandleUnsubscribePage)
	a.router.POST("/unsubscribe", a.automationHandler.HandleOneClickUnsubscribe)

	apiGroup := a.router.Group("/api", OrganizationMiddleware)
	{
		automationGroup := apiGroup.Group("/automations")
		automationGroup.POST("/events", a.ingestRateLimiter.Middleware(automationHandler.OrganizationKey), a.automationHandler.HandleIngestEvent)
		automationGroup.GET("/rules", a.automationHandler.HandleListRules)
		automationGroup.POST("/rules", a.automationHandler.HandleCreateRule)
		automationGroup.GET("/rules/:rule_id", a.automationHandler.HandleGetRule)
		automationGroup.PUT("/rules/:rule_id", a.automationHandler.HandleUpdateRule)
		automationGroup.DELETE("/rules/:rule_id", a.automationHandler.HandleDeleteRule)
		automationGroup.POST("/rules/:rule_id/activate", a.automationHandler.HandleActivateRule)
		automationGroup.POST("/rules/:rule_id/deactivate", a.automationHandler.HandleDeactivateRule)
		automationGroup.GET("/rules/:rule_id/executions", a.automationHandler.HandleListExecutions)
		automationGroup.GET("/executions/:execution_id", a.automationHandler.HandleGetExecution)
	}
	{
		templateGroup := apiGroup.Group("/email-templates")
		templateGroup.GET("", a.emailTemplateHandler.HandleListEmailTemplates)
		templateGroup.POST("", a.emailTemplateHandler.HandleCreateEmailTemplate)
		templateGroup.GET("/:template_id", a.emailTemplateHandler.HandleGetEmailTemplate)
		templateGroup.PUT("/:template_id", a.emailTemplateHandler.HandleUpdateEmailTemplate)
		templateGroup.DELETE("/:template_id", a.emailTemplateHandler.HandleDeleteEmailTemplate)
		templateGroup.POST("/:template_id/preview", a.emailTemplateHandler.HandlePreviewEmailTemplate)
		templateGroup.POST("/:template_id/test", a.emailTemplateHandler.HandleSendTestEmail)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}

// OrganizationMiddleware resolves the tenant of the request and stores it under
// the key the handlers read.
func OrganizationMiddleware(c *gin.Context) {
	raw := c.GetHeader(OrganizationHeader)
	if raw == "" {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Organization ID header is required"))
		c.Abort()
		return
	}
	orgID, err := uuid.Parse(raw)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid organization ID format"))
		c.Abort()
		return
	}
	c.Set(automationHandler.OrganizationKey, orgID)
	c.Next()
}
