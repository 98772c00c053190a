package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"crm-automation/internal/apierrors"
	"crm-automation/internal/automation/processor"
	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrganizationKey is the gin context key holding the caller's organization id
const OrganizationKey = "Organization-ID"

type Handler struct {
	processor AutomationProcessor
	logger    *observability.Logger
}

func New(processor AutomationProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// IngestEventRequest is the inbound CRM event contract
type IngestEventRequest struct {
	OrgID       string                 `json:"orgId" binding:"required,uuid"`
	TriggerType string                 `json:"triggerType" binding:"required"`
	ContactID   string                 `json:"contactId" binding:"required,uuid"`
	TriggerData map[string]interface{} `json:"triggerData"`
	RuleID      string                 `json:"ruleId,omitempty" binding:"omitempty,uuid"`
	Mode        string                 `json:"mode,omitempty" binding:"omitempty,oneof=preview send"`
}

// HandleIngestEvent handles POST /api/automations/events
func (h *Handler) HandleIngestEvent(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var req IngestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if req.OrgID != orgID.String() {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "orgId does not match the organization"))
		return
	}
	contactID := uuid.MustParse(req.ContactID)

	if req.TriggerType == store.TriggerTypeTest {
		if req.RuleID == "" || req.Mode == "" {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "ruleId and mode are required for test events"))
			return
		}
		result, err := h.processor.TestRule(ctx, orgID, uuid.MustParse(req.RuleID), contactID, req.Mode, req.TriggerData)
		if err != nil {
			apierrors.RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	result, err := h.processor.HandleEvent(ctx, orgID, req.TriggerType, contactID, req.TriggerData)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RuleRequest is the HTTP body for creating an automation rule
type RuleRequest struct {
	Name                 string                `json:"name" binding:"required,max=255"`
	Description          *string               `json:"description,omitempty"`
	TriggerType          string                `json:"trigger_type" binding:"required"`
	TriggerConfig        json.RawMessage       `json:"trigger_config"`
	Conditions           []store.RuleCondition `json:"conditions"`
	ConditionLogic       string                `json:"condition_logic"`
	EmailTemplateID      string                `json:"email_template_id" binding:"required,uuid"`
	SendDelayMinutes     int                   `json:"send_delay_minutes" binding:"gte=0"`
	MaxSendsPerContact   *int                  `json:"max_sends_per_contact,omitempty" binding:"omitempty,gt=0"`
	CooldownPeriodDays   *int                  `json:"cooldown_period_days,omitempty" binding:"omitempty,gte=0"`
	EnforceBusinessHours bool                  `json:"enforce_business_hours"`
	IsActive             *bool                 `json:"is_active,omitempty"`
	Priority             int                   `json:"priority"`
	ABTestEnabled        bool                  `json:"ab_test_enabled"`
}

// UpdateRuleRequest is the HTTP body for a partial rule update
type UpdateRuleRequest struct {
	Name                 *string                `json:"name,omitempty" binding:"omitempty,max=255"`
	Description          *string                `json:"description,omitempty"`
	TriggerConfig        json.RawMessage        `json:"trigger_config,omitempty"`
	Conditions           *[]store.RuleCondition `json:"conditions,omitempty"`
	ConditionLogic       *string                `json:"condition_logic,omitempty"`
	EmailTemplateID      *string                `json:"email_template_id,omitempty" binding:"omitempty,uuid"`
	SendDelayMinutes     *int                   `json:"send_delay_minutes,omitempty"`
	MaxSendsPerContact   *int                   `json:"max_sends_per_contact,omitempty"`
	CooldownPeriodDays   *int                   `json:"cooldown_period_days,omitempty"`
	EnforceBusinessHours *bool                  `json:"enforce_business_hours,omitempty"`
	Priority             *int                   `json:"priority,omitempty"`
	ABTestEnabled        *bool                  `json:"ab_test_enabled,omitempty"`
}

// HandleListRules handles GET /api/automations/rules
func (h *Handler) HandleListRules(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var triggerType *string
	if v := c.Query("trigger_type"); v != "" {
		triggerType = &v
	}
	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "is_active must be true or false"))
			return
		}
		isActive = &parsed
	}

	rules, err := h.processor.ListRules(ctx, orgID, triggerType, isActive)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rules)
}

// HandleGetRule handles GET /api/automations/rules/:rule_id
func (h *Handler) HandleGetRule(c *gin.Context) {
	orgID, ruleID, ok := ruleScope(c)
	if !ok {
		return
	}

	rule, err := h.processor.GetRule(c.Request.Context(), orgID, ruleID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// HandleCreateRule handles POST /api/automations/rules
func (h *Handler) HandleCreateRule(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	rule, err := h.processor.CreateRule(ctx, orgID, processor.CreateRuleRequest{
		Name:                 req.Name,
		Description:          req.Description,
		TriggerType:          req.TriggerType,
		TriggerConfig:        req.TriggerConfig,
		Conditions:           req.Conditions,
		ConditionLogic:       req.ConditionLogic,
		EmailTemplateID:      uuid.MustParse(req.EmailTemplateID),
		SendDelayMinutes:     req.SendDelayMinutes,
		MaxSendsPerContact:   req.MaxSendsPerContact,
		CooldownPeriodDays:   req.CooldownPeriodDays,
		EnforceBusinessHours: req.EnforceBusinessHours,
		IsActive:             req.IsActive,
		Priority:             req.Priority,
		ABTestEnabled:        req.ABTestEnabled,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// HandleUpdateRule handles PUT /api/automations/rules/:rule_id
func (h *Handler) HandleUpdateRule(c *gin.Context) {
	orgID, ruleID, ok := ruleScope(c)
	if !ok {
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	processorReq := processor.UpdateRuleRequest{
		Name:                 req.Name,
		Description:          req.Description,
		TriggerConfig:        req.TriggerConfig,
		Conditions:           req.Conditions,
		ConditionLogic:       req.ConditionLogic,
		SendDelayMinutes:     req.SendDelayMinutes,
		MaxSendsPerContact:   req.MaxSendsPerContact,
		CooldownPeriodDays:   req.CooldownPeriodDays,
		EnforceBusinessHours: req.EnforceBusinessHours,
		Priority:             req.Priority,
		ABTestEnabled:        req.ABTestEnabled,
	}
	if req.EmailTemplateID != nil {
		templateID := uuid.MustParse(*req.EmailTemplateID)
		processorReq.EmailTemplateID = &templateID
	}

	rule, err := h.processor.UpdateRule(c.Request.Context(), orgID, ruleID, processorReq)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// HandleActivateRule handles POST /api/automations/rules/:rule_id/activate
func (h *Handler) HandleActivateRule(c *gin.Context) {
	h.setRuleActive(c, true)
}

// HandleDeactivateRule handles POST /api/automations/rules/:rule_id/deactivate
func (h *Handler) HandleDeactivateRule(c *gin.Context) {
	h.setRuleActive(c, false)
}

func (h *Handler) setRuleActive(c *gin.Context, active bool) {
	orgID, ruleID, ok := ruleScope(c)
	if !ok {
		return
	}

	rule, err := h.processor.SetRuleActive(c.Request.Context(), orgID, ruleID, active)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// HandleDeleteRule handles DELETE /api/automations/rules/:rule_id
func (h *Handler) HandleDeleteRule(c *gin.Context) {
	orgID, ruleID, ok := ruleScope(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteRule(c.Request.Context(), orgID, ruleID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleListExecutions handles GET /api/automations/rules/:rule_id/executions
func (h *Handler) HandleListExecutions(c *gin.Context) {
	orgID, ruleID, ok := ruleScope(c)
	if !ok {
		return
	}

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "limit must be a number"))
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "offset must be a number"))
		return
	}

	executions, err := h.processor.ListExecutions(c.Request.Context(), orgID, ruleID, status, limit, offset)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, executions)
}

// HandleGetExecution handles GET /api/automations/executions/:execution_id
func (h *Handler) HandleGetExecution(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	executionID, err := uuid.Parse(c.Param("execution_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid execution ID format"))
		return
	}

	execution, err := h.processor.GetExecution(c.Request.Context(), orgID, executionID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, execution)
}

// organizationID reads the organization set by the api middleware and writes the
// error response itself when it is missing.
func organizationID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(OrganizationKey)
	if !exists {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Organization ID not found in context"))
		return uuid.Nil, false
	}
	orgID, ok := value.(uuid.UUID)
	if !ok {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid organization ID format"))
		return uuid.Nil, false
	}

	c.Request = c.Request.WithContext(observability.WithFields(c.Request.Context(),
		observability.Field{Key: "organization_id", Value: orgID.String()}))
	return orgID, true
}

func ruleScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	orgID, ok := organizationID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	ruleID, err := uuid.Parse(c.Param("rule_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid rule ID format"))
		return uuid.Nil, uuid.Nil, false
	}
	return orgID, ruleID, true
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
