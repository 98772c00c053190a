package templating

import (
	"context"
	"fmt"
	"html"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"crm-automation/internal/observability"
	"crm-automation/internal/store"

	"github.com/google/uuid"
)

// Lookups are the read-only queries behind conditional tokens.
type Lookups interface {
	GetPipelineStageByID(ctx context.Context, stageID uuid.UUID) (store.PipelineStage, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
	GetCustomFieldValues(ctx context.Context, contactID uuid.UUID) ([]store.CustomFieldValue, error)
	GetDispositionByID(ctx context.Context, dispositionID uuid.UUID) (store.Disposition, error)
}

// Mapping sources for bulk campaign placeholders
const (
	SourceCRM    = "crm"
	SourceCSV    = "csv"
	SourceStatic = "static"
)

// Mapping binds one literal placeholder to a value source.
type Mapping struct {
	Source string `json:"source"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Input is everything a template may be personalized against.
type Input struct {
	Contact     store.Contact
	TriggerData map[string]interface{}

	// Preloaded comes from the batch loader; when set no per-contact lookups are issued.
	Preloaded *store.ContactTemplateData

	// Mappings switches to literal placeholder replacement only.
	Mappings map[string]Mapping
}

const fullNameFallback = "there"

type Resolver struct {
	lookups Lookups
	logger  *observability.Logger
	now     func() time.Time
}

func New(lookups Lookups, logger *observability.Logger) *Resolver {
	return &Resolver{
		lookups: lookups,
		logger:  logger,
		now:     time.Now,
	}
}

// Resolve personalizes each text against in. Lookups are shared across texts and issued
// only for token groups that actually appear. Failed lookups resolve to empty strings.
func (r *Resolver) Resolve(ctx context.Context, in Input, texts ...string) []string {
	out := make([]string, len(texts))

	if in.Mappings != nil {
		for i, t := range texts {
			out[i] = applyMappings(t, in)
		}
		return out
	}

	parsed := make([][]segment, len(texts))
	referenced := make(map[string]struct{})
	for i, t := range texts {
		parsed[i] = parse(t)
		for _, s := range parsed[i] {
			if s.isToken() {
				referenced[s.token] = struct{}{}
			}
		}
	}

	values := r.values(ctx, in, referenced)
	for i := range texts {
		out[i] = render(parsed[i], values, nil)
	}
	return out
}

// ResolveOne is Resolve for a single text.
func (r *Resolver) ResolveOne(ctx context.Context, in Input, text string) string {
	return r.Resolve(ctx, in, text)[0]
}

// ResolveEmail personalizes a subject and an HTML body with one set of lookups.
// Values substituted into the body are HTML escaped; the subject stays plain text.
// Literal mappings are applied verbatim to both.
func (r *Resolver) ResolveEmail(ctx context.Context, in Input, subject, htmlBody string) (string, string) {
	if in.Mappings != nil {
		return applyMappings(subject, in), applyMappings(htmlBody, in)
	}

	subjectSegments, bodySegments := parse(subject), parse(htmlBody)
	referenced := make(map[string]struct{})
	for _, segments := range [][]segment{subjectSegments, bodySegments} {
		for _, s := range segments {
			if s.isToken() {
				referenced[s.token] = struct{}{}
			}
		}
	}

	values := r.values(ctx, in, referenced)
	return render(subjectSegments, values, nil), render(bodySegments, values, html.EscapeString)
}

func (r *Resolver) values(ctx context.Context, in Input, referenced map[string]struct{}) map[string]string {
	contact := in.Contact
	if in.Preloaded != nil {
		contact = in.Preloaded.Contact
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "contact_id", Value: contact.ID.String()})

	values := standardFields(contact, r.now())

	has := func(names ...string) bool {
		for _, n := range names {
			if _, ok := referenced[n]; ok {
				return true
			}
		}
		return false
	}
	hasPrefix := func(prefix string) bool {
		for name := range referenced {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	}

	if has("pipeline_stage") {
		values["pipeline_stage"] = r.pipelineStageName(ctx, in, contact)
	}

	if has("assigned_user_name", "assigned_user_email") {
		name, email := r.assignedUser(ctx, in, contact)
		values["assigned_user_name"] = name
		values["assigned_user_email"] = email
	}

	if hasPrefix("custom_field.") {
		fields := r.customFields(ctx, in, contact)
		for name := range referenced {
			if key, ok := strings.CutPrefix(name, "custom_field."); ok {
				values[name] = fields[key]
			}
		}
	}

	if hasPrefix("trigger.") {
		for name := range referenced {
			if key, ok := strings.CutPrefix(name, "trigger."); ok {
				values[name] = stringify(in.TriggerData[key])
			}
		}
	}

	if has("old_stage", "old_stage_name") {
		v := r.stageFromTrigger(ctx, in.TriggerData, "from_stage_id", "from_stage_name")
		values["old_stage"], values["old_stage_name"] = v, v
	}
	if has("new_stage", "new_stage_name") {
		v := r.stageFromTrigger(ctx, in.TriggerData, "to_stage_id", "to_stage_name")
		values["new_stage"], values["new_stage_name"] = v, v
	}

	if has("disposition", "disposition_name", "disposition_description") {
		name, description := r.disposition(ctx, in.TriggerData)
		values["disposition"], values["disposition_name"] = name, name
		values["disposition_description"] = description
	}

	if has("call_duration", "call_duration_minutes") {
		seconds, ok := number(in.TriggerData["duration"])
		if ok {
			values["call_duration"] = formatDuration(seconds)
			values["call_duration_minutes"] = strconv.Itoa(int(math.Round(seconds / 60)))
		} else {
			values["call_duration"], values["call_duration_minutes"] = "", ""
		}
	}

	return values
}

func standardFields(c store.Contact, now time.Time) map[string]string {
	fullName := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if fullName == "" {
		fullName = fullNameFallback
	}

	days := 0
	if !c.UpdatedAt.IsZero() && now.After(c.UpdatedAt) {
		days = int(now.Sub(c.UpdatedAt).Hours() / 24)
	}
	created := ""
	if !c.CreatedAt.IsZero() {
		created = c.CreatedAt.Format("Jan 2, 2006")
	}

	return map[string]string{
		"first_name":        c.FirstName,
		"last_name":         c.LastName,
		"full_name":         fullName,
		"email":             c.Email,
		"phone":             c.Phone,
		"company":           c.Company,
		"job_title":         c.JobTitle,
		"location":          c.Location,
		"status":            c.Status,
		"source":            c.Source,
		"created_date":      created,
		"days_since_update": strconv.Itoa(days),
	}
}

func (r *Resolver) pipelineStageName(ctx context.Context, in Input, c store.Contact) string {
	if in.Preloaded != nil {
		return in.Preloaded.PipelineStageName
	}
	if c.PipelineStageID == nil {
		return ""
	}
	stage, err := r.lookups.GetPipelineStageByID(ctx, *c.PipelineStageID)
	if err != nil {
		r.logger.Error(ctx, "failed to resolve pipeline stage for template", err)
		return ""
	}
	return stage.Name
}

func (r *Resolver) assignedUser(ctx context.Context, in Input, c store.Contact) (string, string) {
	if in.Preloaded != nil {
		return in.Preloaded.AssignedUserName, in.Preloaded.AssignedUserEmail
	}
	if c.AssignedTo == nil {
		return "", ""
	}
	user, err := r.lookups.GetUserByID(ctx, *c.AssignedTo)
	if err != nil {
		r.logger.Error(ctx, "failed to resolve assigned user for template", err)
		return "", ""
	}
	return user.FullName, user.Email
}

func (r *Resolver) customFields(ctx context.Context, in Input, c store.Contact) map[string]string {
	fields := make(map[string]string)
	if in.Preloaded != nil {
		for k, v := range in.Preloaded.CustomFields {
			fields[k] = stringify(v)
		}
		return fields
	}
	values, err := r.lookups.GetCustomFieldValues(ctx, c.ID)
	if err != nil {
		r.logger.Error(ctx, "failed to resolve custom fields for template", err)
		return fields
	}
	for _, v := range values {
		fields[v.FieldName] = v.Value
	}
	return fields
}

func (r *Resolver) stageFromTrigger(ctx context.Context, data map[string]interface{}, idKey, nameKey string) string {
	if name := stringify(data[nameKey]); name != "" {
		return name
	}
	id, err := uuid.Parse(stringify(data[idKey]))
	if err != nil {
		return ""
	}
	stage, err := r.lookups.GetPipelineStageByID(ctx, id)
	if err != nil {
		r.logger.Error(ctx, fmt.Sprintf("failed to resolve %s for template", idKey), err)
		return ""
	}
	return stage.Name
}

func (r *Resolver) disposition(ctx context.Context, data map[string]interface{}) (string, string) {
	id, err := uuid.Parse(stringify(data["disposition_id"]))
	if err != nil {
		return stringify(data["disposition_name"]), ""
	}
	d, err := r.lookups.GetDispositionByID(ctx, id)
	if err != nil {
		r.logger.Error(ctx, "failed to resolve disposition for template", err)
		return "", ""
	}
	return d.Name, d.Description
}

// applyMappings replaces each mapping key literally, in key order.
func applyMappings(text string, in Input) string {
	keys := make([]string, 0, len(in.Mappings))
	for k := range in.Mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields map[string]string
	for _, placeholder := range keys {
		m := in.Mappings[placeholder]
		var value string
		switch m.Source {
		case SourceStatic:
			value = m.Value
		case SourceCSV:
			value = stringify(in.TriggerData[m.Field])
		case SourceCRM:
			if fields == nil {
				fields = standardFields(in.Contact, time.Now())
			}
			value = fields[m.Field]
		}
		text = strings.ReplaceAll(text, placeholder, value)
	}
	return text
}

func formatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
