package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Technical bounds for transaction amounts. The business-rule evaluator
// applies its own stricter policy ceiling on top of these.
var (
	amountMin = decimal.RequireFromString("0.01")
	amountMax = decimal.RequireFromString("999999999.99")
)

// dateWindow bounds how far a transaction date may lie from "now" at the
// schema level. The business rules bound future dates tighter; this bound
// is what effectively controls past dates.
const dateWindow = 365 * 24 * time.Hour

// Validator evaluates the declarative field rules for transaction drafts.
// All rules run regardless of earlier failures so a single response can
// carry every violation at once.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New builds a Validator with the custom transaction rules registered.
func New() *Validator {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	val := &Validator{v: v, now: now}
	_ = v.RegisterValidation("txamount", val.validateAmountRange)
	_ = v.RegisterValidation("maxdecimals", validateMaxDecimals)
	_ = v.RegisterValidation("txdate", val.validateDateWindow)
	v.RegisterStructValidation(val.validateDraftStruct, dto.TransactionDraft{})
	return val
}

// BindDraft maps a sanitized payload into a typed draft for the given kind.
// The amount is carried over verbatim as its decimal string so the rules can
// reject malformed numbers with a proper field error instead of a bind error.
func BindDraft(payload map[string]any, kind domain.TransactionKind) (*dto.TransactionDraft, []dto.ValidationError) {
	rest := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == "amount" {
			continue
		}
		rest[k] = v
	}

	var amountRaw string
	switch a := payload["amount"].(type) {
	case nil:
		// Absent or JSON null: the required rule reports it.
	case json.Number:
		amountRaw = a.String()
	case string:
		amountRaw = a
	case float64:
		amountRaw = decimal.NewFromFloat(a).String()
	default:
		// Booleans, objects and arrays are present but unparseable, which
		// is a type mismatch rather than a missing field.
		return nil, []dto.ValidationError{{
			Field:    "amount",
			Message:  "must be of type number",
			Value:    a,
			Location: "body",
		}}
	}

	data, err := json.Marshal(rest)
	if err != nil {
		return nil, []dto.ValidationError{{Field: "body", Message: "is not valid JSON", Location: "body"}}
	}

	draft := &dto.TransactionDraft{}
	if err := json.Unmarshal(data, draft); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, []dto.ValidationError{{
				Field:    typeErr.Field,
				Message:  fmt.Sprintf("must be of type %s", typeErr.Type),
				Value:    payload[typeErr.Field],
				Location: "body",
			}}
		}
		return nil, []dto.ValidationError{{Field: "body", Message: "is not valid JSON", Location: "body"}}
	}

	draft.Kind = kind
	draft.Amount = json.Number(amountRaw)
	return draft, nil
}

// ValidateDraft runs every field rule and returns the accumulated
// violations in field order; nil means the draft passed.
func (val *Validator) ValidateDraft(draft *dto.TransactionDraft) []dto.ValidationError {
	err := val.v.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.ValidationError{{Field: "body", Message: "is invalid", Location: "body"}}
	}

	out := make([]dto.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, dto.ValidationError{
			Field:    fieldPath(fe),
			Message:  messageFor(fe),
			Value:    normalizeValue(fe.Value()),
			Location: "body",
		})
	}
	return out
}

func (val *Validator) validateAmountRange(fl validator.FieldLevel) bool {
	dec, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return dec.GreaterThanOrEqual(amountMin) && dec.LessThanOrEqual(amountMax)
}

// validateMaxDecimals checks the fractional digit count on the decimal
// string itself. Comparing floats would pass values like 10.123 that only
// round to two places, so the check never goes through float64.
func validateMaxDecimals(fl validator.FieldLevel) bool {
	dec, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return dec.Exponent() >= -2
}

func (val *Validator) validateDateWindow(fl validator.FieldLevel) bool {
	t, err := parseAnyDate(fl.Field().String())
	if err != nil {
		return false
	}
	now := val.now()
	return !t.Before(now.Add(-dateWindow)) && !t.After(now.Add(dateWindow))
}

// validateDraftStruct holds the cross-field rules that need the whole draft:
// category membership depends on the route's transaction kind.
func (val *Validator) validateDraftStruct(sl validator.StructLevel) {
	draft := sl.Current().Interface().(dto.TransactionDraft)
	if draft.Category != "" && !domain.ValidCategory(draft.Kind, draft.Category) {
		sl.ReportError(draft.Category, "category", "Category", "categoryset", string(draft.Kind))
	}
}

func parseAnyDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range inputDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// fieldPath returns the json path of the failing field relative to the
// draft, so nested failures read as tags[2] rather than a Go identifier.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when isRecurring is true"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "txamount":
		return fmt.Sprintf("must be a number between %s and %s", amountMin, amountMax)
	case "maxdecimals":
		return "must have at most 2 decimal places"
	case "txdate":
		return "must be a valid date within one year of today"
	case "categoryset":
		return fmt.Sprintf("is not a valid %s category", fe.Param())
	default:
		return "is invalid"
	}
}

// normalizeValue keeps rejected values JSON-serializable; a malformed
// json.Number would otherwise break response marshalling.
func normalizeValue(v any) any {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return v
}
