package validator

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Custom struct-level tags and their messages.
const (
	tagOptionsRequired = "options_required"
	tagOptionsNone     = "options_none"
	tagSingleCorrect   = "single_correct"
	tagAnyCorrect      = "any_correct"
)

var customMessages = map[string]string{
	tagOptionsRequired: "{0} must contain at least one option for multiple-choice questions",
	tagOptionsNone:     "{0} must be empty for free-text questions",
	tagSingleCorrect:   "{0} must have exactly one correct option for mcq-single",
	tagAnyCorrect:      "{0} must have at least one correct option for mcq-multiple",
}

var (
	// trans is the English translator for request binding errors.
	trans = newTranslator()

	// domain validates entities using `validate` struct tags.
	domain      *govalidator.Validate
	domainTrans = newTranslator()
)

func init() {
	domain = govalidator.New(govalidator.WithRequiredStructEnabled())
	configure(domain, domainTrans)
	domain.RegisterStructValidation(questionStructLevel, model.Question{})
	for tag, text := range customMessages {
		registerTranslation(domain, domainTrans, tag, text)
	}
}

// Setup registers the validator with English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		configure(v, trans)
	}
}

// newTranslator returns a fresh English translator. Each validator instance
// needs its own, translations cannot be registered twice on one translator.
func newTranslator() ut.Translator {
	enLocale := en.New()
	t, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	return t
}

// configure uses JSON tag names for field names and registers English translations.
func configure(v *govalidator.Validate, t ut.Translator) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(v, t)
}

func registerTranslation(v *govalidator.Validate, t ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(
		tag, t,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe govalidator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// questionStructLevel enforces the option invariants of each question type.
func questionStructLevel(sl govalidator.StructLevel) {
	q := sl.Current().Interface().(model.Question)

	if !q.Type.IsMCQ() {
		if len(q.Options) > 0 {
			sl.ReportError(q.Options, "options", "Options", tagOptionsNone, "")
		}
		return
	}

	if len(q.Options) == 0 {
		sl.ReportError(q.Options, "options", "Options", tagOptionsRequired, "")
		return
	}

	correct := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			correct++
		}
	}

	switch {
	case q.Type == model.QuestionTypeMCQSingle && correct != 1:
		sl.ReportError(q.Options, "options", "Options", tagSingleCorrect, "")
	case q.Type == model.QuestionTypeMCQMultiple && correct == 0:
		sl.ReportError(q.Options, "options", "Options", tagAnyCorrect, "")
	}
}

// Struct validates a domain entity and returns a *model.ValidationError
// carrying translated field messages, or nil.
func Struct(v interface{}) error {
	err := domain.Struct(v)
	if err == nil {
		return nil
	}
	return &model.ValidationError{Fields: translate(err, domainTrans)}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	return translate(err, trans)
}

func translate(err error, t ut.Translator) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = fe.Translate(t)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// fieldPath strips struct names from the namespace, e.g.
// "Question.options[1].text" becomes "options[1].text" and
// "RegisterCollegeRequest.CollegeRequest.name" becomes "name".
// JSON names are lower camel case, struct names are exported.
func fieldPath(fe govalidator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

// Request validates a request payload against its `binding` tags the way
// Gin does while binding. Returns nil or translated field messages.
func Request(v interface{}) map[string]string {
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
