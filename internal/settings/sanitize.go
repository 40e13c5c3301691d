package settings

import (
	"regexp"
	"strings"
)

// BeforeSanitizeHook runs over the raw submitted mapping before any field is
// processed. Hooks may return a modified mapping.
type BeforeSanitizeHook interface {
	BeforeSanitize(raw Values) Values
}

// AfterSanitizeHook runs on each sanitized field value and may replace it.
type AfterSanitizeHook interface {
	AfterSanitize(f Field, name string, value any) any
}

// Type dispatch for sanitization. Types without an entry (and unknown types)
// fall back to text handling. Group is handled structurally in Sanitize, not
// here.
var sanitizeFuncs = map[FieldType]SanitizeFunc{
	TypeText:     sanitizeTextValue,
	TypeTextarea: sanitizeTextareaValue,
	TypeNumber:   sanitizeMediaValue,
	TypeMedia:    sanitizeMediaValue,
	TypeColor:    sanitizeColorValue,
	TypeSelect:   sanitizeSelectValue,
	TypeRadio:    sanitizeSelectValue,
	TypeSwitch:   sanitizeSwitchValue,
	TypeCheckbox: sanitizeSwitchValue,
}

// Sanitizer cleans raw submitted settings against the catalog. Malformed
// input never fails: every rule substitutes a safe value or the field
// default, so a save can only fail at the storage layer.
type Sanitizer struct {
	catalog *Catalog
	before  []BeforeSanitizeHook
	after   []AfterSanitizeHook
}

// NewSanitizer returns a sanitizer over the given catalog.
func NewSanitizer(catalog *Catalog) *Sanitizer {
	return &Sanitizer{catalog: catalog}
}

// AddBeforeHook registers a hook run ahead of sanitization.
func (s *Sanitizer) AddBeforeHook(h BeforeSanitizeHook) {
	s.before = append(s.before, h)
}

// AddAfterHook registers a hook run on each sanitized value.
func (s *Sanitizer) AddAfterHook(h AfterSanitizeHook) {
	s.after = append(s.after, h)
}

// Sanitize cleans the raw mapping of a submitted settings form against every
// catalog field and returns the flat sanitized mapping. Rules:
//
//   - A key present in the input is always processed, even when its value is
//     "" or "0". Explicit clears (media removal submits an empty value) must
//     be persisted, not ignored.
//   - A key absent from the input is omitted from the output, so merging the
//     result over the stored blob keeps the previously stored value. The
//     catalog default still applies wherever the value is later read.
//   - Switches and media are the exceptions: unchecked checkboxes are never
//     submitted by HTML forms, so an absent switch key sanitizes to false,
//     and an absent media key sanitizes to zero because its hidden input
//     always submits unless the attachment was cleared.
//   - Group fields recurse over their children, against a nested sub-mapping
//     when one was submitted under the group's key, otherwise against the
//     top-level mapping (how a rendered form submits them). Output is always
//     flat.
//   - Raw keys not covered by any catalog field pass through text-sanitized,
//     never silently dropped.
func (s *Sanitizer) Sanitize(raw Values) Values {
	for _, h := range s.before {
		raw = h.BeforeSanitize(raw)
	}

	sanitized := Values{}
	seen := map[string]bool{}

	for _, f := range s.catalog.Fields() {
		s.sanitizeField(f, raw, sanitized, seen)
	}

	// Defensive pass-through for keys no catalog field claims.
	for name, value := range raw {
		if seen[name] {
			continue
		}
		sanitized[name] = sanitizeTextValue(value, Field{})
	}

	return sanitized
}

func (s *Sanitizer) sanitizeField(f Field, raw, sanitized Values, seen map[string]bool) {
	name := f.ResolveName()
	if name == "" {
		return
	}
	seen[name] = true

	if f.Type == TypeGroup {
		scope := raw
		if sub, ok := raw[name].(map[string]any); ok {
			scope = Values(sub)
		}
		for _, child := range f.Fields {
			s.sanitizeField(child, scope, sanitized, seen)
		}
		return
	}

	value, present := raw[name]

	switch {
	case present:
		sanitized[name] = s.applyAfter(f, name, sanitizeValue(value, f))
	case f.Type == TypeSwitch || f.Type == TypeCheckbox:
		// Unchecked boxes do not appear in form submissions.
		sanitized[name] = s.applyAfter(f, name, false)
	case f.Type == TypeMedia:
		// The hidden input of a media control always submits, so absence
		// means the attachment was cleared.
		sanitized[name] = s.applyAfter(f, name, 0)
	}
}

func (s *Sanitizer) applyAfter(f Field, name string, value any) any {
	for _, h := range s.after {
		value = h.AfterSanitize(f, name, value)
	}
	return value
}

// sanitizeValue dispatches on the field type, honoring a per-field override
// first and falling back to text for types without a rule.
func sanitizeValue(value any, f Field) any {
	if f.Sanitize != nil {
		return f.Sanitize(value, f)
	}
	if fn, ok := sanitizeFuncs[f.Type]; ok {
		return fn(value, f)
	}
	return sanitizeTextValue(value, f)
}

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	hexColorExact  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	controlPattern = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
)

func sanitizeTextValue(value any, _ Field) any {
	s := toString(value)
	s = tagPattern.ReplaceAllString(s, "")
	s = controlPattern.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// sanitizeTextareaValue strips markup like text but keeps line breaks.
func sanitizeTextareaValue(value any, _ Field) any {
	s := toString(value)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = controlPattern.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimLeft(line, " \t"), " \t")
	}
	return strings.Join(lines, "\n")
}

// sanitizeMediaValue coerces to a non-negative integer. Empty string, nil and
// false all become zero so that remove-upload actions, which submit an empty
// value, clear the stored attachment.
func sanitizeMediaValue(value any, _ Field) any {
	return toInt(value)
}

// sanitizeColorValue accepts 3- or 6-digit hex colors and substitutes the
// field default for anything else.
func sanitizeColorValue(value any, f Field) any {
	s := strings.TrimSpace(toString(value))
	if hexColorExact.MatchString(s) {
		return s
	}
	if f.Default != nil {
		return f.Default
	}
	return ""
}

// sanitizeSelectValue only accepts values in the enumerated option set.
func sanitizeSelectValue(value any, f Field) any {
	s := toString(value)
	if f.OptionValue(s) {
		return s
	}
	if f.Default != nil {
		return f.Default
	}
	return ""
}

func sanitizeSwitchValue(value any, _ Field) any {
	return toBool(value)
}
