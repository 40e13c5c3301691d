package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorField(def string) Field {
	return Field{ID: "primary_color", Type: TypeColor, Default: def}
}

func TestSanitizeColor(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"six digit hex", "#667eea", "#667eea"},
		{"three digit hex", "#abc", "#abc"},
		{"uppercase hex", "#AABBCC", "#AABBCC"},
		{"surrounding whitespace", "  #123456  ", "#123456"},
		{"missing hash", "667eea", "#000000"},
		{"too short", "#ab", "#000000"},
		{"non hex characters", "#zzzzzz", "#000000"},
		{"empty", "", "#000000"},
		{"script injection", "<script>", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeColorValue(tt.input, colorField("#000000")))
		})
	}
}

func TestSanitizeSelect(t *testing.T) {
	f := Field{
		ID:      "theme",
		Type:    TypeSelect,
		Default: "modern",
		Options: []Option{
			{Value: "modern", Label: "Modern"},
			{Value: "flat", Label: "Flat"},
		},
	}

	assert.Equal(t, "flat", sanitizeSelectValue("flat", f))
	assert.Equal(t, "modern", sanitizeSelectValue("bogus", f))
	assert.Equal(t, "modern", sanitizeSelectValue("", f))
	assert.Equal(t, "modern", sanitizeSelectValue("Flat", f), "option labels are not values")
}

func TestSanitizeMedia(t *testing.T) {
	f := Field{ID: "logo_id", Type: TypeMedia, Default: 0}

	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"numeric string", "42", 42},
		{"empty string clears", "", 0},
		{"zero string clears", "0", 0},
		{"nil clears", nil, 0},
		{"false clears", false, 0},
		{"negative collapses to zero", "-5", 0},
		{"garbage collapses to zero", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeMediaValue(tt.input, f))
		})
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "INV-", sanitizeTextValue("  INV-  ", Field{}))
	assert.Equal(t, "hello world", sanitizeTextValue("hello\n\nworld", Field{}))
	assert.Equal(t, "alert(1)", sanitizeTextValue("<script>alert(1)</script>", Field{}))
	assert.Equal(t, "", sanitizeTextValue(nil, Field{}))
}

func TestSanitizeTextareaKeepsLineBreaks(t *testing.T) {
	got := sanitizeTextareaValue("Line one  \r\nLine <b>two</b>", Field{})
	assert.Equal(t, "Line one\nLine two", got)
}

func TestSanitizeSubmittedVsAbsent(t *testing.T) {
	catalog := DefaultCatalog()
	s := NewSanitizer(catalog)

	t.Run("submitted empty media is persisted as zero", func(t *testing.T) {
		out := s.Sanitize(Values{"logo_id": ""})
		require.Contains(t, out, "logo_id")
		assert.Equal(t, 0, out["logo_id"])
	})

	t.Run("absent media with previously nonzero value falls to default zero", func(t *testing.T) {
		out := s.Sanitize(Values{})
		require.Contains(t, out, "logo_id")
		assert.Equal(t, 0, out["logo_id"])
	})

	t.Run("absent switch sanitizes to false even with a true default", func(t *testing.T) {
		out := s.Sanitize(Values{})
		require.Contains(t, out, "show_field_first_name")
		assert.Equal(t, false, out["show_field_first_name"])
	})

	t.Run("present switch with truthy value sanitizes to true", func(t *testing.T) {
		out := s.Sanitize(Values{"show_field_order_note": "1"})
		assert.Equal(t, true, out["show_field_order_note"])
	})

	t.Run("absent text is omitted so stored values survive a merge", func(t *testing.T) {
		out := s.Sanitize(Values{})
		assert.NotContains(t, out, "invoice_prefix")
		assert.NotContains(t, out, "address")
		assert.NotContains(t, out, "title")
	})

	t.Run("absent select is omitted", func(t *testing.T) {
		out := s.Sanitize(Values{"title": "Tax Invoice"})
		assert.NotContains(t, out, "theme")
		assert.NotContains(t, out, "date_format")
	})
}

func TestSanitizeGroupNestedSubmission(t *testing.T) {
	s := NewSanitizer(DefaultCatalog())

	out := s.Sanitize(Values{
		"fields": map[string]any{
			"show_field_phone": "1",
		},
	})

	assert.Equal(t, true, out["show_field_phone"])
	assert.NotContains(t, out, "fields", "group output is flattened")
	assert.Equal(t, false, out["show_field_email"], "sibling switches absent from the sub-mapping are off")
}

func TestSanitizeUnknownKeysPassThrough(t *testing.T) {
	s := NewSanitizer(DefaultCatalog())

	out := s.Sanitize(Values{"third_party_key": " <i>kept</i> "})

	assert.Equal(t, "kept", out["third_party_key"])
}

func TestSanitizePrefixSubstitutionScenario(t *testing.T) {
	s := NewSanitizer(DefaultCatalog())

	out := s.Sanitize(Values{
		"invoice_prefix": "FA-",
		"theme":          "bogus",
	})

	assert.Equal(t, "FA-", out["invoice_prefix"])
	assert.Equal(t, "modern", out["theme"])
}

type upperAfterHook struct{ target string }

func (h upperAfterHook) AfterSanitize(_ Field, name string, value any) any {
	if name == h.target {
		if s, ok := value.(string); ok {
			return s + "!"
		}
	}
	return value
}

type injectBeforeHook struct{}

func (injectBeforeHook) BeforeSanitize(raw Values) Values {
	raw["title"] = "Injected"
	return raw
}

func TestSanitizeHooks(t *testing.T) {
	s := NewSanitizer(DefaultCatalog())
	s.AddBeforeHook(injectBeforeHook{})
	s.AddAfterHook(upperAfterHook{target: "invoice_prefix"})

	out := s.Sanitize(Values{"invoice_prefix": "INV-"})

	assert.Equal(t, "INV-!", out["invoice_prefix"])
	assert.Equal(t, "Injected", out["title"])
}

func TestSanitizePerFieldOverride(t *testing.T) {
	catalog := &Catalog{Tabs: []Tab{{
		ID: "t",
		Fields: []Field{{
			ID:   "font_ttf_id",
			Type: TypeCustom,
			Sanitize: func(value any, _ Field) any {
				return toInt(value)
			},
		}},
	}}}

	out := NewSanitizer(catalog).Sanitize(Values{"font_ttf_id": "7"})

	assert.Equal(t, 7, out["font_ttf_id"])
}

func TestMerge(t *testing.T) {
	stored := Values{"invoice_prefix": "INV-", "logo_id": 9, "keep": "me"}
	submitted := Values{"invoice_prefix": "FA-", "logo_id": 0}

	merged := Merge(stored, submitted)

	assert.Equal(t, "FA-", merged["invoice_prefix"])
	assert.Equal(t, 0, merged["logo_id"], "explicit empties win")
	assert.Equal(t, "me", merged["keep"])
	assert.Equal(t, "INV-", stored["invoice_prefix"], "inputs are not mutated")
}

func TestResolveName(t *testing.T) {
	assert.Equal(t, "show_field_phone", Field{ID: "phone", Name: "show_field_phone", Prefix: "x_"}.ResolveName())
	assert.Equal(t, "x_phone", Field{ID: "phone", Prefix: "x_"}.ResolveName())
	assert.Equal(t, "phone", Field{ID: "phone"}.ResolveName())
}
