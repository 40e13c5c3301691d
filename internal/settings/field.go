// Package settings implements the declarative settings framework behind the
// admin settings pages: a field catalog grouped into tabs, a type-driven
// sanitizer applied to submitted values, and a type-driven renderer producing
// form control fragments.
package settings

// FieldType identifies the control and sanitization rules of a field.
type FieldType string

// Supported field types. Unrecognized types fall back to text handling.
const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeNumber   FieldType = "number"
	TypeSelect   FieldType = "select"
	TypeRadio    FieldType = "radio"
	TypeColor    FieldType = "color"
	TypeSwitch   FieldType = "switch"
	TypeCheckbox FieldType = "checkbox"
	TypeMedia    FieldType = "media"
	TypeGroup    FieldType = "group"
	TypeCustom   FieldType = "custom"
)

// Option is one enumerated choice of a select or radio field. Options keep
// declaration order when rendered.
type Option struct {
	Value string
	Label string
}

// SanitizeFunc cleans one raw value according to the rules of a field type.
// The type dispatch table and per-field overrides both use it.
type SanitizeFunc func(value any, f Field) any

// Field describes one configurable setting: its control type, default and
// the metadata the renderer needs to produce a form control for it.
type Field struct {
	ID          string
	Type        FieldType
	Label       string
	Description string
	Placeholder string
	Default     any
	Options     []Option
	Fields      []Field // children of a group field
	Name        string  // overrides the storage key when set
	Prefix      string  // prepended to ID when Name is unset
	Required    bool
	Rows        int    // textarea rows
	Format      string // file format hint for custom upload fields
	ButtonText  string
	RemoveText  string
	Callback    string       // registered custom renderer, for TypeCustom
	Sanitize    SanitizeFunc // optional per-field sanitizer override
}

// ResolveName returns the storage key of a field. The same rule is applied by
// the sanitizer and the renderer so they always agree on a field's key:
// an explicit Name wins, then Prefix+ID, then the bare ID.
func (f Field) ResolveName() string {
	if f.Name != "" {
		return f.Name
	}
	if f.Prefix != "" {
		return f.Prefix + f.ID
	}
	return f.ID
}

// OptionValue reports whether v is one of the field's enumerated options.
func (f Field) OptionValue(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}
