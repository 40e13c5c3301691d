package settings

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// MediaResolver turns a stored attachment id into a URL for previews. A zero
// id or unknown attachment resolves to the empty string.
type MediaResolver interface {
	URL(id int) string
}

// CustomRenderFunc renders a custom-typed field. It receives the field, the
// full current value mapping and the storage key of the settings blob, and
// returns the finished fragment. This is the extension point for third-party
// field types.
type CustomRenderFunc func(f Field, values Values, optionName string) template.HTML

// renderFunc produces the form control fragment for one field type.
type renderFunc func(r *Renderer, f Field, values Values) template.HTML

// Type dispatch for rendering. Types without an entry (and unknown types)
// fall back to the plain text control. Populated in init because renderGroup
// recurses through Render, which reads the map.
var renderFuncs map[FieldType]renderFunc //nolint:gochecknoglobals

func init() { //nolint: gochecknoinits
	renderFuncs = map[FieldType]renderFunc{
		TypeText:     renderText,
		TypeTextarea: renderTextarea,
		TypeNumber:   renderNumber,
		TypeSelect:   renderSelect,
		TypeRadio:    renderRadio,
		TypeColor:    renderColor,
		TypeSwitch:   renderSwitch,
		TypeCheckbox: renderSwitch,
		TypeMedia:    renderMedia,
		TypeGroup:    renderGroup,
		TypeCustom:   renderCustom,
	}
}

// Renderer turns catalog fields plus current values into form control
// fragments. Fragments are built with explicit escaping and returned as
// template.HTML so page templates can embed them directly.
type Renderer struct {
	optionName string
	media      MediaResolver

	mu     sync.RWMutex
	custom map[string]CustomRenderFunc
}

// NewRenderer returns a renderer. optionName is the storage key of the
// settings blob, handed through to custom field callbacks. media may be nil
// when no preview URLs are available.
func NewRenderer(optionName string, media MediaResolver) *Renderer {
	return &Renderer{
		optionName: optionName,
		media:      media,
		custom:     map[string]CustomRenderFunc{},
	}
}

// RegisterCustom registers the renderer callback for custom fields declaring
// the given callback name. Later registrations replace earlier ones.
func (r *Renderer) RegisterCustom(name string, fn CustomRenderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[name] = fn
}

// UnregisterCustom removes a previously registered callback. Custom fields
// pointing at it render nothing until a new callback is registered.
func (r *Renderer) UnregisterCustom(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.custom, name)
}

// Render produces the form control for one field, dispatching on its type
// with a text fallback for unknown types.
func (r *Renderer) Render(f Field, values Values) template.HTML {
	fn, ok := renderFuncs[f.Type]
	if !ok {
		fn = renderText
	}
	return fn(r, f, values)
}

// fieldValue resolves the current value of a field: the stored value when
// present, else the catalog default.
func fieldValue(f Field, values Values) any {
	if v, ok := values[f.ResolveName()]; ok {
		return v
	}
	return f.Default
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func openGroup(b *strings.Builder, f Field) {
	b.WriteString(`<div class="invoice-form-group">`)
	if f.Label != "" {
		b.WriteString(`<label class="invoice-label">` + esc(f.Label))
		if f.Required {
			b.WriteString(`<span class="invoice-label-required">*</span>`)
		}
		b.WriteString(`</label>`)
	}
}

func closeGroup(b *strings.Builder, f Field) {
	if f.Description != "" {
		b.WriteString(`<p class="invoice-description">` + esc(f.Description) + `</p>`)
	}
	b.WriteString(`</div>`)
}

func renderText(r *Renderer, f Field, values Values) template.HTML {
	var b strings.Builder
	openGroup(&b, f)
	required := ""
	if f.Required {
		required = " required"
	}
	fmt.Fprintf(&b,
		`<input type="text" name=%q value=%q class="invoice-input" placeholder=%q%s />`,
		esc(f.ResolveName()), esc(toString(fieldValue(f, values))), esc(f.Placeholder), required)
	closeGroup(&b, f)
	return template.HTML(b.String())
}

func renderNumber(r *Renderer, f Field, values Values) template.HTML {
	var b strings.Builder
	openGroup(&b, f)
	fmt.Fprintf(&b,
		`<input type="number" name=%q value="%d" class="invoice-input" min="0" />`,
		esc(f.ResolveName()), toInt(fieldValue(f, values)))
	closeGroup(&b, f)
	return template.HTML(b.String())
}

func renderTextarea(r *Renderer, f Field, values Values) template.HTML {
	rows := f.Rows
	if rows == 0 {
		rows = 4
	}
	var b strings.Builder
	openGroup(&b, f)
	fmt.Fprintf(&b,
		`<textarea name=%q class="invoice-textarea" rows="%d" placeholder=%q>%s</textarea>`,
		esc(f.ResolveName()), rows, esc(f.Placeholder), esc(toString(fieldValue(f, values))))
	closeGroup(&b, f)
	return template.HTML(b.String())
}

func renderSelect(r *Renderer, f Field, values Values) template.HTML {
	current := toString(fieldValue(f, values))
	var b strings.Builder
	openGroup(&b, f)
	fmt.Fprintf(&b, `<select name=%q id=%q class="invoice-select">`, esc(f.ResolveName()), esc(f.ID))
	for _, o := range f.Options {
		selected := ""
		if o.Value == current {
			selected = " selected"
		}
		fmt.Fprintf(&b, `<option value=%q%s>%s</option>`, esc(o.Value), selected, esc(o.Label))
	}
	b.WriteString(`</select>`)
	closeGroup(&b, f)
	return template.HTML(b.String())
}

func renderRadio(r *Renderer, f Field, values Values) template.HTML {
	current := toString(fieldValue(f, values))
	var b strings.Builder
	openGroup(&b, f)
	for _, o := range f.Options {
		checked := ""
		if o.Value == current {
			checked = " checked"
		}
		fmt.Fprintf(&b,
			`<label class="invoice-radio"><input type="radio" name=%q value=%q%s /> %s</label>`,
			esc(f.ResolveName()), esc(o.Value), checked, esc(o.Label))
	}
	closeGroup(&b, f)
	return template.HTML(b.String())
}

func renderColor(r *Renderer, f Field, values Values) template.HTML {
	current := toString(fieldValue(f, values))
	var b strings.Builder
	openGroup(&b, f)
	fmt.Fprintf(&b,
		`<div class="invoice-color-picker-wrapper">`+
			`<input type="color" name=%q id=%q value=%q class="invoice-color-picker" />`+
			`<input type="text" id="%s_value" value=%q class="invoice-color-value" readonly /></div>`,
		esc(f.ResolveName()), esc(f.ID), esc(current), esc(f.ID), esc(current))
	closeGroup(&b, f)
	return template.HTML(b.String())
}

func renderSwitch(r *Renderer, f Field, values Values) template.HTML {
	checked := ""
	if toBool(fieldValue(f, values)) {
		checked = " checked"
	}
	var b strings.Builder
	b.WriteString(`<div class="invoice-field-item"><div class="invoice-field-info">`)
	if f.Label != "" {
		b.WriteString(`<span class="invoice-field-label">` + esc(f.Label) + `</span>`)
	}
	if f.Description != "" {
		b.WriteString(`<span class="invoice-field-description">` + esc(f.Description) + `</span>`)
	}
	b.WriteString(`</div>`)
	fmt.Fprintf(&b,
		`<label class="invoice-switch"><input type="checkbox" name=%q value="1"%s />`+
			`<span class="invoice-switch-slider"></span></label></div>`,
		esc(f.ResolveName()), checked)
	return template.HTML(b.String())
}

// renderMedia emits a hidden input holding the attachment id plus upload and
// remove controls. The remove action clears the hidden input client-side so
// the form submits an empty value.
func renderMedia(r *Renderer, f Field, values Values) template.HTML {
	id := toInt(fieldValue(f, values))
	url := ""
	if id > 0 && r.media != nil {
		url = r.media.URL(id)
	}

	buttonText := f.ButtonText
	if buttonText == "" {
		buttonText = "Upload"
	}
	removeText := f.RemoveText
	if removeText == "" {
		removeText = "Remove"
	}

	var b strings.Builder
	openGroup(&b, f)
	fmt.Fprintf(&b, `<div class="invoice-media-upload" data-field=%q>`, esc(f.ID))
	if url != "" {
		fmt.Fprintf(&b,
			`<div class="invoice-media-preview"><img src=%q alt=%q />`+
				`<button type="button" class="invoice-btn invoice-btn-secondary invoice-media-remove">%s</button></div>`,
			esc(url), esc(f.Label), esc(removeText))
	}
	fmt.Fprintf(&b,
		`<input type="hidden" name=%q id=%q value="%d" />`+
			`<button type="button" class="invoice-btn invoice-btn-secondary invoice-media-select">%s</button></div>`,
		esc(f.ResolveName()), esc(f.ID), id, esc(buttonText))
	closeGroup(&b, f)
	return template.HTML(b.String())
}

// renderGroup renders a labeled container and recurses into each child.
func renderGroup(r *Renderer, f Field, values Values) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="invoice-form-group">`)
	if f.Label != "" {
		b.WriteString(`<label class="invoice-label">` + esc(f.Label) + `</label>`)
	}
	if f.Description != "" {
		b.WriteString(`<p class="invoice-description">` + esc(f.Description) + `</p>`)
	}
	b.WriteString(`<div class="invoice-fields-list">`)
	for _, child := range f.Fields {
		b.WriteString(string(r.Render(child, values)))
	}
	b.WriteString(`</div></div>`)
	return template.HTML(b.String())
}

// renderCustom delegates to the registered callback. A custom field with no
// registered callback renders nothing, mirroring an addon that was not
// activated.
func renderCustom(r *Renderer, f Field, values Values) template.HTML {
	r.mu.RLock()
	fn, ok := r.custom[f.Callback]
	r.mu.RUnlock()
	if !ok {
		return ""
	}
	return fn(f, values, r.optionName)
}
