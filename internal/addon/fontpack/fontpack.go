// Package fontpack is the built-in addon providing the custom font upload
// fields on the Theme tab. It installs its field renderer when loaded or
// activated, and removes it again on deactivation.
package fontpack

import (
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/GoStoreInvoice/GoStoreInvoice/internal/addon"
	"github.com/GoStoreInvoice/GoStoreInvoice/internal/settings"
)

// Slug identifies this addon in the registry.
const Slug = "fontpack"

// CallbackName is the custom renderer name the catalog's font fields declare.
const CallbackName = "font_upload"

// Addon wires the font upload renderer into the settings framework.
type Addon struct {
	renderer *settings.Renderer
	media    settings.MediaResolver
}

// New returns the fontpack addon. media resolves uploaded font attachment
// ids to URLs and may be nil.
func New(renderer *settings.Renderer, media settings.MediaResolver) *Addon {
	return &Addon{renderer: renderer, media: media}
}

// Descriptor returns the registry metadata of this addon.
func (a *Addon) Descriptor() addon.Descriptor {
	return addon.Descriptor{
		Slug:        Slug,
		Name:        "Font Pack",
		Version:     "1.0.0",
		Description: "Custom font uploads (TTF, WOFF, WOFF2, EOT, SVG) for invoice documents.",
		Author:      "GoStoreInvoice",
	}
}

// AddonLoaded installs the renderer when the addon was already active at
// startup.
func (a *Addon) AddonLoaded(slug string, _ addon.Descriptor) {
	if slug == Slug {
		a.install()
	}
}

// AddonActivated installs the renderer on activation.
func (a *Addon) AddonActivated(slug string, _ addon.Descriptor) {
	if slug == Slug {
		a.install()
	}
}

// AddonDeactivated removes the renderer so font fields stop rendering.
func (a *Addon) AddonDeactivated(slug string) {
	if slug == Slug {
		a.renderer.UnregisterCustom(CallbackName)
	}
}

func (a *Addon) install() {
	a.renderer.RegisterCustom(CallbackName, a.renderField)
}

// renderField produces the upload control for one font format: the format
// label, a preview of the current file, the hidden id input and the upload
// button.
func (a *Addon) renderField(f settings.Field, values settings.Values, _ string) template.HTML {
	name := f.ResolveName()
	fontID := values.Int(name, 0)

	url := ""
	if fontID > 0 && a.media != nil {
		url = a.media.URL(fontID)
	}

	format := strings.ToUpper(f.Format)
	esc := template.HTMLEscapeString

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="invoice-font-upload-item"><label class="invoice-label-small">%s</label>`, esc(format))
	b.WriteString(`<div class="invoice-font-upload-wrapper">`)
	if url != "" {
		fmt.Fprintf(&b,
			`<div class="invoice-font-preview"><span class="invoice-font-name">%s</span>`+
				`<button type="button" class="invoice-btn-remove-font" data-format=%q>Remove</button></div>`,
			esc(path.Base(url)), esc(f.Format))
	}
	fmt.Fprintf(&b,
		`<input type="hidden" name=%q id="invoice_font_%s_id" value="%d" />`+
			`<button type="button" class="invoice-btn invoice-btn-secondary invoice-upload-font" data-format=%q data-accept=%q>Upload %s</button>`,
		esc(name), esc(f.Format), fontID, esc(f.Format), esc("."+f.Format), esc(format))
	b.WriteString(`</div></div>`)

	return template.HTML(b.String())
}
