// This file provides attribute helpers for the el package.
package el

import (
	"strconv"
	"strings"
)

func ID(id string) Attr {
	return Attr{Key: "id", Value: id}
}
func Class(classes ...string) Attr {
	return Attr{Key: "class", Value: strings.Join(classes, " ")}
}

// StyleAttr sets the full inline style string. Style sets one property;
// the builder applies it through the host's style channel.
func StyleAttr(style string) Attr {
	return Attr{Key: "style", Value: style}
}
func Style(prop, value string) Attr {
	return Attr{Key: "style:" + prop, Value: value}
}
func Data(key, value string) Attr {
	return Attr{Key: "data-" + key, Value: value}
}
func Role(role string) Attr {
	return Attr{Key: "role", Value: role}
}
func TitleAttr(title string) Attr {
	return Attr{Key: "title", Value: title}
}
func Lang(lang string) Attr {
	return Attr{Key: "lang", Value: lang}
}
func TabIndex(index int) Attr {
	return Attr{Key: "tabindex", Value: strconv.Itoa(index)}
}
func Hidden(hidden bool) Attr {
	return Attr{Key: "hidden", Value: hidden}
}
func Disabled() Attr {
	return Attr{Key: "disabled", Value: true}
}
func Readonly() Attr {
	return Attr{Key: "readonly", Value: true}
}
func Required() Attr {
	return Attr{Key: "required", Value: true}
}
func Checked(checked bool) Attr {
	return Attr{Key: "checked", Value: checked}
}
func Selected(selected bool) Attr {
	return Attr{Key: "selected", Value: selected}
}
func Value(value any) Attr {
	return Attr{Key: "value", Value: value}
}
func PlaceholderAttr(text string) Attr {
	return Attr{Key: "placeholder", Value: text}
}
func Type(t string) Attr {
	return Attr{Key: "type", Value: t}
}
func Name(name string) Attr {
	return Attr{Key: "name", Value: name}
}
func For(id string) Attr {
	return Attr{Key: "for", Value: id}
}
func Href(url string) Attr {
	return Attr{Key: "href", Value: url}
}
func Target(target string) Attr {
	return Attr{Key: "target", Value: target}
}
func Rel(rel string) Attr {
	return Attr{Key: "rel", Value: rel}
}
func Download(filename string) Attr {
	return Attr{Key: "download", Value: filename}
}
func Src(url string) Attr {
	return Attr{Key: "src", Value: url}
}
func Alt(text string) Attr {
	return Attr{Key: "alt", Value: text}
}
func Width(w int) Attr {
	return Attr{Key: "width", Value: w}
}
func Height(h int) Attr {
	return Attr{Key: "height", Value: h}
}
func MaxLength(n int) Attr {
	return Attr{Key: "maxlength", Value: strconv.Itoa(n)}
}
func MinLength(n int) Attr {
	return Attr{Key: "minlength", Value: strconv.Itoa(n)}
}
func Min(v string) Attr {
	return Attr{Key: "min", Value: v}
}
func Max(v string) Attr {
	return Attr{Key: "max", Value: v}
}
func Step(v string) Attr {
	return Attr{Key: "step", Value: v}
}
func Pattern(regex string) Attr {
	return Attr{Key: "pattern", Value: regex}
}
func Autocomplete(mode string) Attr {
	return Attr{Key: "autocomplete", Value: mode}
}
func Autofocus() Attr {
	return Attr{Key: "autofocus", Value: true}
}
func Open(open bool) Attr {
	return Attr{Key: "open", Value: open}
}
func ContentEditable(editable bool) Attr {
	return Attr{Key: "contenteditable", Value: strconv.FormatBool(editable)}
}
func Spellcheck(check bool) Attr {
	return Attr{Key: "spellcheck", Value: strconv.FormatBool(check)}
}
func Draggable() Attr {
	return Attr{Key: "draggable", Value: "true"}
}

func AriaLabel(label string) Attr {
	return Attr{Key: "aria-label", Value: label}
}
func AriaHidden(hidden bool) Attr {
	return Attr{Key: "aria-hidden", Value: strconv.FormatBool(hidden)}
}
func AriaExpanded(expanded bool) Attr {
	return Attr{Key: "aria-expanded", Value: strconv.FormatBool(expanded)}
}
func AriaDescribedBy(id string) Attr {
	return Attr{Key: "aria-describedby", Value: id}
}
func AriaLabelledBy(id string) Attr {
	return Attr{Key: "aria-labelledby", Value: id}
}
func AriaLive(mode string) Attr {
	return Attr{Key: "aria-live", Value: mode}
}
func AriaControls(id string) Attr {
	return Attr{Key: "aria-controls", Value: id}
}
func AriaCurrent(value string) Attr {
	return Attr{Key: "aria-current", Value: value}
}
func AriaDisabled(disabled bool) Attr {
	return Attr{Key: "aria-disabled", Value: strconv.FormatBool(disabled)}
}
func AriaSelected(selected bool) Attr {
	return Attr{Key: "aria-selected", Value: strconv.FormatBool(selected)}
}
func AriaModal(modal bool) Attr {
	return Attr{Key: "aria-modal", Value: strconv.FormatBool(modal)}
}
func AriaBusy(busy bool) Attr {
	return Attr{Key: "aria-busy", Value: strconv.FormatBool(busy)}
}

// Key assigns the reconciliation key within a keyed sibling set.
func Key(key any) Attr {
	return Attr{Key: "key", Value: key}
}
