// This file provides blueprint element constructors for the el package.
package el

import "github.com/weft-dev/weft/pkg/blueprint"

func Html(args ...any) *Blueprint {
	return blueprint.Node("html", args...)
}
func Head(args ...any) *Blueprint {
	return blueprint.Node("head", args...)
}
func Body(args ...any) *Blueprint {
	return blueprint.Node("body", args...)
}
func Title(args ...any) *Blueprint {
	return blueprint.Node("title", args...)
}
func Meta(args ...any) *Blueprint {
	return blueprint.Node("meta", args...)
}
func LinkEl(args ...any) *Blueprint {
	return blueprint.Node("link", args...)
}
func Base(args ...any) *Blueprint {
	return blueprint.Node("base", args...)
}
func Header(args ...any) *Blueprint {
	return blueprint.Node("header", args...)
}
func Footer(args ...any) *Blueprint {
	return blueprint.Node("footer", args...)
}
func Main(args ...any) *Blueprint {
	return blueprint.Node("main", args...)
}
func Nav(args ...any) *Blueprint {
	return blueprint.Node("nav", args...)
}
func Section(args ...any) *Blueprint {
	return blueprint.Node("section", args...)
}
func Article(args ...any) *Blueprint {
	return blueprint.Node("article", args...)
}
func Aside(args ...any) *Blueprint {
	return blueprint.Node("aside", args...)
}
func Address(args ...any) *Blueprint {
	return blueprint.Node("address", args...)
}
func H1(args ...any) *Blueprint {
	return blueprint.Node("h1", args...)
}
func H2(args ...any) *Blueprint {
	return blueprint.Node("h2", args...)
}
func H3(args ...any) *Blueprint {
	return blueprint.Node("h3", args...)
}
func H4(args ...any) *Blueprint {
	return blueprint.Node("h4", args...)
}
func H5(args ...any) *Blueprint {
	return blueprint.Node("h5", args...)
}
func H6(args ...any) *Blueprint {
	return blueprint.Node("h6", args...)
}
func Hgroup(args ...any) *Blueprint {
	return blueprint.Node("hgroup", args...)
}
func Div(args ...any) *Blueprint {
	return blueprint.Node("div", args...)
}
func P(args ...any) *Blueprint {
	return blueprint.Node("p", args...)
}
func Span(args ...any) *Blueprint {
	return blueprint.Node("span", args...)
}
func Pre(args ...any) *Blueprint {
	return blueprint.Node("pre", args...)
}
func Blockquote(args ...any) *Blueprint {
	return blueprint.Node("blockquote", args...)
}
func Ul(args ...any) *Blueprint {
	return blueprint.Node("ul", args...)
}
func Ol(args ...any) *Blueprint {
	return blueprint.Node("ol", args...)
}
func Li(args ...any) *Blueprint {
	return blueprint.Node("li", args...)
}
func Dl(args ...any) *Blueprint {
	return blueprint.Node("dl", args...)
}
func Dt(args ...any) *Blueprint {
	return blueprint.Node("dt", args...)
}
func Dd(args ...any) *Blueprint {
	return blueprint.Node("dd", args...)
}
func Hr(args ...any) *Blueprint {
	return blueprint.Node("hr", args...)
}
func Figure(args ...any) *Blueprint {
	return blueprint.Node("figure", args...)
}
func Figcaption(args ...any) *Blueprint {
	return blueprint.Node("figcaption", args...)
}
func A(args ...any) *Blueprint {
	return blueprint.Node("a", args...)
}
func Strong(args ...any) *Blueprint {
	return blueprint.Node("strong", args...)
}
func Em(args ...any) *Blueprint {
	return blueprint.Node("em", args...)
}
func B(args ...any) *Blueprint {
	return blueprint.Node("b", args...)
}
func I(args ...any) *Blueprint {
	return blueprint.Node("i", args...)
}
func U(args ...any) *Blueprint {
	return blueprint.Node("u", args...)
}
func S(args ...any) *Blueprint {
	return blueprint.Node("s", args...)
}
func Small(args ...any) *Blueprint {
	return blueprint.Node("small", args...)
}
func Mark(args ...any) *Blueprint {
	return blueprint.Node("mark", args...)
}
func Sub(args ...any) *Blueprint {
	return blueprint.Node("sub", args...)
}
func Sup(args ...any) *Blueprint {
	return blueprint.Node("sup", args...)
}
func Code(args ...any) *Blueprint {
	return blueprint.Node("code", args...)
}
func Kbd(args ...any) *Blueprint {
	return blueprint.Node("kbd", args...)
}
func Samp(args ...any) *Blueprint {
	return blueprint.Node("samp", args...)
}
func Var(args ...any) *Blueprint {
	return blueprint.Node("var", args...)
}
func Abbr(args ...any) *Blueprint {
	return blueprint.Node("abbr", args...)
}
func Time_(args ...any) *Blueprint {
	return blueprint.Node("time", args...)
}
func Cite(args ...any) *Blueprint {
	return blueprint.Node("cite", args...)
}
func Q(args ...any) *Blueprint {
	return blueprint.Node("q", args...)
}
func Dfn(args ...any) *Blueprint {
	return blueprint.Node("dfn", args...)
}
func Bdi(args ...any) *Blueprint {
	return blueprint.Node("bdi", args...)
}
func Bdo(args ...any) *Blueprint {
	return blueprint.Node("bdo", args...)
}
func DataElement(args ...any) *Blueprint {
	return blueprint.Node("data", args...)
}
func Br(args ...any) *Blueprint {
	return blueprint.Node("br", args...)
}
func Wbr(args ...any) *Blueprint {
	return blueprint.Node("wbr", args...)
}
func Form(args ...any) *Blueprint {
	return blueprint.Node("form", args...)
}
func Input(args ...any) *Blueprint {
	return blueprint.Node("input", args...)
}
func Textarea(args ...any) *Blueprint {
	return blueprint.Node("textarea", args...)
}
func Select(args ...any) *Blueprint {
	return blueprint.Node("select", args...)
}
func Option(args ...any) *Blueprint {
	return blueprint.Node("option", args...)
}
func Optgroup(args ...any) *Blueprint {
	return blueprint.Node("optgroup", args...)
}
func Button(args ...any) *Blueprint {
	return blueprint.Node("button", args...)
}
func Label(args ...any) *Blueprint {
	return blueprint.Node("label", args...)
}
func Fieldset(args ...any) *Blueprint {
	return blueprint.Node("fieldset", args...)
}
func Legend(args ...any) *Blueprint {
	return blueprint.Node("legend", args...)
}
func Datalist(args ...any) *Blueprint {
	return blueprint.Node("datalist", args...)
}
func OutputEl(args ...any) *Blueprint {
	return blueprint.Node("output", args...)
}
func Progress(args ...any) *Blueprint {
	return blueprint.Node("progress", args...)
}
func Meter(args ...any) *Blueprint {
	return blueprint.Node("meter", args...)
}
func Table(args ...any) *Blueprint {
	return blueprint.Node("table", args...)
}
func Thead(args ...any) *Blueprint {
	return blueprint.Node("thead", args...)
}
func Tbody(args ...any) *Blueprint {
	return blueprint.Node("tbody", args...)
}
func Tfoot(args ...any) *Blueprint {
	return blueprint.Node("tfoot", args...)
}
func Tr(args ...any) *Blueprint {
	return blueprint.Node("tr", args...)
}
func Th(args ...any) *Blueprint {
	return blueprint.Node("th", args...)
}
func Td(args ...any) *Blueprint {
	return blueprint.Node("td", args...)
}
func Caption(args ...any) *Blueprint {
	return blueprint.Node("caption", args...)
}
func Colgroup(args ...any) *Blueprint {
	return blueprint.Node("colgroup", args...)
}
func Col(args ...any) *Blueprint {
	return blueprint.Node("col", args...)
}
func Img(args ...any) *Blueprint {
	return blueprint.Node("img", args...)
}
func Picture(args ...any) *Blueprint {
	return blueprint.Node("picture", args...)
}
func Source(args ...any) *Blueprint {
	return blueprint.Node("source", args...)
}
func Video(args ...any) *Blueprint {
	return blueprint.Node("video", args...)
}
func Audio(args ...any) *Blueprint {
	return blueprint.Node("audio", args...)
}
func Track(args ...any) *Blueprint {
	return blueprint.Node("track", args...)
}
func Iframe(args ...any) *Blueprint {
	return blueprint.Node("iframe", args...)
}
func Embed(args ...any) *Blueprint {
	return blueprint.Node("embed", args...)
}
func ObjectEl(args ...any) *Blueprint {
	return blueprint.Node("object", args...)
}
func Canvas(args ...any) *Blueprint {
	return blueprint.Node("canvas", args...)
}
func Svg(args ...any) *Blueprint {
	return blueprint.Node("svg", args...)
}

// SVG child elements
func Circle(args ...any) *Blueprint {
	return blueprint.Node("circle", args...)
}
func Ellipse(args ...any) *Blueprint {
	return blueprint.Node("ellipse", args...)
}
func Line(args ...any) *Blueprint {
	return blueprint.Node("line", args...)
}
func Path(args ...any) *Blueprint {
	return blueprint.Node("path", args...)
}
func Polygon(args ...any) *Blueprint {
	return blueprint.Node("polygon", args...)
}
func Polyline(args ...any) *Blueprint {
	return blueprint.Node("polyline", args...)
}
func Rect(args ...any) *Blueprint {
	return blueprint.Node("rect", args...)
}
func G(args ...any) *Blueprint {
	return blueprint.Node("g", args...)
}
func Defs(args ...any) *Blueprint {
	return blueprint.Node("defs", args...)
}
func Use(args ...any) *Blueprint {
	return blueprint.Node("use", args...)
}

func Details(args ...any) *Blueprint {
	return blueprint.Node("details", args...)
}
func Summary(args ...any) *Blueprint {
	return blueprint.Node("summary", args...)
}
func Dialog(args ...any) *Blueprint {
	return blueprint.Node("dialog", args...)
}
func Menu(args ...any) *Blueprint {
	return blueprint.Node("menu", args...)
}
func Noscript(args ...any) *Blueprint {
	return blueprint.Node("noscript", args...)
}
func Template(args ...any) *Blueprint {
	return blueprint.Node("template", args...)
}
func Slot(args ...any) *Blueprint {
	return blueprint.Node("slot", args...)
}
func StyleEl(args ...any) *Blueprint {
	return blueprint.Node("style", args...)
}
func CustomElement(tag string, args ...any) *Blueprint {
	return blueprint.Node(tag, args...)
}
