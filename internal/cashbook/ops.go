package cashbook

// OpKind discriminates the draw primitives a renderer must support.
type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpRect
)

// Op is one absolutely positioned draw instruction. Coordinates follow the
// PDF convention: origin bottom-left, Y grows upward. Renderers translate
// as needed.
type Op struct {
	Kind OpKind

	// OpText
	Text  string
	X, Y  float64
	Size  float64
	Bold  bool
	Align Align

	// OpLine
	X2, Y2    float64
	Thickness float64

	// OpRect: X,Y is the lower-left corner.
	W, H float64
}

// Align positions text relative to X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Page is one rendered page of draw instructions.
type Page struct {
	Ops []Op
}

// Document is a finished report: fixed-size pages of draw instructions.
type Document struct {
	Width  float64
	Height float64
	Pages  []Page
}

type drawList struct {
	ops []Op
}

func (d *drawList) text(s string, x, y, size float64, bold bool, align Align) {
	if s == "" {
		return
	}
	d.ops = append(d.ops, Op{Kind: OpText, Text: s, X: x, Y: y, Size: size, Bold: bold, Align: align})
}

func (d *drawList) line(x1, y1, x2, y2, thickness float64) {
	d.ops = append(d.ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Thickness: thickness})
}

func (d *drawList) rect(x, y, w, h, thickness float64) {
	d.ops = append(d.ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Thickness: thickness})
}
