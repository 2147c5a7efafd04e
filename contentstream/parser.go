package contentstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/pagestream/core"
	"github.com/tsawler/pagestream/model"
)

// Parser turns raw content-stream bytes into typed operations.
//
// Content streams are postfix: operand values come first and are buffered
// until an operator arrives to consume them. A value-parse attempt that
// fails on an operator mnemonic is rewound and the same bytes are re-read
// as a raw operator token, which is how the two token languages share one
// byte stream.
type Parser struct {
	lexer  *core.Lexer
	parser *core.Parser

	// last is the endpoint of the most recent path segment, updated by
	// m, l, c, v and y. The curve shorthands need it to reconstruct their
	// implicit control points.
	last model.Point

	// compat is true inside a BX .. EX section, where unknown operators
	// are ignored instead of failing the parse.
	compat bool

	ops []Operation
}

// NewParser creates a parser over content-stream data. The data must
// already be decoded; apply stream filters before parsing.
func NewParser(data []byte) *Parser {
	lexer := core.NewLexer(data)
	return &Parser{
		lexer:  lexer,
		parser: core.NewParserFromLexer(lexer),
	}
}

// Parse is shorthand for NewParser(data).Parse().
func Parse(data []byte) ([]Operation, error) {
	return NewParser(data).Parse()
}

// ParseNext parses a further segment of the same logical stream. Content
// split across several stream parts behaves as one stream: a compatibility
// section left open in an earlier part stays open, the current path point
// carries into curve shorthands, and the returned slice holds the
// operations of every part parsed so far. Each part is still its own
// syntactic unit with its own boundary check.
func (p *Parser) ParseNext(data []byte) ([]Operation, error) {
	lexer := core.NewLexer(data)
	p.lexer = lexer
	p.parser = core.NewParserFromLexer(lexer)
	return p.Parse()
}

// Parse consumes the input and returns the operation sequence. Composite
// operators expand to their component operations (s to close and stroke,
// TD to leading and move, " to its four parts), so the result never
// contains a combined form.
//
// Operands left at the end of the data with no operator after them are
// dropped. A token that overruns the end of the data fails with
// ErrReadPastBoundary.
func (p *Parser) Parse() ([]Operation, error) {
	var operands []core.Object
	for {
		save := p.lexer.Pos()
		obj, err := p.parser.ParseObject()
		switch {
		case err == nil:
			operands = append(operands, obj)
		case errors.Is(err, io.EOF):
			return p.ops, nil
		default:
			p.lexer.SetPos(save)
			tok, err := p.lexer.ReadToken()
			if err != nil {
				return nil, err
			}
			if err := p.dispatch(string(tok.Value), operands); err != nil {
				return nil, err
			}
			operands = operands[:0]
		}

		switch {
		case p.lexer.Pos() > p.lexer.Len():
			return nil, fmt.Errorf("%w (position %d of %d)", ErrReadPastBoundary, p.lexer.Pos(), p.lexer.Len())
		case p.lexer.Pos() == p.lexer.Len():
			return p.ops, nil
		}
	}
}

// dispatch consumes the buffered operands for one operator and appends the
// resulting operations. Inside a compatibility section unknown operators
// are dropped along with their operands.
func (p *Parser) dispatch(op string, operands []core.Object) error {
	err := p.build(op, &args{items: operands})
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnknownOperator) {
		if p.compat {
			return nil
		}
		return err
	}
	return fmt.Errorf("operator %s: %w", op, err)
}

func (p *Parser) emit(ops ...Operation) {
	p.ops = append(p.ops, ops...)
}

// build maps one operator and its operands to operations. Cases are in
// alphabetical operator order. Operands beyond the ones an operator
// consumes are ignored.
func (p *Parser) build(op string, a *args) error {
	switch op {
	case "b":
		p.emit(OpClose{}, OpFillAndStroke{Winding: NonZero})
	case "B":
		p.emit(OpFillAndStroke{Winding: NonZero})
	case "b*":
		p.emit(OpClose{}, OpFillAndStroke{Winding: EvenOdd})
	case "B*":
		p.emit(OpFillAndStroke{Winding: EvenOdd})
	case "BDC":
		tag, err := a.name()
		if err != nil {
			return err
		}
		props, err := a.pop()
		if err != nil {
			return err
		}
		p.emit(OpBeginMarkedContent{Tag: tag, Properties: props})
	case "BI":
		img, err := parseInlineImage(p.lexer, p.parser)
		if err != nil {
			return err
		}
		p.emit(OpInlineImage{Image: img})
	case "BMC":
		tag, err := a.name()
		if err != nil {
			return err
		}
		p.emit(OpBeginMarkedContent{Tag: tag})
	case "BT":
		p.emit(OpBeginText{})
	case "BX":
		p.compat = true
	case "c":
		c1, err := a.point()
		if err != nil {
			return err
		}
		c2, err := a.point()
		if err != nil {
			return err
		}
		pt, err := a.point()
		if err != nil {
			return err
		}
		p.emit(OpCurveTo{C1: c1, C2: c2, P: pt})
		p.last = pt
	case "cm":
		m, err := a.matrix()
		if err != nil {
			return err
		}
		p.emit(OpTransform{Matrix: m})
	case "CS":
		name, err := a.name()
		if err != nil {
			return err
		}
		p.emit(OpStrokeColorSpace{Name: name})
	case "cs":
		name, err := a.name()
		if err != nil {
			return err
		}
		p.emit(OpFillColorSpace{Name: name})
	case "d":
		pattern, err := a.numberArray()
		if err != nil {
			return err
		}
		phase, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpDash{Pattern: pattern, Phase: phase})
	case "d0", "d1":
		// Type 3 glyph metrics. The operands are accepted and dropped;
		// nothing downstream consumes them.
	case "Do":
		name, err := a.name()
		if err != nil {
			return err
		}
		p.emit(OpXObject{Name: name})
	case "DP":
		tag, err := a.name()
		if err != nil {
			return err
		}
		props, err := a.pop()
		if err != nil {
			return err
		}
		p.emit(OpMarkedContentPoint{Tag: tag, Properties: props})
	case "EI", "ID":
		return fmt.Errorf("%w %q", ErrFramingOperator, op)
	case "EMC":
		p.emit(OpEndMarkedContent{})
	case "ET":
		p.emit(OpEndText{})
	case "EX":
		p.compat = false
	case "f", "F":
		p.emit(OpFill{Winding: NonZero})
	case "f*":
		p.emit(OpFill{Winding: EvenOdd})
	case "G":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpStrokeColor{Color: ColorGray{Gray: v}})
	case "g":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpFillColor{Color: ColorGray{Gray: v}})
	case "gs":
		name, err := a.name()
		if err != nil {
			return err
		}
		p.emit(OpGraphicsState{Name: name})
	case "h":
		p.emit(OpClose{})
	case "i":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpFlatness{Tolerance: v})
	case "j":
		n, err := a.integer()
		if err != nil {
			return err
		}
		if n < 0 || n > 2 {
			return fmt.Errorf("%w: line join %d", ErrOperandValue, n)
		}
		p.emit(OpLineJoin{Join: LineJoin(n)})
	case "J":
		n, err := a.integer()
		if err != nil {
			return err
		}
		if n < 0 || n > 2 {
			return fmt.Errorf("%w: line cap %d", ErrOperandValue, n)
		}
		p.emit(OpLineCap{Cap: LineCap(n)})
	case "K":
		c, err := a.number()
		if err != nil {
			return err
		}
		m, err := a.number()
		if err != nil {
			return err
		}
		y, err := a.number()
		if err != nil {
			return err
		}
		k, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpStrokeColor{Color: ColorCMYK{C: c, M: m, Y: y, K: k}})
	case "k":
		c, err := a.number()
		if err != nil {
			return err
		}
		m, err := a.number()
		if err != nil {
			return err
		}
		y, err := a.number()
		if err != nil {
			return err
		}
		k, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpFillColor{Color: ColorCMYK{C: c, M: m, Y: y, K: k}})
	case "l":
		pt, err := a.point()
		if err != nil {
			return err
		}
		p.emit(OpLineTo{P: pt})
		p.last = pt
	case "m":
		pt, err := a.point()
		if err != nil {
			return err
		}
		p.emit(OpMoveTo{P: pt})
		p.last = pt
	case "M":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpMiterLimit{Limit: v})
	case "MP":
		tag, err := a.name()
		if err != nil {
			return err
		}
		p.emit(OpMarkedContentPoint{Tag: tag})
	case "n":
		p.emit(OpEndPath{})
	case "q":
		p.emit(OpSave{})
	case "Q":
		p.emit(OpRestore{})
	case "re":
		r, err := a.rect()
		if err != nil {
			return err
		}
		p.emit(OpRect{Rect: r})
	case "RG":
		r, err := a.number()
		if err != nil {
			return err
		}
		g, err := a.number()
		if err != nil {
			return err
		}
		b, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpStrokeColor{Color: ColorRGB{R: r, G: g, B: b}})
	case "rg":
		r, err := a.number()
		if err != nil {
			return err
		}
		g, err := a.number()
		if err != nil {
			return err
		}
		b, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpFillColor{Color: ColorRGB{R: r, G: g, B: b}})
	case "ri":
		name, err := a.name()
		if err != nil {
			return err
		}
		intent, ok := ParseRenderingIntent(string(name))
		if !ok {
			return fmt.Errorf("%w: rendering intent %s", ErrOperandValue, name)
		}
		p.emit(OpRenderingIntent{Intent: intent})
	case "s":
		p.emit(OpClose{}, OpStroke{})
	case "S":
		p.emit(OpStroke{})
	case "SC", "SCN":
		p.emit(OpStrokeColor{Color: ColorOther{Operands: a.rest()}})
	case "sc", "scn":
		p.emit(OpFillColor{Color: ColorOther{Operands: a.rest()}})
	case "sh":
		name, err := a.name()
		if err != nil {
			return err
		}
		p.emit(OpShade{Name: name})
	case "T*":
		p.emit(OpTextNewline{})
	case "Tc":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpCharSpacing{CharSpace: v})
	case "Td":
		pt, err := a.point()
		if err != nil {
			return err
		}
		p.emit(OpMoveTextPosition{Translation: pt})
	case "TD":
		pt, err := a.point()
		if err != nil {
			return err
		}
		p.emit(OpLeading{Leading: -pt.Y}, OpMoveTextPosition{Translation: pt})
	case "Tf":
		name, err := a.name()
		if err != nil {
			return err
		}
		size, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpTextFont{Name: name, Size: size})
	case "Tj":
		s, err := a.text()
		if err != nil {
			return err
		}
		p.emit(OpTextDraw{Text: s})
	case "TJ":
		arr, err := a.array()
		if err != nil {
			return err
		}
		p.emit(OpTextDrawAdjusted{Array: arr})
	case "TL":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpLeading{Leading: v})
	case "Tm":
		m, err := a.matrix()
		if err != nil {
			return err
		}
		p.emit(OpSetTextMatrix{Matrix: m})
	case "Tr":
		n, err := a.integer()
		if err != nil {
			return err
		}
		if n < 0 || n > 7 {
			return fmt.Errorf("%w: text render mode %d", ErrOperandValue, n)
		}
		p.emit(OpTextRenderMode{Mode: TextRenderMode(n)})
	case "Ts":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpTextRise{Rise: v})
	case "Tw":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpWordSpacing{WordSpace: v})
	case "Tz":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpTextScaling{HorizScale: v})
	case "v":
		c2, err := a.point()
		if err != nil {
			return err
		}
		pt, err := a.point()
		if err != nil {
			return err
		}
		p.emit(OpCurveTo{C1: p.last, C2: c2, P: pt})
		p.last = pt
	case "w":
		v, err := a.number()
		if err != nil {
			return err
		}
		p.emit(OpLineWidth{Width: v})
	case "W":
		p.emit(OpClip{Winding: NonZero})
	case "W*":
		p.emit(OpClip{Winding: EvenOdd})
	case "y":
		c1, err := a.point()
		if err != nil {
			return err
		}
		pt, err := a.point()
		if err != nil {
			return err
		}
		p.emit(OpCurveTo{C1: c1, C2: pt, P: pt})
		p.last = pt
	case "'":
		s, err := a.text()
		if err != nil {
			return err
		}
		p.emit(OpTextNewline{}, OpTextDraw{Text: s})
	case `"`:
		ws, err := a.number()
		if err != nil {
			return err
		}
		cs, err := a.number()
		if err != nil {
			return err
		}
		s, err := a.text()
		if err != nil {
			return err
		}
		p.emit(OpWordSpacing{WordSpace: ws}, OpCharSpacing{CharSpace: cs}, OpTextNewline{}, OpTextDraw{Text: s})
	default:
		return fmt.Errorf("%w %q", ErrUnknownOperator, op)
	}
	return nil
}

// args hands out buffered operands front to back. The typed accessors fail
// with ErrMissingOperand when the buffer runs short and ErrOperandType on a
// kind mismatch.
type args struct {
	items []core.Object
	next  int
}

func (a *args) pop() (core.Object, error) {
	if a.next >= len(a.items) {
		return nil, ErrMissingOperand
	}
	obj := a.items[a.next]
	a.next++
	return obj, nil
}

// rest returns the operands not yet consumed, or nil when none remain. The
// result is a copy, detached from the parser's buffer.
func (a *args) rest() []core.Object {
	if a.next >= len(a.items) {
		return nil
	}
	out := make([]core.Object, len(a.items)-a.next)
	copy(out, a.items[a.next:])
	a.next = len(a.items)
	return out
}

func (a *args) number() (float64, error) {
	obj, err := a.pop()
	if err != nil {
		return 0, err
	}
	switch v := obj.(type) {
	case core.Int:
		return float64(v), nil
	case core.Real:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: %s is not a number", ErrOperandType, obj)
}

func (a *args) integer() (int, error) {
	obj, err := a.pop()
	if err != nil {
		return 0, err
	}
	n, ok := obj.(core.Int)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrOperandType, obj)
	}
	return int(n), nil
}

func (a *args) name() (core.Name, error) {
	obj, err := a.pop()
	if err != nil {
		return "", err
	}
	n, ok := obj.(core.Name)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a name", ErrOperandType, obj)
	}
	return n, nil
}

func (a *args) text() (core.String, error) {
	obj, err := a.pop()
	if err != nil {
		return "", err
	}
	s, ok := obj.(core.String)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrOperandType, obj)
	}
	return s, nil
}

func (a *args) array() (core.Array, error) {
	obj, err := a.pop()
	if err != nil {
		return nil, err
	}
	arr, ok := obj.(core.Array)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array", ErrOperandType, obj)
	}
	return arr, nil
}

// numberArray pops an array operand whose elements must all be numbers.
func (a *args) numberArray() ([]float64, error) {
	arr, err := a.array()
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, nil
	}
	out := make([]float64, len(arr))
	for i, elem := range arr {
		switch v := elem.(type) {
		case core.Int:
			out[i] = float64(v)
		case core.Real:
			out[i] = float64(v)
		default:
			return nil, fmt.Errorf("%w: %s is not a number", ErrOperandType, elem)
		}
	}
	return out, nil
}

func (a *args) point() (model.Point, error) {
	x, err := a.number()
	if err != nil {
		return model.Point{}, err
	}
	y, err := a.number()
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{X: x, Y: y}, nil
}

func (a *args) rect() (model.Rect, error) {
	x, err := a.number()
	if err != nil {
		return model.Rect{}, err
	}
	y, err := a.number()
	if err != nil {
		return model.Rect{}, err
	}
	w, err := a.number()
	if err != nil {
		return model.Rect{}, err
	}
	h, err := a.number()
	if err != nil {
		return model.Rect{}, err
	}
	return model.Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (a *args) matrix() (model.Matrix, error) {
	var m model.Matrix
	for i := range m {
		v, err := a.number()
		if err != nil {
			return model.Matrix{}, err
		}
		m[i] = v
	}
	return m, nil
}
