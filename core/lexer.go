package core

import (
	"bytes"
	"fmt"
	"io"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenComment
	TokenKeyword     // true, false, null, operator mnemonics, etc.
	TokenInteger     // 123
	TokenReal        // 3.14
	TokenString      // (hello)
	TokenHexString   // <48656C6C6F>
	TokenName        // /Type
	TokenArrayStart  // [
	TokenArrayEnd    // ]
	TokenDictStart   // <<
	TokenDictEnd     // >>
	TokenIndirectRef // R (after two numbers)
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value []byte
	Pos   int // Position of the first byte of the token
}

// Lexer performs lexical analysis over a byte slice. It keeps an explicit
// position that callers can save and restore, which content-stream parsing
// relies on: a failed value-parse attempt is undone by rewinding, and the
// same bytes are then re-read as an operator token.
//
// A keyword, number, or name that runs to the end of the data with no
// terminating whitespace or delimiter leaves the position one past the data
// length. Callers that enforce stream bounds detect truncated input that way.
type Lexer struct {
	data []byte
	pos  int
}

// NewLexer creates a new lexer over the given data.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Pos returns the current position.
func (l *Lexer) Pos() int {
	return l.pos
}

// SetPos moves the lexer to an absolute position.
func (l *Lexer) SetPos(pos int) {
	l.pos = pos
}

// Len returns the total length of the underlying data.
func (l *Lexer) Len() int {
	return len(l.data)
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (*Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.data) {
		return &Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	b := l.data[l.pos]

	// Handle comments
	if b == '%' {
		return l.readComment()
	}

	// Handle delimiters
	switch b {
	case '[':
		l.pos++
		return &Token{Type: TokenArrayStart, Value: []byte{'['}, Pos: l.pos - 1}, nil
	case ']':
		l.pos++
		return &Token{Type: TokenArrayEnd, Value: []byte{']'}, Pos: l.pos - 1}, nil
	case '(':
		return l.readString()
	case '<':
		// Could be << (dict start) or <hex string>
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			return &Token{Type: TokenDictStart, Value: []byte{'<', '<'}, Pos: l.pos - 2}, nil
		}
		return l.readHexString()
	case '>':
		// Must be >> (dict end)
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '>' {
			l.pos += 2
			return &Token{Type: TokenDictEnd, Value: []byte{'>', '>'}, Pos: l.pos - 2}, nil
		}
		return nil, fmt.Errorf("unexpected '>' at position %d", l.pos)
	case '/':
		return l.readName()
	}

	// Handle numbers
	if isDigit(b) || b == '-' || b == '+' || b == '.' {
		return l.readNumber()
	}

	// Anything else made of regular characters is a keyword. This covers
	// the bare mnemonics of content streams, including ', ", b* and T*.
	if isRegular(b) {
		return l.readKeyword()
	}

	return nil, fmt.Errorf("unexpected character '%c' at position %d", b, l.pos)
}

// ReadToken reads the next raw token without classifying numbers or
// keywords: one run of regular characters, or a single delimiter. Content
// parsing uses it to pick up an operator mnemonic after a value-parse
// attempt has failed and been rewound.
func (l *Lexer) ReadToken() (*Token, error) {
	l.skipWhitespace()
	for l.pos < len(l.data) && l.data[l.pos] == '%' {
		if _, err := l.readComment(); err != nil {
			return nil, err
		}
		l.skipWhitespace()
	}

	if l.pos >= len(l.data) {
		return &Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	if !isRegular(l.data[l.pos]) {
		l.pos++
		return &Token{Type: TokenKeyword, Value: l.data[start:l.pos], Pos: start}, nil
	}

	for l.pos < len(l.data) && isRegular(l.data[l.pos]) {
		l.pos++
	}
	value := l.data[start:l.pos]
	if l.pos == len(l.data) {
		// No terminator seen before the data ran out.
		l.pos++
	}
	return &Token{Type: TokenKeyword, Value: value, Pos: start}, nil
}

// skipWhitespace skips all whitespace characters
// PDF whitespace: space (0x20), tab (0x09), LF (0x0A), CR (0x0D), FF (0x0C), null (0x00)
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.data) && isWhitespace(l.data[l.pos]) {
		l.pos++
	}
}

// readComment reads a comment (% to end of line). The token value excludes
// the line ending, which is still consumed.
func (l *Lexer) readComment() (*Token, error) {
	startPos := l.pos

	// Consume the %
	l.pos++
	for l.pos < len(l.data) && l.data[l.pos] != '\r' && l.data[l.pos] != '\n' {
		l.pos++
	}
	end := l.pos

	if l.pos < len(l.data) {
		b := l.data[l.pos]
		l.pos++
		// Handle CR LF sequence
		if b == '\r' && l.pos < len(l.data) && l.data[l.pos] == '\n' {
			l.pos++
		}
	}

	return &Token{Type: TokenComment, Value: l.data[startPos:end], Pos: startPos}, nil
}

// readString reads a literal string (hello)
func (l *Lexer) readString() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	// Consume the opening (
	l.pos++

	depth := 1
	for depth > 0 {
		b, err := l.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("unterminated string at position %d: %w", startPos, err)
		}

		switch b {
		case '(':
			depth++
			buf.WriteByte(b)
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(b)
			}
		case '\\':
			next, err := l.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("unterminated string at position %d: %w", startPos, err)
			}
			switch next {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(next)
			case '\r', '\n':
				// Line continuation - ignore the backslash and newline
				if next == '\r' && l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '0', '1', '2', '3', '4', '5', '6', '7':
				// Octal escape \ddd
				val := next - '0'
				for i := 0; i < 2 && l.pos < len(l.data) && isOctalDigit(l.data[l.pos]); i++ {
					val = val*8 + (l.data[l.pos] - '0')
					l.pos++
				}
				buf.WriteByte(val)
			default:
				// Unknown escape - keep the character
				buf.WriteByte(next)
			}
		default:
			buf.WriteByte(b)
		}
	}

	return &Token{Type: TokenString, Value: buf.Bytes(), Pos: startPos}, nil
}

// readHexString reads a hexadecimal string <48656C6C6F>. The token value
// holds the hex digits; decoding to bytes happens in the parser.
func (l *Lexer) readHexString() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	// Consume the opening <
	l.pos++

	for {
		if l.pos >= len(l.data) {
			return nil, fmt.Errorf("unterminated hex string at position %d: %w", startPos, io.ErrUnexpectedEOF)
		}

		b := l.data[l.pos]
		l.pos++

		if b == '>' {
			break
		}
		if isWhitespace(b) {
			continue
		}
		if !isHexDigit(b) {
			return nil, fmt.Errorf("invalid hex digit '%c' at position %d", b, l.pos-1)
		}
		buf.WriteByte(b)
	}

	return &Token{Type: TokenHexString, Value: buf.Bytes(), Pos: startPos}, nil
}

// readName reads a name object /Type
func (l *Lexer) readName() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	// Consume the /
	l.pos++

	terminated := false
	for l.pos < len(l.data) {
		b := l.data[l.pos]

		// Names end at whitespace or delimiters
		if isWhitespace(b) || isDelimiter(b) {
			terminated = true
			break
		}
		l.pos++

		// Handle # escape sequences in names
		if b == '#' {
			if l.pos+1 >= len(l.data) || !isHexDigit(l.data[l.pos]) || !isHexDigit(l.data[l.pos+1]) {
				return nil, fmt.Errorf("invalid hex escape in name at position %d", l.pos-1)
			}
			val := hexValue(l.data[l.pos])*16 + hexValue(l.data[l.pos+1])
			l.pos += 2
			buf.WriteByte(val)
		} else {
			buf.WriteByte(b)
		}
	}
	if !terminated {
		l.pos++
	}

	return &Token{Type: TokenName, Value: buf.Bytes(), Pos: startPos}, nil
}

// readNumber reads an integer or real number
func (l *Lexer) readNumber() (*Token, error) {
	startPos := l.pos
	hasDecimal := false

	if b := l.data[l.pos]; b == '-' || b == '+' {
		l.pos++
	}

	terminated := false
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		if b == '.' {
			if hasDecimal {
				terminated = true
				break // Second decimal point - not part of this number
			}
			hasDecimal = true
			l.pos++
		} else if isDigit(b) {
			l.pos++
		} else {
			terminated = true
			break
		}
	}

	value := l.data[startPos:l.pos]
	if !terminated {
		l.pos++
	}

	tokenType := TokenInteger
	if hasDecimal {
		tokenType = TokenReal
	}

	return &Token{Type: tokenType, Value: value, Pos: startPos}, nil
}

// readKeyword reads a keyword (true, false, null, R, an operator, etc.)
func (l *Lexer) readKeyword() (*Token, error) {
	startPos := l.pos

	for l.pos < len(l.data) && isRegular(l.data[l.pos]) {
		l.pos++
	}

	value := l.data[startPos:l.pos]
	if l.pos == len(l.data) {
		l.pos++
	}

	// Check if it's R (indirect reference)
	if len(value) == 1 && value[0] == 'R' {
		return &Token{Type: TokenIndirectRef, Value: value, Pos: startPos}, nil
	}

	return &Token{Type: TokenKeyword, Value: value, Pos: startPos}, nil
}

// Substring returns the raw bytes in [start, end). Bounds are clamped to
// the data length.
func (l *Lexer) Substring(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(l.data) {
		end = len(l.data)
	}
	if start >= end {
		return nil
	}
	return l.data[start:end]
}

// SeekSubstring searches forward from the current position for the first
// occurrence of needle. On success it returns the absolute index of the
// match and moves the position just past it.
func (l *Lexer) SeekSubstring(needle []byte) (int, bool) {
	if l.pos >= len(l.data) {
		return 0, false
	}
	idx := bytes.Index(l.data[l.pos:], needle)
	if idx < 0 {
		return 0, false
	}
	abs := l.pos + idx
	l.pos = abs + len(needle)
	return abs, true
}

// Helper functions

func isWhitespace(b byte) bool {
	// PDF whitespace: space, tab, LF, CR, FF, null
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

// isRegular reports whether b can appear in a bare keyword token. Regular
// characters are everything that is neither whitespace nor a delimiter.
func isRegular(b byte) bool {
	return !isWhitespace(b) && !isDelimiter(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	if b >= '0' && b <= '9' {
		return b - '0'
	}
	if b >= 'a' && b <= 'f' {
		return b - 'a' + 10
	}
	if b >= 'A' && b <= 'F' {
		return b - 'A' + 10
	}
	return 0
}

// ReadBytes reads exactly n bytes of raw data, used for binary stream
// payloads that must not be tokenized.
func (l *Lexer) ReadBytes(n int) ([]byte, error) {
	if l.pos+n > len(l.data) {
		got := len(l.data) - l.pos
		if got < 0 {
			got = 0
		}
		return nil, fmt.Errorf("unexpected EOF: expected %d bytes, got %d", n, got)
	}
	data := l.data[l.pos : l.pos+n]
	l.pos += n
	return data, nil
}

// SkipBytes skips exactly n bytes.
func (l *Lexer) SkipBytes(n int) error {
	if l.pos+n > len(l.data) {
		return fmt.Errorf("unexpected EOF skipping %d bytes", n)
	}
	l.pos += n
	return nil
}

// Peek returns the next byte without consuming it.
func (l *Lexer) Peek() (byte, error) {
	if l.pos >= len(l.data) {
		return 0, io.EOF
	}
	return l.data[l.pos], nil
}

// ReadByte reads and returns a single byte.
func (l *Lexer) ReadByte() (byte, error) {
	if l.pos >= len(l.data) {
		return 0, io.EOF
	}
	b := l.data[l.pos]
	l.pos++
	return b, nil
}

// SkipStreamEOL consumes the end-of-line marker that follows the "stream"
// keyword: a single LF or a CR LF pair.
func (l *Lexer) SkipStreamEOL() error {
	if l.pos < len(l.data) && l.data[l.pos] == '\r' {
		l.pos++
	}
	if l.pos < len(l.data) && l.data[l.pos] == '\n' {
		l.pos++
		return nil
	}
	return fmt.Errorf("missing end-of-line after stream keyword at position %d", l.pos)
}
