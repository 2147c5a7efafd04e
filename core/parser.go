package core

import (
	"fmt"
	"io"
	"strconv"
)

// ReferenceResolver is an interface for resolving indirect references.
// This allows the parser to resolve indirect stream lengths when needed.
type ReferenceResolver interface {
	ResolveReference(ref IndirectRef) (Object, error)
}

// Parser parses PDF objects by reading tokens straight off a positioned
// Lexer. It keeps no token lookahead of its own; where the grammar needs
// lookahead (the "num gen R" reference form, the stream keyword after a
// dictionary) it saves and restores the lexer position instead. That keeps
// the lexer position meaningful to callers interleaving their own reads,
// which content-stream parsing does on every operator.
type Parser struct {
	lexer    *Lexer
	resolver ReferenceResolver
}

// NewParser creates a new parser over the given data.
func NewParser(data []byte) *Parser {
	return &Parser{lexer: NewLexer(data)}
}

// NewParserFromLexer creates a parser sharing an existing lexer. Reads
// through the parser and through the lexer advance the same position.
func NewParserFromLexer(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// SetReferenceResolver sets the reference resolver for the parser.
// This is needed to resolve indirect stream lengths.
func (p *Parser) SetReferenceResolver(resolver ReferenceResolver) {
	p.resolver = resolver
}

// next returns the next non-comment token.
func (p *Parser) next() (*Token, error) {
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type != TokenComment {
			return tok, nil
		}
	}
}

// ParseObject parses and returns the next PDF object from the input.
// It handles all PDF object types: null, boolean, integer, real, string,
// name, array, dictionary, and indirect references. At end of input it
// returns io.EOF.
func (p *Parser) ParseObject() (Object, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TokenEOF:
		return nil, io.EOF

	case TokenKeyword:
		keyword := string(tok.Value)
		switch keyword {
		case "null":
			return Null{}, nil
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		default:
			return nil, fmt.Errorf("unexpected keyword: %s", keyword)
		}

	case TokenInteger:
		// Could be an integer or the start of an indirect reference
		return p.parseNumber(tok)

	case TokenReal:
		val, err := strconv.ParseFloat(string(tok.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real number: %w", err)
		}
		return Real(val), nil

	case TokenString:
		return String(tok.Value), nil

	case TokenHexString:
		// Convert hex digit pairs to bytes
		hexStr := string(tok.Value)
		if len(hexStr)%2 != 0 {
			hexStr += "0" // Pad if odd length
		}
		result := make([]byte, len(hexStr)/2)
		for i := 0; i < len(hexStr); i += 2 {
			b, err := strconv.ParseUint(hexStr[i:i+2], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid hex string: %w", err)
			}
			result[i/2] = byte(b)
		}
		return String(result), nil

	case TokenName:
		return Name(tok.Value), nil

	case TokenArrayStart:
		return p.parseArray()

	case TokenDictStart:
		return p.parseDict()

	default:
		return nil, fmt.Errorf("unexpected token type %v at position %d", tok.Type, tok.Pos)
	}
}

// parseNumber parses an integer or an indirect reference. References are
// detected by lookahead for the "num gen R" pattern; anything else rewinds
// to just after the first number.
func (p *Parser) parseNumber(first *Token) (Object, error) {
	firstInt, err := strconv.ParseInt(string(first.Value), 10, 64)
	if err != nil {
		// Integer token too large or malformed; fall back to a real
		f, ferr := strconv.ParseFloat(string(first.Value), 64)
		if ferr != nil {
			return nil, fmt.Errorf("invalid number: %s", first.Value)
		}
		return Real(f), nil
	}

	save := p.lexer.Pos()

	second, err := p.next()
	if err == nil && second.Type == TokenInteger {
		secondInt, serr := strconv.ParseInt(string(second.Value), 10, 64)
		if serr == nil {
			third, terr := p.next()
			if terr == nil && third.Type == TokenIndirectRef {
				return IndirectRef{
					Number:     int(firstInt),
					Generation: int(secondInt),
				}, nil
			}
		}
	}

	p.lexer.SetPos(save)
	return Int(firstInt), nil
}

// parseArray parses a PDF array "[obj1 obj2 ...]". The opening bracket has
// already been consumed.
func (p *Parser) parseArray() (Object, error) {
	var arr Array
	for {
		save := p.lexer.Pos()
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TokenArrayEnd:
			return arr, nil
		case TokenEOF:
			return nil, fmt.Errorf("unexpected EOF in array")
		}

		p.lexer.SetPos(save)
		obj, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("error parsing array element: %w", err)
		}
		arr = append(arr, obj)
	}
}

// parseDict parses a PDF dictionary "<< /Key value ... >>". The opening
// marker has already been consumed.
func (p *Parser) parseDict() (Object, error) {
	dict := make(Dict)
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TokenDictEnd:
			return dict, nil
		case TokenEOF:
			return nil, fmt.Errorf("unexpected EOF in dictionary")
		}

		// Parse key (must be a name)
		if tok.Type != TokenName {
			return nil, fmt.Errorf("expected name for dictionary key, got %v at position %d", tok.Type, tok.Pos)
		}
		key := string(tok.Value)

		// Parse value
		value, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("error parsing dictionary value for key '%s': %w", key, err)
		}

		dict[key] = value
	}
}

// ParseIndirectObject parses an indirect object definition.
// Format: "num gen obj <object> endobj" or "num gen obj <dict> stream ... endstream endobj"
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	// Parse object number
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenInteger {
		return nil, fmt.Errorf("expected object number, got %v", tok.Type)
	}
	num, err := strconv.ParseInt(string(tok.Value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid object number: %w", err)
	}

	// Parse generation number
	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenInteger {
		return nil, fmt.Errorf("expected generation number, got %v", tok.Type)
	}
	gen, err := strconv.ParseInt(string(tok.Value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid generation number: %w", err)
	}

	// Parse 'obj' keyword
	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenKeyword || string(tok.Value) != "obj" {
		return nil, fmt.Errorf("expected 'obj' keyword, got %q", tok.Value)
	}

	// Parse the object value
	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("error parsing indirect object value: %w", err)
	}

	// Check for stream
	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type == TokenKeyword && string(tok.Value) == "stream" {
		dict, ok := obj.(Dict)
		if !ok {
			return nil, fmt.Errorf("stream must follow a dictionary")
		}
		stream, err := p.parseStream(dict)
		if err != nil {
			return nil, fmt.Errorf("error parsing stream: %w", err)
		}
		obj = stream

		tok, err = p.next()
		if err != nil {
			return nil, err
		}
	}

	// Parse 'endobj' keyword
	if tok.Type != TokenKeyword || string(tok.Value) != "endobj" {
		return nil, fmt.Errorf("expected 'endobj' keyword, got %q", tok.Value)
	}

	return &IndirectObject{
		Ref: IndirectRef{
			Number:     int(num),
			Generation: int(gen),
		},
		Object: obj,
	}, nil
}

// parseStream reads a stream body after the "stream" keyword has been
// consumed. The data length comes from the dictionary's Length entry,
// resolved through the reference resolver when indirect.
func (p *Parser) parseStream(dict Dict) (*Stream, error) {
	lengthObj := dict.Get("Length")
	if lengthObj == nil {
		return nil, fmt.Errorf("stream dictionary missing 'Length' entry")
	}

	var length int
	switch v := lengthObj.(type) {
	case Int:
		length = int(v)
	case IndirectRef:
		if p.resolver == nil {
			return nil, fmt.Errorf("indirect reference for stream length requires a reference resolver")
		}
		resolved, err := p.resolver.ResolveReference(v)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stream length reference: %w", err)
		}
		resolvedInt, ok := resolved.(Int)
		if !ok {
			return nil, fmt.Errorf("stream length reference resolved to %T, expected Int", resolved)
		}
		length = int(resolvedInt)
	default:
		return nil, fmt.Errorf("invalid type for stream length: %T", lengthObj)
	}

	if length < 0 {
		return nil, fmt.Errorf("invalid stream length: %d", length)
	}

	// The 'stream' keyword is followed by a single LF or a CR LF pair,
	// then exactly length bytes of data.
	if err := p.lexer.SkipStreamEOL(); err != nil {
		return nil, fmt.Errorf("failed to skip EOL after stream keyword: %w", err)
	}

	data, err := p.lexer.ReadBytes(length)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream data: %w", err)
	}

	tok, err := p.next()
	if err != nil {
		return nil, fmt.Errorf("failed to read token after stream data: %w", err)
	}
	if tok.Type != TokenKeyword || string(tok.Value) != "endstream" {
		return nil, fmt.Errorf("expected 'endstream' keyword, got %q", tok.Value)
	}

	return &Stream{
		Dict: dict,
		Data: data,
	}, nil
}
