package vcd

import (
	"bufio"
	"github.com/pkg/errors"
	"io"
	"strconv"
	"strings"
)

type token struct {
	text string
	line int
}

type lexer struct {
	scanner *bufio.Scanner
	line    int
	pending []string
}

func newLexer(r io.Reader) *lexer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &lexer{scanner: scanner}
}

func (l *lexer) next() (token, error) {
	for len(l.pending) == 0 {
		if !l.scanner.Scan() {
			if err := l.scanner.Err(); err != nil {
				return token{}, err
			}
			return token{line: l.line}, io.EOF
		}
		l.line++
		l.pending = strings.Fields(l.scanner.Text())
	}
	tok := token{text: l.pending[0], line: l.line}
	l.pending = l.pending[1:]
	return tok, nil
}

// untilEnd collects the tokens of a section body up to its $end.
func (l *lexer) untilEnd(section string) ([]string, error) {
	var body []string
	for {
		tok, err := l.next()
		if err == io.EOF {
			return nil, errors.Errorf("line %d: %s section is missing $end", tok.line, section)
		} else if err != nil {
			return nil, err
		}
		if tok.text == "$end" {
			return body, nil
		}
		body = append(body, tok.text)
	}
}

type parser struct {
	lex     *lexer
	trace   *Trace
	scopes  []string
	byCode  map[string][]*Signal
	now     uint64
	started bool
	defined bool
}

// Parse reads an entire value change dump. Changes recorded before the first
// timestamp belong to time zero, and repeated changes of one signal at the
// same time collapse into the last of them.
func Parse(r io.Reader) (*Trace, error) {
	p := &parser{
		lex: newLexer(r),
		trace: &Trace{
			byName: make(map[string]*Signal),
		},
		byCode: make(map[string][]*Signal),
	}
	for {
		tok, err := p.lex.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if err := p.handle(tok); err != nil {
			return nil, err
		}
	}
	if n := len(p.scopes); n > 0 {
		return nil, errors.Errorf("scope %q is never closed", p.scopes[n-1])
	}
	if p.now > p.trace.EndTime {
		p.trace.EndTime = p.now
	}
	for _, s := range p.trace.Signals {
		s.EndTime = p.trace.EndTime
	}
	return p.trace, nil
}

func (p *parser) handle(tok token) error {
	text := tok.text
	switch text {
	case "$comment":
		_, err := p.lex.untilEnd(text)
		return err
	case "$date":
		body, err := p.lex.untilEnd(text)
		p.trace.Date = strings.Join(body, " ")
		return err
	case "$version":
		body, err := p.lex.untilEnd(text)
		p.trace.Version = strings.Join(body, " ")
		return err
	case "$timescale":
		body, err := p.lex.untilEnd(text)
		p.trace.Timescale = strings.Join(body, "")
		return err
	case "$scope":
		return p.scope(tok)
	case "$upscope":
		if _, err := p.lex.untilEnd(text); err != nil {
			return err
		}
		if len(p.scopes) == 0 {
			return errors.Errorf("line %d: $upscope without an open scope", tok.line)
		}
		p.scopes = p.scopes[:len(p.scopes)-1]
		return nil
	case "$var":
		return p.variable(tok)
	case "$enddefinitions":
		_, err := p.lex.untilEnd(text)
		p.defined = true
		return err
	case "$dumpvars", "$dumpall", "$dumpon", "$dumpoff", "$end":
		// value changes inside these blocks are handled like any others
		return nil
	}
	switch text[0] {
	case '$':
		if p.defined {
			return errors.Errorf("line %d: unexpected %s in value changes", tok.line, text)
		}
		// unknown declaration keyword; skip its body
		_, err := p.lex.untilEnd(text)
		return err
	case '#':
		t, err := strconv.ParseUint(text[1:], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "line %d: bad timestamp %q", tok.line, text)
		}
		if p.started && t < p.now {
			return errors.Errorf("line %d: timestamp %d goes back from %d", tok.line, t, p.now)
		}
		p.now, p.started = t, true
		if t > p.trace.EndTime {
			p.trace.EndTime = t
		}
		return nil
	case '0', '1', 'x', 'X', 'z', 'Z':
		return p.change(tok, text[1:], strings.ToLower(text[:1]))
	case 'b', 'B', 'r', 'R':
		code, err := p.lex.next()
		if err == io.EOF {
			return errors.Errorf("line %d: value %q has no identifier code", tok.line, text)
		} else if err != nil {
			return err
		}
		return p.change(code, code.text, text[1:])
	default:
		return errors.Errorf("line %d: unexpected token %q", tok.line, text)
	}
}

func (p *parser) scope(tok token) error {
	body, err := p.lex.untilEnd(tok.text)
	if err != nil {
		return err
	}
	if len(body) != 2 {
		return errors.Errorf("line %d: malformed $scope declaration %q", tok.line, strings.Join(body, " "))
	}
	p.scopes = append(p.scopes, body[1])
	return nil
}

func (p *parser) variable(tok token) error {
	body, err := p.lex.untilEnd(tok.text)
	if err != nil {
		return err
	}
	if len(body) < 4 {
		return errors.Errorf("line %d: malformed $var declaration %q", tok.line, strings.Join(body, " "))
	}
	width, err := strconv.Atoi(body[1])
	if err != nil {
		return errors.Wrapf(err, "line %d: bad width for %s", tok.line, body[3])
	}
	name := strings.Join(append(append([]string(nil), p.scopes...), body[3]), ".")
	s, ok := p.trace.lookup(name)
	if !ok {
		s = &Signal{
			Name:  name,
			Type:  body[0],
			Width: width,
			Range: strings.Join(body[4:], ""),
		}
		p.trace.Signals = append(p.trace.Signals, s)
		p.trace.byName[name] = s
	}
	code := body[2]
	p.byCode[code] = append(p.byCode[code], s)
	return nil
}

func (p *parser) change(tok token, code string, value string) error {
	signals, ok := p.byCode[code]
	if !ok {
		return errors.Errorf("line %d: unknown identifier code %q", tok.line, code)
	}
	for _, s := range signals {
		s.record(p.now, value)
	}
	return nil
}
