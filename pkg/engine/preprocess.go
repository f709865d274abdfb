package engine

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source into something zygomys accepts:
//
//   - :keyword becomes the string literal "__kw_keyword", so keywords never
//     collide with user variables of the same name.
//   - kebab-case identifiers become snake_case (zygomys reads a bare hyphen
//     as subtraction).
//   - ; and ;; line comments become // comments.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	p := &preprocessor{src: source, out: make([]byte, 0, len(source)+len(source)/4)}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '"':
			p.copyQuoted('"', true)
		case c == '`':
			p.copyQuoted('`', false)
		case c == ';':
			p.lineComment()
		case c == ':' && p.peek() == '=':
			p.emit(2)
		case c == ':' && isLetter(p.peek()):
			p.keyword()
		case c == '-' && p.pos > 0 && isIdentChar(p.src[p.pos-1]) && isLetter(p.peek()):
			p.out = append(p.out, '_')
			p.pos++
		default:
			p.emit(1)
		}
	}
	return string(p.out)
}

type preprocessor struct {
	src string
	pos int
	out []byte
}

func (p *preprocessor) peek() byte {
	if p.pos+1 < len(p.src) {
		return p.src[p.pos+1]
	}
	return 0
}

func (p *preprocessor) emit(n int) {
	end := min(p.pos+n, len(p.src))
	p.out = append(p.out, p.src[p.pos:end]...)
	p.pos = end
}

// copyQuoted copies a literal up to and including its closing quote.
func (p *preprocessor) copyQuoted(quote byte, escapes bool) {
	p.emit(1)
	for p.pos < len(p.src) && p.src[p.pos] != quote {
		if escapes && p.src[p.pos] == '\\' {
			p.emit(2)
			continue
		}
		p.emit(1)
	}
	p.emit(1)
}

func (p *preprocessor) lineComment() {
	p.out = append(p.out, '/', '/')
	for p.pos < len(p.src) && p.src[p.pos] == ';' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] != '\n' {
		p.emit(1)
	}
}

func (p *preprocessor) keyword() {
	start := p.pos + 1
	end := start
	for end < len(p.src) && isKWChar(p.src[end]) {
		end++
	}
	p.out = append(p.out, '"')
	p.out = append(p.out, kwPrefix...)
	p.out = append(p.out, p.src[start:end]...)
	p.out = append(p.out, '"')
	p.pos = end
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
