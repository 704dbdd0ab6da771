package wiql

import "strings"

func lower(s string) string { return strings.ToLower(s) }

// Lex tokenizes query source. The token stream always ends with a TokEOF
// whose span is the empty range at end of input. Unrecognized bytes become
// TokError tokens; the lexer never fails.
func Lex(src string) []Token {
	var toks []Token
	i := 0
	n := len(src)

	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == '[':
			start := i
			i++
			for i < n && src[i] != ']' {
				i++
			}
			text := src[start+1 : i]
			if i < n {
				i++ // consume ]
			}
			toks = append(toks, Token{Kind: TokField, Text: text, Span: Span{start, i}})

		case c == '@':
			start := i
			i++
			for i < n && isIdentByte(src[i]) {
				i++
			}
			toks = append(toks, Token{Kind: TokVariable, Text: src[start:i], Span: Span{start, i}})

		case c == '\'' || c == '"':
			quote := c
			start := i
			i++
			for i < n && src[i] != quote {
				i++
			}
			text := src[start+1 : i]
			if i < n {
				i++ // consume closing quote
			}
			toks = append(toks, Token{Kind: TokString, Text: text, Span: Span{start, i}})

		case c >= '0' && c <= '9' || c == '-' && i+1 < n && src[i+1] >= '0' && src[i+1] <= '9':
			start := i
			i++
			for i < n && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
				i++
			}
			toks = append(toks, Token{Kind: TokNumber, Text: src[start:i], Span: Span{start, i}})

		case isIdentByte(c):
			start := i
			for i < n && (isIdentByte(src[i]) || src[i] >= '0' && src[i] <= '9') {
				i++
			}
			toks = append(toks, Token{Kind: TokIdent, Text: src[start:i], Span: Span{start, i}})

		case c == '=':
			toks = append(toks, Token{Kind: TokEq, Text: "=", Span: Span{i, i + 1}})
			i++

		case c == '<':
			if i+1 < n && src[i+1] == '>' {
				toks = append(toks, Token{Kind: TokNe, Text: "<>", Span: Span{i, i + 2}})
				i += 2
			} else if i+1 < n && src[i+1] == '=' {
				toks = append(toks, Token{Kind: TokLe, Text: "<=", Span: Span{i, i + 2}})
				i += 2
			} else {
				toks = append(toks, Token{Kind: TokLt, Text: "<", Span: Span{i, i + 1}})
				i++
			}

		case c == '>':
			if i+1 < n && src[i+1] == '=' {
				toks = append(toks, Token{Kind: TokGe, Text: ">=", Span: Span{i, i + 2}})
				i += 2
			} else {
				toks = append(toks, Token{Kind: TokGt, Text: ">", Span: Span{i, i + 1}})
				i++
			}

		case c == '(':
			toks = append(toks, Token{Kind: TokLParen, Text: "(", Span: Span{i, i + 1}})
			i++

		case c == ')':
			toks = append(toks, Token{Kind: TokRParen, Text: ")", Span: Span{i, i + 1}})
			i++

		case c == ',':
			toks = append(toks, Token{Kind: TokComma, Text: ",", Span: Span{i, i + 1}})
			i++

		case c == '.':
			toks = append(toks, Token{Kind: TokDot, Text: ".", Span: Span{i, i + 1}})
			i++

		default:
			toks = append(toks, Token{Kind: TokError, Text: string(c), Span: Span{i, i + 1}})
			i++
		}
	}

	toks = append(toks, Token{Kind: TokEOF, Span: Span{n, n}})
	return toks
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
