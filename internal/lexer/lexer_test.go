package lexer

import "testing"

func TestLexBasicTokens(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kinds  []TokenKind
		lexeme []string
	}{
		{
			name:   "let declaration",
			input:  "let x: int = 5;",
			kinds:  []TokenKind{LET, IDENT, COLON, TYPE_INT, ASSIGN, INT_LIT, SEMICOLON, EOF},
			lexeme: []string{"let", "x", ":", "int", "=", "5", ";", ""},
		},
		{
			name:   "colour literal",
			input:  "#ff00aa",
			kinds:  []TokenKind{COLOUR_LIT, EOF},
			lexeme: []string{"#ff00aa", ""},
		},
		{
			name:   "arrow and pad intrinsics",
			input:  "fun f() -> int { __print 1; }",
			kinds:  []TokenKind{FUN, IDENT, LPAREN, RPAREN, ARROW, TYPE_INT, LBRACE, PAD_PRINT, INT_LIT, SEMICOLON, RBRACE, EOF},
			lexeme: nil,
		},
		{
			name:   "comparison operators",
			input:  "<= >= == != < >",
			kinds:  []TokenKind{LT_EQ, GT_EQ, EQ_EQ, NOT_EQ, LT, GT, EOF},
			lexeme: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := New(tt.input).Lex()
			if len(errs) > 0 {
				t.Fatalf("unexpected lexical errors: %v", errs)
			}
			if len(tokens) != len(tt.kinds) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.kinds), tokens)
			}
			for i, k := range tt.kinds {
				if tokens[i].Kind != k {
					t.Errorf("token %d: kind = %s, want %s", i, tokens[i].Kind, k)
				}
			}
			for i, lex := range tt.lexeme {
				if lex != "" && tokens[i].Span.Lexeme != lex {
					t.Errorf("token %d: lexeme = %q, want %q", i, tokens[i].Span.Lexeme, lex)
				}
			}
		})
	}
}

func TestLexSkipsComments(t *testing.T) {
	input := "// a line comment\nlet x: int = /* inline */ 1;"
	tokens, errs := New(input).Lex()
	if len(errs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	want := []TokenKind{LET, IDENT, COLON, TYPE_INT, ASSIGN, INT_LIT, SEMICOLON, EOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, tokens[i].Kind, k)
		}
	}
}

func TestLexInvalidColourLiteralReportsError(t *testing.T) {
	_, errs := New("#fff;").Lex()
	if len(errs) != 1 {
		t.Fatalf("expected 1 lexical error, got %d", len(errs))
	}
}

func TestLexUnknownCharacterAccumulatesError(t *testing.T) {
	tokens, errs := New("let x = 1 @ 2;").Lex()
	if len(errs) != 1 {
		t.Fatalf("expected 1 lexical error, got %d", len(errs))
	}
	// The lexer keeps tokenizing past the illegal character rather than
	// aborting, so EOF should still be reached.
	if tokens[len(tokens)-1].Kind != EOF {
		t.Fatalf("expected token stream to still reach EOF, got %v", tokens[len(tokens)-1])
	}
}

func TestLexKeywordsNotConfusedWithIdentifiers(t *testing.T) {
	tokens, errs := New("forward").Lex()
	if len(errs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	if tokens[0].Kind != IDENT {
		t.Errorf("expected 'forward' to lex as IDENT (not as keyword 'for' + trailing), got %s", tokens[0].Kind)
	}
	if tokens[0].Span.Lexeme != "forward" {
		t.Errorf("expected maximal munch to consume whole identifier, got %q", tokens[0].Span.Lexeme)
	}
}
