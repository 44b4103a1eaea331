package signature

import (
	stderrors "errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/Sunkar2710/sigkit/internal/errors"
)

// declaration is the participle grammar for one signature line
type declaration struct {
	Modifier   string       `parser:"@('private' | 'protected' | 'public')?"`
	ReturnType string       `parser:"@Ident"`
	Name       string       `parser:"@Ident '('"`
	Arguments  []*parameter `parser:"( @@ ( ',' @@ )* )? ')'"`
}

type parameter struct {
	Type string `parser:"@Ident"`
	Name string `parser:"@Ident"`
}

// GrammarParser parses the same restricted grammar as Scanner with a participle grammar.
// It accepts any whitespace between tokens, including around commas, and rejects
// everything else with a SyntaxError.
type GrammarParser struct {
	parser *participle.Parser[declaration]
}

// NewGrammarParser creates the grammar engine
func NewGrammarParser() *GrammarParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[(),]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[declaration](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &GrammarParser{parser: parser}
}

// Parse parses sig, failing on anything outside the grammar
func (g *GrammarParser) Parse(sig string) (*MethodSignature, error) {
	decl, err := g.parser.ParseString("", sig)
	if err != nil {
		var perr participle.Error
		if stderrors.As(err, &perr) {
			return nil, newSyntaxError(perr.Message(), sig, perr.Position().Column)
		}
		return nil, &SyntaxError{
			BaseError: errors.Wrap(errors.SyntaxErrorCode, ErrSyntax.Error(), err),
			Input:     sig,
		}
	}

	arguments := make([]Argument, 0, len(decl.Arguments))
	for _, p := range decl.Arguments {
		arguments = append(arguments, NewArgument(p.Type, p.Name))
	}

	result := NewMethodSignature(decl.Name, arguments)
	result.SetAccessModifier(AccessModifier(decl.Modifier))
	result.SetReturnType(decl.ReturnType)
	return result, nil
}
