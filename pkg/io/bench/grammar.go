package bench

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var benchLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Keyword", Pattern: `(?i)\b(INPUT|OUTPUT|LUT)\b`},
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Punct", Pattern: `[(),=]`},
	{Name: "Ident", Pattern: `[^\s(),=#]+`},
})

type file struct {
	Stmts []*stmt `@@*`
}

type stmt struct {
	Pos    lexer.Position
	Input  *string `  "INPUT":Keyword "(" @Ident ")"`
	Output *string `| "OUTPUT":Keyword "(" @Ident ")"`
	Gate   *gate   `| @@`
}

// gate covers "x = KIND(a, b)", "x = LUT 0x8 (a, b)" and "x = y".
type gate struct {
	Pos   lexer.Position
	Name  string   `@Ident "="`
	Table string   `( "LUT":Keyword @Hex`
	Kind  string   `| @Ident )`
	Args  []string `( "(" ( @Ident ( "," @Ident )* )? ")" )?`
}

var parser = participle.MustBuild[file](
	participle.Lexer(benchLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)
