// Command tokendump is the tokenizer+AST dumper CLI harness. It tokenizes
// a WHERE-clause expression and prints the token stream, then parses it
// and prints the resulting AST, without any of the table/row machinery
// the other CLI harnesses carry.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	sqlexpr "github.com/knode-ai-open-source/sql-parser-library"
	"github.com/knode-ai-open-source/sql-parser-library/lexer"
	"github.com/knode-ai-open-source/sql-parser-library/parser"
)

type options struct {
	SQL        string `short:"e" long:"expr" description:"expression text to tokenize/parse" required:"true"`
	TokensOnly bool   `long:"tokens-only" description:"print only the token stream, skip the AST"`
}

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.Default)
	p.Usage = "-e 'a + b * 2'"
	if _, err := p.Parse(); err != nil {
		os.Exit(1)
	}

	ctx := sqlexpr.NewContext()

	toks := lexer.Tokenize(opts.SQL, ctx)
	fmt.Printf("%d tokens\n", len(toks))
	for _, t := range toks {
		fmt.Printf("  #%-3d %-18s %-12q start=%-4d len=%-3d line=%d col=%d\n",
			t.ID, t.Type, t.Literal, t.Start, t.Length, t.Line, t.Column)
	}

	if opts.TokensOnly {
		return
	}

	prog, errs := parser.Parse(opts.SQL, ctx)
	if len(errs) > 0 {
		fmt.Println("\nparse errors:")
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		os.Exit(1)
	}

	fmt.Println("\nAST:")
	if prog.Where != nil {
		fmt.Printf("  WHERE %s\n", prog.Where.String())
	} else {
		fmt.Println("  (no WHERE clause)")
	}
}
