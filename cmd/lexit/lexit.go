package main

import (
	"log"
	"os"

	"github.com/pdk/sev/lex"
)

func main() {

	_, c := lex.New("stdin", os.Stdin)

	for item := range c {
		log.Printf("%s:%3d:%3d %-20s %q",
			item.Lexer.Name(),
			item.Line,
			item.Column,
			item.Type,
			item.Value)
	}
}
