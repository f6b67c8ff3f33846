package main

import (
	"fmt"
	"os"

	"github.com/pdk/sev/parser"
)

func main() {

	p := parser.NewFromReader("stdin", os.Stdin)

	program, err := p.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	fmt.Println(program)
}
