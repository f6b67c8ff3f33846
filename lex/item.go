package lex

import (
	"encoding/json"
	"fmt"
)

// Item is produced by a lexer.
type Item struct {
	*Lexer
	Type
	Value  string
	Mesg   string // set when Type is Error
	Line   int
	Column int
}

// ItemError composes an Item with an error.
type ItemError struct {
	item *Item
	err  error
}

// Unwrap allows unwrapping an ItemError.
func (ierr ItemError) Unwrap() error {
	return ierr.err
}

// Error provides the standard error interface for an ItemError.
func (ierr ItemError) Error() string {
	name := ""
	if n := ierr.item.Name(); n != "stdin" && n != "unknown" {
		name = n + ":"
	}

	value := ierr.item.Value
	if len(value) > 8 {
		value = value[:5] + "..."
	}
	return fmt.Sprintf("%s%d:%d (%q) %s",
		name, ierr.item.Line, ierr.item.Column, value, ierr.err.Error())
}

func (i *Item) Error(err error) ItemError {
	return ItemError{
		item: i,
		err:  err,
	}
}

// Type is the kind of the Item.
type Type uint

// Match checks if a type matches any of a set of types.
func (t Type) Match(targets ...Type) bool {
	for _, o := range targets {
		if t == o {
			return true
		}
	}
	return false
}

// MarshalJSON helps Item -> JSON
func (i Item) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"Type":  i.Type.String(),
		"Value": i.Value,
	}

	return json.Marshal(m)
}

// Define the known Item Types.
const (
	EOF Type = iota
	Nada
	Error
	// expr separator
	Separator
	// identifiers
	Ident
	// literal values
	Number
	DoubleQuoteString
	SingleQuoteString
	BacktickString
	// comments
	HashComment
	SlashComment
	// code block
	LeftBrace
	RightBrace
	// parens
	LeftParen
	RightParen
	// list literal
	LeftBracket
	RightBracket
	// prefix operators
	Not
	// infix operators
	Comma
	Plus
	Minus
	Mult
	Div
	Modulo
	Equal
	NotEqual
	Greater
	GreaterOrEqual
	Less
	LessOrEqual
	Dot
	Assign
	Pipe
	PlusAssign
	MinusAssign
	MultAssign
	DivAssign
	ModuloAssign
	Or
	And
	// keywords
	Let
	Par
	Function
	Return
	Nil
	True
	False
	// node types synthesized by the parser
	FuncApply
	Group
	List
	// max number of Item Types
	TypeCount
)

var typeNames = map[Type]string{
	EOF:               "EOF",
	Nada:              "Nada",
	Error:             "Error",
	Separator:         "Separator",
	Ident:             "Ident",
	Number:            "Number",
	DoubleQuoteString: "DoubleQuoteString",
	SingleQuoteString: "SingleQuoteString",
	BacktickString:    "BacktickString",
	HashComment:       "HashComment",
	SlashComment:      "SlashComment",
	LeftBrace:         "LeftBrace",
	RightBrace:        "RightBrace",
	LeftParen:         "LeftParen",
	RightParen:        "RightParen",
	LeftBracket:       "LeftBracket",
	RightBracket:      "RightBracket",
	Not:               "Not",
	Comma:             "Comma",
	Plus:              "Plus",
	Minus:             "Minus",
	Mult:              "Mult",
	Div:               "Div",
	Modulo:            "Modulo",
	Equal:             "Equal",
	NotEqual:          "NotEqual",
	Greater:           "Greater",
	GreaterOrEqual:    "GreaterOrEqual",
	Less:              "Less",
	LessOrEqual:       "LessOrEqual",
	Dot:               "Dot",
	Assign:            "Assign",
	Pipe:              "Pipe",
	PlusAssign:        "PlusAssign",
	MinusAssign:       "MinusAssign",
	MultAssign:        "MultAssign",
	DivAssign:         "DivAssign",
	ModuloAssign:      "ModuloAssign",
	Or:                "Or",
	And:               "And",
	Let:               "Let",
	Par:               "Par",
	Function:          "Function",
	Return:            "Return",
	Nil:               "Nil",
	True:              "True",
	False:             "False",
	FuncApply:         "FuncApply",
	Group:             "Group",
	List:              "List",
}

// String returns string name of a Type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
