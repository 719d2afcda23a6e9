package eval

import (
	"github.com/lagopus-go/dsinterp/internal/tokenize"
)

func splitStatements(text string) []string {
	return tokenize.Tokenize(text, "\r\n")
}

func tokenizeStatement(stmt string) ([]string, error) {
	return tokenize.TokenizeQuote(stmt, " \t\r\n", "\"'")
}
