// Package jsonfrag augments hand-assembled JSON result documents without a
// full unmarshal/remarshal round trip, using the same fast string-escaping
// primitives zerolog's own encoder is built on. It mirrors original_source's
// datastore_json_result_string_setf, which builds one JSON object per
// evaluated statement and tags file-mode results with their logical line.
// No other package in this module calls it: cmd/dsinterpd's config-file
// loader reports a failing line as a "path:line:" prefix on the returned
// error instead.
package jsonfrag

import (
	"bytes"
	"strconv"

	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// AugmentWithLine inserts a "line" field with value lineNo as the first key
// of a JSON object document. If doc does not contain an opening brace it is
// returned unchanged.
func AugmentWithLine(doc []byte, lineNo int) []byte {
	idx := bytes.IndexByte(doc, '{')
	if idx < 0 {
		return doc
	}
	insertAt := idx + 1

	frag := jsonenc.AppendString(nil, "line")
	frag = append(frag, ':')
	frag = strconv.AppendInt(frag, int64(lineNo), 10)
	if rest := bytes.TrimLeft(doc[insertAt:], " \t\r\n"); len(rest) > 0 && rest[0] != '}' {
		frag = append(frag, ',')
	}

	out := make([]byte, 0, len(doc)+len(frag))
	out = append(out, doc[:insertAt]...)
	out = append(out, frag...)
	out = append(out, doc[insertAt:]...)
	return out
}

// QuoteDetail returns s as an escaped JSON string literal (including the
// surrounding quotes), for embedding raw command or error text that may
// contain quotes or control characters into a hand-assembled fragment.
func QuoteDetail(s string) string {
	return string(jsonenc.AppendString(nil, s))
}
