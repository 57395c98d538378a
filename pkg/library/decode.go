package library

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// decodeStrict returns data as text. The input must be UTF-8; a leading
// byte order mark is dropped.
func decodeStrict(path string, data []byte) (string, *errors.Error) {
	data = bytes.TrimPrefix(data, bom)
	if utf8.Valid(data) {
		return string(data), nil
	}
	return "", errors.Errorf(errors.ErrorTypeEncoding, invalidAt(path, data),
		"file is not valid UTF-8")
}

// decodeLenient returns data as text, decoding it as Windows-1252 when it
// is not UTF-8. The returned warning is nil when no fallback was needed.
func decodeLenient(path string, data []byte) (string, *errors.Error) {
	data = bytes.TrimPrefix(data, bom)
	if utf8.Valid(data) {
		return string(data), nil
	}
	text, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// Windows-1252 maps every byte, so this only guards the decoder API.
		return string(bytes.ToValidUTF8(data, []byte("�"))), errors.Warning(errors.ErrorTypeEncoding,
			invalidAt(path, data), "file is not valid UTF-8; invalid bytes replaced: %v", err)
	}
	return string(text), errors.Warning(errors.ErrorTypeEncoding, invalidAt(path, data),
		"file is not valid UTF-8; decoded as Windows-1252")
}

// invalidAt returns the location of the first invalid UTF-8 sequence.
func invalidAt(path string, data []byte) ast.Location {
	loc := ast.Location{File: path, Line: 1, Column: 1}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return loc
		}
		if r == '\n' {
			loc.Line++
			loc.Column = 1
		} else {
			loc.Column++
		}
		i += size
	}
	return loc
}
