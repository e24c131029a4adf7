package scanner

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// includeRe matches a byte-level #include directive: "#" optional
// whitespace, "include", optional whitespace, then an opening < or "
// followed by everything up to the next > or ".
var includeRe = regexp.MustCompile(`#\s*include\s*[<"]([^>"]+)`)

// includeRe16 is the little-endian UTF-16 analogue: every ASCII byte in
// the pattern above is followed by a zero byte, matching how an ASCII
// source string is laid out as UTF-16LE code units.
var includeRe16 = regexp.MustCompile("#\x00[\\s\x00]*i\x00n\x00c\x00l\x00u\x00d\x00e\x00[\\s\x00]*[<\"]\x00([^>\"]+)")

// extractIncludes pulls every textual #include target out of raw file
// content. It tries the byte-level regex first; only when that yields
// zero matches does it fall back to decoding the content as
// little-endian UTF-16 and matching again. Preprocessor conditionals
// are not evaluated -- every syntactic include contributes an entry
// regardless of surrounding #if state.
//
// warnMalformed, when non-nil, is called once per include string that
// contained "../" before truncation (the salvage rule below).
func extractIncludes(content []byte, warnMalformed func(include string)) []string {
	var includes []string

	for _, m := range includeRe.FindAllSubmatch(content, -1) {
		includes = append(includes, normalizeInclude(string(m[1]), warnMalformed))
	}

	if len(includes) == 0 {
		for _, m := range includeRe16.FindAllSubmatch(content, -1) {
			includes = append(includes, normalizeInclude(decodeUTF16LE(m[1]), warnMalformed))
		}
	}

	return includes
}

// decodeUTF16LE decodes a byte slice of little-endian UTF-16 code units
// (native order, no BOM handling beyond what the caller already
// stripped) into a Go string.
func decodeUTF16LE(b []byte) string {
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(units))
}

// normalizeInclude backslash-normalizes an include string and applies
// the malformed-include salvage rule: if "../" occurs anywhere in the
// string, the string is truncated to the substring after the LAST such
// occurrence, discarding the prefix.
func normalizeInclude(include string, warnMalformed func(include string)) string {
	include = strings.ReplaceAll(include, "\\", "/")
	if idx := strings.LastIndex(include, "../"); idx >= 0 {
		if warnMalformed != nil {
			warnMalformed(include)
		}
		include = include[idx+3:]
	}
	return include
}
