// Package signature extracts access modifier, return type, name and typed
// arguments from one-line Java-like method declarations such as
//
//	private void log(String value)
//	Vector3 distort(int x, int y, int z, float magnitude)
//	public DateTime getCurrentDateTime()
//
// The default Scanner runs five independent passes over the input. Name and
// arguments are required; modifier and return type are left empty when absent.
package signature

import (
	"strings"
)

// argumentSeparator splits the argument list. Any other spacing around commas misparses.
const argumentSeparator = ", "

// Scanner is the default engine
type Scanner struct{}

// NewScanner creates the default engine
func NewScanner() *Scanner {
	return &Scanner{}
}

var defaultScanner = NewScanner()

// Parse parses sig with the default engine
func Parse(sig string) (*MethodSignature, error) {
	return defaultScanner.Parse(sig)
}

// Parse extracts the structured fields of sig
func (s *Scanner) Parse(sig string) (*MethodSignature, error) {
	name, ok := scanMethodName(sig)
	if !ok {
		return nil, newFieldMissing(FieldName, sig, strings.IndexByte(sig, '('))
	}

	inner, innerOffset, ok := scanArgumentList(sig)
	if !ok {
		return nil, newFieldMissing(FieldArguments, sig, strings.IndexByte(sig, '('))
	}

	arguments := []Argument{}
	if inner != "" {
		for i, frag := range splitFragments(inner, innerOffset) {
			arg, err := scanArgument(sig, frag, i+1)
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
		}
	}

	result := NewMethodSignature(name, arguments)

	modifier, modifierEnd := scanAccessModifier(sig)
	result.SetAccessModifier(modifier)
	result.SetReturnType(scanReturnType(sig, modifier, modifierEnd))

	return result, nil
}

// scanMethodName finds the letter run right before the first '(' that has one.
// Whitespace may sit between the run and the parenthesis.
func scanMethodName(sig string) (string, bool) {
	for i := 0; i < len(sig); i++ {
		if sig[i] != '(' {
			continue
		}
		end := i
		for end > 0 && isSpace(sig[end-1]) {
			end--
		}
		start := end
		for start > 0 && isLetter(sig[start-1]) {
			start--
		}
		if start < end {
			return sig[start:end], true
		}
	}
	return "", false
}

// scanArgumentList returns the trimmed text between the first '(' and the first ')' after it,
// along with the byte offset of that text in sig.
func scanArgumentList(sig string) (string, int, bool) {
	open := strings.IndexByte(sig, '(')
	if open < 0 {
		return "", 0, false
	}
	closing := strings.IndexByte(sig[open+1:], ')')
	if closing < 0 {
		return "", 0, false
	}
	raw := sig[open+1 : open+1+closing]
	trimmed := strings.TrimLeftFunc(raw, isSpaceRune)
	offset := open + 1 + len(raw) - len(trimmed)
	return strings.TrimRightFunc(trimmed, isSpaceRune), offset, true
}

type fragment struct {
	text   string
	offset int
}

func splitFragments(inner string, base int) []fragment {
	var fragments []fragment
	start := 0
	for {
		idx := strings.Index(inner[start:], argumentSeparator)
		if idx < 0 {
			return append(fragments, fragment{text: inner[start:], offset: base + start})
		}
		fragments = append(fragments, fragment{text: inner[start : start+idx], offset: base + start})
		start += idx + len(argumentSeparator)
	}
}

// scanArgument takes the leading letter run as the type and the trailing letter run as the name.
// Both must exist and be distinct runs.
func scanArgument(sig string, frag fragment, index int) (Argument, error) {
	text := strings.TrimLeftFunc(frag.text, isSpaceRune)
	offset := frag.offset + len(frag.text) - len(text)
	text = strings.TrimRightFunc(text, isSpaceRune)

	typeEnd := 0
	for typeEnd < len(text) && isLetter(text[typeEnd]) {
		typeEnd++
	}
	if typeEnd == 0 {
		return Argument{}, newArgumentFieldMissing(FieldArgumentType, sig, frag.text, index, offset)
	}

	nameStart := len(text)
	for nameStart > 0 && isLetter(text[nameStart-1]) {
		nameStart--
	}
	if nameStart == len(text) || nameStart < typeEnd {
		return Argument{}, newArgumentFieldMissing(FieldArgumentName, sig, frag.text, index, offset+typeEnd)
	}

	return NewArgument(text[:typeEnd], text[nameStart:]), nil
}

// scanAccessModifier returns the first whole-word modifier keyword and the offset just past it
func scanAccessModifier(sig string) (AccessModifier, int) {
	for i := 0; i < len(sig); {
		if !isWord(sig[i]) {
			i++
			continue
		}
		end := i
		for end < len(sig) && isWord(sig[end]) {
			end++
		}
		if m := AccessModifier(sig[i:end]); m.IsValid() {
			return m, end
		}
		i = end
	}
	return NoModifier, -1
}

// scanReturnType reads the word after the modifier and at least one whitespace character,
// or the leading word when there is no modifier.
func scanReturnType(sig string, modifier AccessModifier, modifierEnd int) string {
	start := 0
	if modifier != NoModifier {
		if modifierEnd >= len(sig) || !isSpace(sig[modifierEnd]) {
			return ""
		}
		start = modifierEnd
	}
	for start < len(sig) && isSpace(sig[start]) {
		start++
	}
	end := start
	for end < len(sig) && isWord(sig[end]) {
		end++
	}
	return sig[start:end]
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isWord(b byte) bool {
	return isLetter(b) || '0' <= b && b <= '9' || b == '_'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isSpaceRune(r rune) bool {
	return r < 0x80 && isSpace(byte(r))
}
