package signature

import (
	stderrors "errors"
	"fmt"

	"github.com/Sunkar2710/sigkit/internal/errors"
)

// Sentinels for errors.Is checks
var (
	ErrFieldMissing = stderrors.New("required field missing")
	ErrSyntax       = stderrors.New("syntax error")
)

// Required fields reported by FieldMissing errors
const (
	FieldName         = "name"
	FieldArguments    = "arguments"
	FieldArgumentType = "argument type"
	FieldArgumentName = "argument name"
)

const formatHint = "Use format: [modifier ]returnType name(type1 name1, type2 name2)"

// ParseError reports a required field that could not be located.
// Parsing stops at the first one.
type ParseError struct {
	*errors.BaseError
	Field    string // one of the Field* constants
	Input    string // the full signature line
	Argument int    // 1-based position of the offending argument, 0 for name/arguments
}

func newFieldMissing(field, input string, offset int) *ParseError {
	base := errors.Newf(errors.FieldMissingErrorCode, "%s: %s", ErrFieldMissing, field).
		WithContext("field", field).
		WithSuggestion(formatHint)
	if offset >= 0 {
		base.WithLocation(errors.SourceLocation{Column: offset + 1})
	}
	return &ParseError{
		BaseError: base,
		Field:     field,
		Input:     input,
	}
}

func newArgumentFieldMissing(field, input, fragment string, index, offset int) *ParseError {
	err := newFieldMissing(field, input, offset)
	err.Argument = index
	err.Message = fmt.Sprintf("%s (argument %d %q)", err.Message, index, fragment)
	err.WithContext("argument", index)
	err.WithSuggestion("Separate arguments with exactly \", \" and give each one a type and a name")
	return err
}

// Is matches ErrFieldMissing
func (e *ParseError) Is(target error) bool {
	return target == ErrFieldMissing
}

// SyntaxError reports input the grammar engine could not accept
type SyntaxError struct {
	*errors.BaseError
	Input string
}

func newSyntaxError(message, input string, column int) *SyntaxError {
	base := errors.Newf(errors.SyntaxErrorCode, "%s: %s", ErrSyntax, message).
		WithSuggestion(formatHint)
	if column > 0 {
		base.WithLocation(errors.SourceLocation{Column: column})
	}
	return &SyntaxError{
		BaseError: base,
		Input:     input,
	}
}

// Is matches ErrSyntax
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
