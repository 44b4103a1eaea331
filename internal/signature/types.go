package signature

import (
	"slices"
	"strings"
)

// AccessModifier is the optional visibility keyword of a declaration.
// The zero value means no modifier was present.
type AccessModifier string

const (
	NoModifier AccessModifier = ""
	Private    AccessModifier = "private"
	Protected  AccessModifier = "protected"
	Public     AccessModifier = "public"
)

// accessModifiers lists the recognised keywords
var accessModifiers = []AccessModifier{Private, Public, Protected}

// IsValid returns true for one of the recognised keywords
func (m AccessModifier) IsValid() bool {
	return slices.Contains(accessModifiers, m)
}

func (m AccessModifier) String() string {
	return string(m)
}

// Argument is one typed parameter of a declaration
type Argument struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// NewArgument creates an argument value
func NewArgument(typ, name string) Argument {
	return Argument{Type: typ, Name: name}
}

func (a Argument) String() string {
	return a.Type + " " + a.Name
}

// MethodSignature holds the fields extracted from one declaration line.
// AccessModifier and ReturnType are optional and empty when absent.
type MethodSignature struct {
	AccessModifier AccessModifier `json:"access_modifier,omitempty" yaml:"access_modifier,omitempty"`
	ReturnType     string         `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Name           string         `json:"name" yaml:"name"`
	Arguments      []Argument     `json:"arguments" yaml:"arguments"`
}

// NewMethodSignature creates a signature with its required fields
func NewMethodSignature(name string, arguments []Argument) *MethodSignature {
	if arguments == nil {
		arguments = []Argument{}
	}
	return &MethodSignature{
		Name:      name,
		Arguments: arguments,
	}
}

// SetAccessModifier sets the optional modifier
func (m *MethodSignature) SetAccessModifier(modifier AccessModifier) {
	m.AccessModifier = modifier
}

// SetReturnType sets the optional return type
func (m *MethodSignature) SetReturnType(returnType string) {
	m.ReturnType = returnType
}

// HasAccessModifier reports whether a modifier was found
func (m *MethodSignature) HasAccessModifier() bool {
	return m.AccessModifier != NoModifier
}

// HasReturnType reports whether a return type was found
func (m *MethodSignature) HasReturnType() bool {
	return m.ReturnType != ""
}

// Clone returns a copy that shares no argument storage with m
func (m *MethodSignature) Clone() *MethodSignature {
	c := *m
	c.Arguments = slices.Clone(m.Arguments)
	if c.Arguments == nil {
		c.Arguments = []Argument{}
	}
	return &c
}

// Equal compares all fields, treating nil and empty argument lists alike
func (m *MethodSignature) Equal(other *MethodSignature) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.AccessModifier == other.AccessModifier &&
		m.ReturnType == other.ReturnType &&
		m.Name == other.Name &&
		slices.Equal(m.Arguments, other.Arguments)
}

// String renders the canonical declaration: [modifier ]returnType name(type1 name1, type2 name2)
func (m *MethodSignature) String() string {
	var b strings.Builder
	if m.HasAccessModifier() {
		b.WriteString(string(m.AccessModifier))
		b.WriteByte(' ')
	}
	if m.HasReturnType() {
		b.WriteString(m.ReturnType)
		b.WriteByte(' ')
	}
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, arg := range m.Arguments {
		if i > 0 {
			b.WriteString(argumentSeparator)
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}
