package papers

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxIdentifierLength is the longest identifier, in bytes, that still leaves
// room for the file extension within a typical 255-byte file name limit.
const MaxIdentifierLength = 255 - len(Extension)

var errPathSeparator = errors.New("must not contain path separators or NUL bytes")

// identifierRules restrict identifiers to a single file name inside the
// storage root.
var identifierRules = []validation.Rule{
	validation.Required,
	validation.Length(1, MaxIdentifierLength),
	validation.NotIn(".", "..").Error("must not be a relative path element"),
	validation.By(noPathSeparators),
}

// ValidateIdentifier reports whether id can be used to look up a paper.
func ValidateIdentifier(id string) error {
	return validation.Validate(id, identifierRules...)
}

func noPathSeparators(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "/\\\x00") {
		return errPathSeparator
	}
	return nil
}
