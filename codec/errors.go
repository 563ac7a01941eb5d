package codec

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedDocument is returned when the input text is not
	// well-formed YAML or JSON. Match with errors.Is.
	ErrMalformedDocument = zerr.New("malformed document")

	// ErrSchemaMismatch is returned when a value cannot be coerced to the
	// declared type of its field. The error metadata carries the offending
	// field path.
	ErrSchemaMismatch = zerr.New("schema mismatch")

	// ErrSerializationFailure is returned when an in-memory value cannot be
	// represented in the target format.
	ErrSerializationFailure = zerr.New("serialization failure")
)

func malformed(cause error) error {
	return zerr.Wrap(ErrMalformedDocument, cause.Error())
}

// mismatch reports that the node at path did not hold the expected shape.
// The sentinel is wrapped so callers can match with errors.Is; the location
// details ride as metadata.
func mismatch(path, expected string, n *yaml.Node) error {
	err := zerr.With(zerr.Wrap(ErrSchemaMismatch, "expected "+expected+" at "+path), "path", path)
	err = zerr.With(err, "expected", expected)
	if n != nil {
		err = zerr.With(err, "found", describeNode(n))
		err = zerr.With(err, "line", n.Line)
	}
	return err
}

func unserializable(path, reason string) error {
	return zerr.With(zerr.Wrap(ErrSerializationFailure, reason), "path", path)
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar " + n.Tag
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}
