package importtree

import "errors"

var (
	// ErrRowNotFound indicates the row ID or path is not in the tree.
	ErrRowNotFound = errors.New("import row not found")

	// ErrUnknownField indicates an edit names a field rows do not have.
	ErrUnknownField = errors.New("unknown import field")

	// ErrInvalidValue indicates an edit value cannot be parsed for its field.
	ErrInvalidValue = errors.New("invalid value for import field")

	// ErrFolderField indicates an edit targets a field folder rows do not carry.
	ErrFolderField = errors.New("field not available on folder rows")
)
