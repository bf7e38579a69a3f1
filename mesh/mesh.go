// Package mesh builds and submits vertex data: an immediate-mode buffer
// builder with named attributes, a persistent streaming vertex renderer, and
// instanced meshes with explicit destruction.
//
package mesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// Validation errors returned before any device call is issued, leaving the
// device state untouched.
var (
	ErrIncompleteTriangles = errors.New("data is missing vertices as defined by the buffer layout")
	ErrMalformedData       = errors.New("data does not align with vertex format")
)

// AttributeNameError reports a value submitted for an attribute the format
// does not declare.
//
type AttributeNameError struct {
	Name string
}

func (e *AttributeNameError) Error() string {
	return fmt.Sprintf("invalid attribute name: %q", e.Name)
}

// AttributeSizeError reports a value whose element count does not match the
// declared attribute size.
//
type AttributeSizeError struct {
	Name     string
	Expected int
	Got      int
}

func (e *AttributeSizeError) Error() string {
	return fmt.Sprintf("attribute %q expects a value size of %d, got %d", e.Name, e.Expected, e.Got)
}

// Attribute is one float32 vertex attribute at a shader location.
//
type Attribute struct {
	Location uint32
	Size     int32
}

// Layout describes the per-vertex attribute arrangement of a buffer.
//
type Layout struct {
	attrs  []Attribute
	stride int32
}

// NewLayout returns a Layout over the given attributes, in order.
//
func NewLayout(attrs ...Attribute) Layout {
	var stride int32
	for _, a := range attrs {
		stride += a.Size
	}
	return Layout{attrs: attrs, stride: stride}
}

// Stride returns the number of float32 values per vertex.
//
func (l Layout) Stride() int32 {
	return l.stride
}

// Attributes returns the layout's attributes in declaration order.
//
func (l Layout) Attributes() []Attribute {
	return l.attrs
}
