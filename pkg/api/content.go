package api

import "fmt"

// ContentKind tags the variant held by a Content value.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentText
	ContentViewModel
)

func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentViewModel:
		return "view-model"
	default:
		return "empty"
	}
}

// Content is the header or body payload of a step: either plain text or an
// opaque view model interpreted by the rendering surface. Renderers switch
// on Kind instead of inspecting dynamic types.
type Content struct {
	kind  ContentKind
	text  string
	model any
}

// Text returns a plain text payload.
func Text(s string) Content {
	return Content{kind: ContentText, text: s}
}

// ViewModel returns a rich payload. A nil model yields the empty payload.
func ViewModel(model any) Content {
	if model == nil {
		return Content{}
	}
	return Content{kind: ContentViewModel, model: model}
}

// ContentOf converts a loosely typed value into a Content: strings become
// Text, Content values are kept, nil is empty and anything else is treated
// as a view model.
func ContentOf(v any) Content {
	switch x := v.(type) {
	case nil:
		return Content{}
	case Content:
		return x
	case string:
		return Text(x)
	default:
		return ViewModel(x)
	}
}

func (c Content) Kind() ContentKind { return c.kind }

// IsZero reports whether c carries no payload.
func (c Content) IsZero() bool { return c.kind == ContentEmpty }

// AsText returns the text payload and whether c is a text payload.
func (c Content) AsText() (string, bool) {
	return c.text, c.kind == ContentText
}

// AsViewModel returns the view model and whether c is a view-model payload.
func (c Content) AsViewModel() (any, bool) {
	return c.model, c.kind == ContentViewModel
}

// String returns the text payload, the String() of a view model that
// implements fmt.Stringer, or "".
func (c Content) String() string {
	switch c.kind {
	case ContentText:
		return c.text
	case ContentViewModel:
		if s, ok := c.model.(fmt.Stringer); ok {
			return s.String()
		}
	}
	return ""
}
