package domain

import "errors"

// ErrMissingHeader is returned when CSV input has no header record.
var ErrMissingHeader = errors.New("csv input has no header row")

// ErrRaggedRow is returned when a CSV data row does not match the header
// width and the strict row policy is in effect.
var ErrRaggedRow = errors.New("csv row length does not match header")

// ErrUnknownLayout is returned for an unrecognised CSV layout name.
var ErrUnknownLayout = errors.New("unknown csv layout")

// ErrUnknownStyle is returned for an unrecognised render style name.
var ErrUnknownStyle = errors.New("unknown render style")

// ErrUnknownRowPolicy is returned for an unrecognised ragged row policy name.
var ErrUnknownRowPolicy = errors.New("unknown row policy")

// ErrBrokenParentLink is returned when a child's back-reference does not
// point at the node that holds it.
var ErrBrokenParentLink = errors.New("parent back-reference mismatch")

// ErrSharedNode is returned when the same node is reachable twice,
// either because it is attached to two parents or because of a cycle.
var ErrSharedNode = errors.New("node attached more than once")

// ErrMissingURL is returned when a markup fetch is requested without a URL.
var ErrMissingURL = errors.New("url is required")

// ErrFetch wraps failures to retrieve a markup document.
var ErrFetch = errors.New("failed to fetch")
