package domain

import "go.trai.ch/zerr"

var (
	// ErrNoMatchingVariant is returned when a component has no variant
	// compatible with the requested attributes. It triggers transform
	// chain search, not a terminal failure.
	ErrNoMatchingVariant = zerr.New("no variant matching requested attributes")

	// ErrAmbiguousVariant is returned when more than one variant survives
	// disambiguation.
	ErrAmbiguousVariant = zerr.New("multiple variants match requested attributes")

	// ErrNoTransformChain is returned when no registered transform chain
	// bridges any existing variant to the requested attributes.
	ErrNoTransformChain = zerr.New("no variant matching requested attributes, and no transform chain found")

	// ErrAmbiguousChain is returned when more than one transform chain
	// survives selection-policy tie-breaking.
	ErrAmbiguousChain = zerr.New("multiple transform chains produce requested attributes")

	// ErrTransformFailed is returned when a transform action fails.
	// The step fails, the chain fails, and nothing is cached.
	ErrTransformFailed = zerr.New("transform execution failed")

	// ErrUnknownAction is returned when a registration names an action
	// the action runner has no definition for.
	ErrUnknownAction = zerr.New("unknown transform action")

	// ErrNoRequestAttributes is returned when a resolution request
	// carries an empty attribute set.
	ErrNoRequestAttributes = zerr.New("no attributes requested")
)
