// Package subfilter provides the filters that can parse values embedded in
// JavaScript strings.
package subfilter

import (
	"errors"
	"fmt"
	"strings"

	"js-translator/internal/jsfilter"
)

// ErrUnknown is returned for a subfilter name that is not registered.
var ErrUnknown = errors.New("unknown subfilter")

// Names lists the registered subfilters.
func Names() []string {
	return []string{"js", "properties", "text"}
}

// Lookup returns the subfilter registered under name. The "js" subfilter
// parses embedded JSON with params, minus any subfilter of its own.
func Lookup(name string, params jsfilter.Parameters) (jsfilter.Subfilter, error) {
	switch strings.TrimSpace(name) {
	case "js":
		params.Subfilter = ""
		params.SubfilterRules = ""
		f, err := jsfilter.New(params)
		if err != nil {
			return nil, fmt.Errorf("create js subfilter: %w", err)
		}
		return f, nil
	case "text":
		return NewText(), nil
	case "properties":
		return NewProperties(), nil
	}
	return nil, fmt.Errorf("%w %q (have %v)", ErrUnknown, name, Names())
}

// NewFilter builds a JavaScript filter for params, resolving the subfilter
// named in params.Subfilter.
func NewFilter(params jsfilter.Parameters) (*jsfilter.Filter, error) {
	if params.Subfilter == "" || params.UseCodeFinder {
		return jsfilter.New(params)
	}
	sub, err := Lookup(params.Subfilter, params)
	if err != nil {
		return nil, err
	}
	return jsfilter.New(params, jsfilter.WithSubfilter(sub))
}
