package jsfilter

import (
	"strings"

	"js-translator/internal/codefinder"
)

// MimeType is the MIME type stamped on text units of this filter.
const MimeType = "application/javascript"

// Parameters configures extraction. Empty rule strings disable their tier.
type Parameters struct {
	// ExtractStandalone extracts strings that have no key.
	ExtractStandalone bool
	// ExtractAllPairs is the legacy default used when ExtractionRules is empty.
	ExtractAllPairs bool
	// Exceptions inverts ExtractAllPairs for key paths it partially matches.
	Exceptions string
	// UseKeyAsName names text units after their key path.
	UseKeyAsName bool
	// UseFullKeyPath builds slash-joined paths from the enclosing scopes.
	UseFullKeyPath bool
	// UseLeadingSlashOnKeyPath keeps the leading "/" of full key paths.
	UseLeadingSlashOnKeyPath bool
	// UseCodeFinder turns inline markup into codes. Exclusive with Subfilter.
	UseCodeFinder   bool
	CodeFinderRules []string
	// EscapeForwardSlashes writes "/" as "\/" in translated output.
	EscapeForwardSlashes bool

	IDRules          string
	NoteRules        string
	GenericMetaRules string
	ExtractionRules  string
	SubfilterRules   string

	// Subfilter names the filter applied to extracted values. It is
	// resolved by the caller and passed with WithSubfilter.
	Subfilter string
}

// DefaultParameters returns the stock configuration.
func DefaultParameters() Parameters {
	return Parameters{
		ExtractAllPairs:          true,
		UseKeyAsName:             true,
		UseLeadingSlashOnKeyPath: true,
		EscapeForwardSlashes:     true,
		CodeFinderRules:          []string{codefinder.DefaultRule},
	}
}

// normalized trims every rule string.
func (p Parameters) normalized() Parameters {
	p.Exceptions = strings.TrimSpace(p.Exceptions)
	p.IDRules = strings.TrimSpace(p.IDRules)
	p.NoteRules = strings.TrimSpace(p.NoteRules)
	p.GenericMetaRules = strings.TrimSpace(p.GenericMetaRules)
	p.ExtractionRules = strings.TrimSpace(p.ExtractionRules)
	p.SubfilterRules = strings.TrimSpace(p.SubfilterRules)
	p.Subfilter = strings.TrimSpace(p.Subfilter)
	return p
}
