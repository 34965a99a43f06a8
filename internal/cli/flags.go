package cli

import (
	"github.com/spf13/pflag"

	"js-translator/internal/jsfilter"
)

// filterFlags are the persistent switches that override the JS_* settings.
type filterFlags struct {
	extractStandalone bool
	extractAll        bool
	useKeyAsName      bool
	fullKeyPath       bool
	leadingSlash      bool
	codeFinder        bool
	escapeSlashes     bool

	exceptions      string
	idRules         string
	noteRules       string
	metaRules       string
	extractionRules string
	subfilterRules  string
	subfilter       string
	codeRules       []string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.extractStandalone, "extract-standalone", false, "Extract strings that have no key")
	fs.BoolVar(&f.extractAll, "extract-all", true, "Extract every key/value pair unless excepted")
	fs.BoolVar(&f.useKeyAsName, "key-as-name", true, "Name text units after their key path")
	fs.BoolVar(&f.fullKeyPath, "full-key-path", false, "Use slash-joined key paths")
	fs.BoolVar(&f.leadingSlash, "leading-slash", true, "Keep the leading slash of full key paths")
	fs.BoolVar(&f.codeFinder, "code-finder", false, "Turn inline markup into codes")
	fs.BoolVar(&f.escapeSlashes, "escape-slashes", true, `Write "/" as "\/" in translated strings`)

	fs.StringVar(&f.exceptions, "exceptions", "", "Key regex that inverts --extract-all")
	fs.StringVar(&f.idRules, "id-rules", "", "Key regex whose value names the enclosing object's units")
	fs.StringVar(&f.noteRules, "note-rules", "", "Key regex whose value becomes a translator note")
	fs.StringVar(&f.metaRules, "meta-rules", "", "Key regex whose value becomes metadata")
	fs.StringVar(&f.extractionRules, "extraction-rules", "", "Key regex of values to extract")
	fs.StringVar(&f.subfilterRules, "subfilter-rules", "", "Key regex of values handed to the subfilter")
	fs.StringVar(&f.subfilter, "subfilter", "", "Subfilter for matching values: js, properties or text")
	fs.StringArrayVar(&f.codeRules, "code-rules", nil, "Code finder regex, repeatable")
}

// apply overrides p with the flags that were set on the command line.
func (f *filterFlags) apply(fs *pflag.FlagSet, p *jsfilter.Parameters) {
	bools := []struct {
		name string
		dst  *bool
		val  bool
	}{
		{"extract-standalone", &p.ExtractStandalone, f.extractStandalone},
		{"extract-all", &p.ExtractAllPairs, f.extractAll},
		{"key-as-name", &p.UseKeyAsName, f.useKeyAsName},
		{"full-key-path", &p.UseFullKeyPath, f.fullKeyPath},
		{"leading-slash", &p.UseLeadingSlashOnKeyPath, f.leadingSlash},
		{"code-finder", &p.UseCodeFinder, f.codeFinder},
		{"escape-slashes", &p.EscapeForwardSlashes, f.escapeSlashes},
	}
	for _, b := range bools {
		if fs.Changed(b.name) {
			*b.dst = b.val
		}
	}

	strs := []struct {
		name string
		dst  *string
		val  string
	}{
		{"exceptions", &p.Exceptions, f.exceptions},
		{"id-rules", &p.IDRules, f.idRules},
		{"note-rules", &p.NoteRules, f.noteRules},
		{"meta-rules", &p.GenericMetaRules, f.metaRules},
		{"extraction-rules", &p.ExtractionRules, f.extractionRules},
		{"subfilter-rules", &p.SubfilterRules, f.subfilterRules},
		{"subfilter", &p.Subfilter, f.subfilter},
	}
	for _, s := range strs {
		if fs.Changed(s.name) {
			*s.dst = s.val
		}
	}

	if fs.Changed("code-rules") {
		p.CodeFinderRules = f.codeRules
	}
}
