package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codedBold() Fragment {
	return Fragment{
		Text:  "Press " + Marker(0) + "OK" + Marker(1) + " now",
		Codes: []Code{{ID: 1, Data: "<b>", Display: "<b>"}, {ID: 2, Data: "</b>", Display: "</b>"}},
	}
}

func TestFragmentPlain(t *testing.T) {
	assert.Equal(t, "Press <b>OK</b> now", codedBold().Plain())
	assert.Equal(t, "no codes", NewFragment("no codes").Plain())
}

func TestFragmentSegments(t *testing.T) {
	var pieces []string
	codedBold().Segments(func(text string, code *Code) {
		if code != nil {
			pieces = append(pieces, "code:"+code.Data)
			return
		}
		pieces = append(pieces, text)
	})
	assert.Equal(t, []string{"Press ", "code:<b>", "OK", "code:</b>", " now"}, pieces)
}

func TestFragmentRecode(t *testing.T) {
	f := codedBold()
	assert.Equal(t, "Drücke "+Marker(0)+"OK"+Marker(1)+" jetzt", f.Recode("Drücke <b>OK</b> jetzt"))
	assert.Equal(t, "OK"+Marker(1), f.Recode("OK</b>"))
	assert.Equal(t, "plain", NewFragment("x").Recode("plain"))
}

func TestSkeletonAppendMerges(t *testing.T) {
	var s Skeleton
	s.Append("{")
	s.Append("\"k\": ")
	s.AppendRef("sf1")
	s.Append("")
	s.Append("}")
	assert.Equal(t, Skeleton{
		{Kind: Literal, Text: "{\"k\": "},
		{Kind: Ref, Text: "sf1"},
		{Kind: Literal, Text: "}"},
	}, s)
	assert.Equal(t, "{\"k\": [#$ref:sf1]}", s.String())
}

func TestTextUnitSetTarget(t *testing.T) {
	u := &TextUnit{ID: "tu1", Source: codedBold()}
	u.SetTarget("x" + Marker(0))
	assert.Equal(t, "x<b>", u.Target.Plain())
}
