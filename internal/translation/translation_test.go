package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"js-translator/internal/event"
)

func TestPseudoText(t *testing.T) {
	assert.Equal(t, "[Hélló {0}, %s léft]", PseudoText("Hello {0}, %s left"))
	assert.Equal(t, "[]", PseudoText(""))
}

func TestPseudoKeepsCodes(t *testing.T) {
	u := &event.TextUnit{Source: event.Fragment{
		Text:  event.Marker(0) + "on" + event.Marker(1),
		Codes: []event.Code{{Data: "<i>"}, {Data: "</i>"}},
	}}
	got, ok := Pseudo()(u)
	assert.True(t, ok)
	assert.Equal(t, "["+event.Marker(0)+"óñ"+event.Marker(1)+"]", got)
}

func TestFromMap(t *testing.T) {
	fn := FromMap(map[string]string{"Save <b>now</b>": "Jetzt <b>speichern</b>"})

	u := &event.TextUnit{Source: event.Fragment{
		Text:  "Save " + event.Marker(0) + "now" + event.Marker(1),
		Codes: []event.Code{{Data: "<b>"}, {Data: "</b>"}},
	}}
	got, ok := fn(u)
	assert.True(t, ok)
	assert.Equal(t, "Jetzt "+event.Marker(0)+"speichern"+event.Marker(1), got)

	_, ok = fn(&event.TextUnit{Source: event.NewFragment("other")})
	assert.False(t, ok)
}
