package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionJSONRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		sec  Section
	}{
		{"icon hint", Section{
			ID: "sec-1", Title: "Proof of Address",
			Description: "One required.",
			Hint:        IconHint(IconMapPin),
			Items:       []Item{{ID: "item-1", Name: "Ration Card", Mandatory: true}},
		}},
		{"image hint", Section{
			ID: "sec-2", Title: "Photos",
			Hint:  ImageHint("https://example.test/photo-specs.png"),
			Items: []Item{},
		}},
		{"no hint", Section{
			ID: "sec-3", Title: "Misc",
			Items: []Item{{ID: "item-2", Name: "Passport", OfflineOnly: true}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.sec)
			require.NoError(t, err)

			var got Section
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, tc.sec, got)
		})
	}
}

func TestSectionJSONWireFormat(t *testing.T) {
	b, err := json.Marshal(Section{ID: "sec-1", Title: "T", Hint: IconHint(IconHome), Items: []Item{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"sec-1","title":"T","iconName":"Home","items":[]}`, string(b))

	b, err = json.Marshal(Section{ID: "sec-2", Title: "T", Hint: ImageHint("u"), Items: []Item{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"sec-2","title":"T","imageUrl":"u","items":[]}`, string(b))
}

func TestSectionUnmarshalLegacyBothFields(t *testing.T) {
	// older records could carry both display fields; icon wins
	raw := `{"id":"sec-1","title":"T","iconName":"Home","imageUrl":"u","items":[]}`
	var sec Section
	require.NoError(t, json.Unmarshal([]byte(raw), &sec))
	assert.Equal(t, IconHint(IconHome), sec.Hint)
}

func TestParseIconNormalizes(t *testing.T) {
	assert.Equal(t, IconVote, ParseIcon("Vote"))
	assert.Equal(t, DefaultIcon, ParseIcon(""))
	assert.Equal(t, DefaultIcon, ParseIcon("SomeNewLucideIcon"))

	var svc Service
	require.NoError(t, json.Unmarshal([]byte(`{"id":"s","name":"n","iconName":"Bogus","sections":[]}`), &svc))
	assert.Equal(t, DefaultIcon, svc.Icon)
}

func TestIconGlyphNeverEmpty(t *testing.T) {
	for _, ic := range Icons() {
		assert.NotEmpty(t, ic.Glyph())
	}
	assert.Equal(t, DefaultIcon.Glyph(), Icon("Bogus").Glyph())
}

func TestServiceCloneIsDeep(t *testing.T) {
	orig := SeedServices()[0]
	cp := orig.Clone()

	cp.Sections[0].Title = "mangled"
	cp.Sections[0].Items[0].Name = "mangled"

	assert.Equal(t, "Proof of Date of Birth", orig.Sections[0].Title)
	assert.Equal(t, "Birth Certificate", orig.Sections[0].Items[0].Name)
}

func TestCheckedStateClone(t *testing.T) {
	orig := CheckedState{"item-1": true}
	cp := orig.Clone()
	cp["item-2"] = true
	assert.False(t, orig["item-2"])
}

func TestSeedServicesFreshPerCall(t *testing.T) {
	a := SeedServices()
	b := SeedServices()
	a[0].Name = "mangled"
	assert.Equal(t, "Voter ID Services", b[0].Name)

	require.Len(t, b, 2)
	assert.Equal(t, "service-voter", b[0].ID)
	assert.Equal(t, "service-aadhaar", b[1].ID)
}
