package model

import "encoding/json"

// Icon is a closed set of display icon identifiers. Records and user
// input carry arbitrary strings; ParseIcon pins them to this set so an
// unknown name can never linger in the tree rendering as a silent
// fallback forever.
type Icon string

const (
	IconFileText    Icon = "FileText"
	IconVote        Icon = "Vote"
	IconCalendar    Icon = "Calendar"
	IconMapPin      Icon = "MapPin"
	IconUser        Icon = "User"
	IconFingerprint Icon = "Fingerprint"
	IconSmartphone  Icon = "Smartphone"
	IconHome        Icon = "Home"
	IconCreditCard  Icon = "CreditCard"
	IconLock        Icon = "Lock"
)

// DefaultIcon is what services fall back to when created without an icon
// and what unknown identifiers normalize to.
const DefaultIcon = IconFileText

var knownIcons = map[Icon]string{
	IconFileText:    "▤",
	IconVote:        "✉",
	IconCalendar:    "▦",
	IconMapPin:      "⚲",
	IconUser:        "☺",
	IconFingerprint: "❋",
	IconSmartphone:  "▯",
	IconHome:        "⌂",
	IconCreditCard:  "▭",
	IconLock:        "⚿",
}

// ParseIcon maps a raw identifier onto the closed set, substituting
// DefaultIcon for anything unknown (including the empty string).
func ParseIcon(s string) Icon {
	if _, ok := knownIcons[Icon(s)]; ok {
		return Icon(s)
	}
	return DefaultIcon
}

// Glyph is the terminal symbol used when rendering the icon.
func (i Icon) Glyph() string {
	if g, ok := knownIcons[i]; ok {
		return g
	}
	return knownIcons[DefaultIcon]
}

// Icons lists the closed set in a stable order, for pickers.
func Icons() []Icon {
	return []Icon{
		IconFileText, IconVote, IconCalendar, IconMapPin, IconUser,
		IconFingerprint, IconSmartphone, IconHome, IconCreditCard, IconLock,
	}
}

func (i *Icon) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*i = ParseIcon(s)
	return nil
}
