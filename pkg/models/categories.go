package models

import "encoding/json"

// Slot is the loadout slot an item occupies
type Slot int

const (
	SlotUnknown Slot = iota
	SlotAnimatedDecal
	SlotAntenna
	SlotAvatarBorder
	SlotBlueprint
	SlotBody
	SlotCrate
	SlotDecal
	SlotEngineAudio
	SlotGoalExplosion
	SlotPaintFinish
	SlotPlayerAnthem
	SlotPlayerBanner
	SlotPlayerTitle
	SlotRewardItem
	SlotRocketBoost
	SlotTopper
	SlotTrail
	SlotWheels
)

var slotNames = map[Slot]string{
	SlotUnknown:       "",
	SlotAnimatedDecal: "Animated Decal",
	SlotAntenna:       "Antenna",
	SlotAvatarBorder:  "Avatar Border",
	SlotBlueprint:     "Blueprint",
	SlotBody:          "Body",
	SlotCrate:         "Crate",
	SlotDecal:         "Decal",
	SlotEngineAudio:   "Engine Audio",
	SlotGoalExplosion: "Goal Explosion",
	SlotPaintFinish:   "Paint Finish",
	SlotPlayerAnthem:  "Player Anthem",
	SlotPlayerBanner:  "Player Banner",
	SlotPlayerTitle:   "Player Title",
	SlotRewardItem:    "Reward Item",
	SlotRocketBoost:   "Rocket Boost",
	SlotTopper:        "Topper",
	SlotTrail:         "Trail",
	SlotWheels:        "Wheels",
}

var slotValues = invert(slotNames, map[string]Slot{})

// AllSlots lists every slot in declaration order
func AllSlots() []Slot {
	slots := make([]Slot, 0, len(slotNames))
	for s := SlotUnknown; s <= SlotWheels; s++ {
		slots = append(slots, s)
	}
	return slots
}

func (s Slot) String() string {
	if s == SlotUnknown {
		return "Unknown"
	}
	return slotNames[s]
}

// MarshalJSON implements json.Marshaler
func (s Slot) MarshalJSON() ([]byte, error) { return json.Marshal(slotNames[s]) }

// UnmarshalJSON implements json.Unmarshaler
func (s *Slot) UnmarshalJSON(data []byte) error {
	return decodeCategory(data, "slot", slotValues, s)
}

// Paint is the painted color of an item
type Paint int

const (
	PaintNone Paint = iota
	PaintBlack
	PaintBurntSienna
	PaintCobalt
	PaintCrimson
	PaintForestGreen
	PaintGrey
	PaintLime
	PaintOrange
	PaintPink
	PaintPurple
	PaintSaffron
	PaintSkyBlue
	PaintTitaniumWhite
)

var paintNames = map[Paint]string{
	PaintNone:          "none",
	PaintBlack:         "Black",
	PaintBurntSienna:   "Burnt Sienna",
	PaintCobalt:        "Cobalt",
	PaintCrimson:       "Crimson",
	PaintForestGreen:   "Forest Green",
	PaintGrey:          "Grey",
	PaintLime:          "Lime",
	PaintOrange:        "Orange",
	PaintPink:          "Pink",
	PaintPurple:        "Purple",
	PaintSaffron:       "Saffron",
	PaintSkyBlue:       "Sky Blue",
	PaintTitaniumWhite: "Titanium White",
}

var paintValues = invert(paintNames, map[string]Paint{"": PaintNone})

// AllPaints lists every paint in declaration order
func AllPaints() []Paint {
	paints := make([]Paint, 0, len(paintNames))
	for p := PaintNone; p <= PaintTitaniumWhite; p++ {
		paints = append(paints, p)
	}
	return paints
}

func (p Paint) String() string { return paintNames[p] }

// MarshalJSON implements json.Marshaler
func (p Paint) MarshalJSON() ([]byte, error) { return json.Marshal(paintNames[p]) }

// UnmarshalJSON implements json.Unmarshaler
func (p *Paint) UnmarshalJSON(data []byte) error {
	return decodeCategory(data, "paint", paintValues, p)
}

// Certification is the stat an item tracks
type Certification int

const (
	CertificationNone Certification = iota
	CertificationAerialGoals
	CertificationAssists
	CertificationBackwardsGoals
	CertificationBicycleGoals
	CertificationCenters
	CertificationClears
	CertificationEpicSaves
	CertificationGoals
	CertificationJuggles
	CertificationLongGoals
	CertificationMVPs
	CertificationSaves
	CertificationShotsOnGoal
	CertificationTurtleGoals
	CertificationWins
)

var certificationNames = map[Certification]string{
	CertificationNone:           "none",
	CertificationAerialGoals:    "AerialGoals",
	CertificationAssists:        "Assists",
	CertificationBackwardsGoals: "BackwardsGoals",
	CertificationBicycleGoals:   "BicycleGoals",
	CertificationCenters:        "Centers",
	CertificationClears:         "Clears",
	CertificationEpicSaves:      "EpicSaves",
	CertificationGoals:          "Goals",
	CertificationJuggles:        "Juggles",
	CertificationLongGoals:      "LongGoals",
	CertificationMVPs:           "MVPs",
	CertificationSaves:          "Saves",
	CertificationShotsOnGoal:    "ShotsOnGoal",
	CertificationTurtleGoals:    "TurtleGoals",
	CertificationWins:           "Wins",
}

var certificationValues = invert(certificationNames, map[string]Certification{"": CertificationNone})

func (c Certification) String() string { return certificationNames[c] }

// MarshalJSON implements json.Marshaler
func (c Certification) MarshalJSON() ([]byte, error) { return json.Marshal(certificationNames[c]) }

// UnmarshalJSON implements json.Unmarshaler
func (c *Certification) UnmarshalJSON(data []byte) error {
	return decodeCategory(data, "certification", certificationValues, c)
}

// Quality is the rarity tier of an item
type Quality int

const (
	QualityNone Quality = iota
	QualityBlackMarket
	QualityCommon
	QualityExotic
	QualityImport
	QualityLegacy
	QualityLimited
	QualityRare
	QualityUncommon
	QualityVeryRare
)

var qualityNames = map[Quality]string{
	QualityNone:        "",
	QualityBlackMarket: "Black market",
	QualityCommon:      "Common",
	QualityExotic:      "Exotic",
	QualityImport:      "Import",
	QualityLegacy:      "Legacy",
	QualityLimited:     "Limited",
	QualityRare:        "Rare",
	QualityUncommon:    "Uncommon",
	QualityVeryRare:    "Very rare",
}

var qualityValues = invert(qualityNames, map[string]Quality{"unknown": QualityNone})

// AllQualities lists every quality in declaration order
func AllQualities() []Quality {
	qualities := make([]Quality, 0, len(qualityNames))
	for q := QualityNone; q <= QualityVeryRare; q++ {
		qualities = append(qualities, q)
	}
	return qualities
}

func (q Quality) String() string {
	if q == QualityNone {
		return "none"
	}
	return qualityNames[q]
}

// MarshalJSON implements json.Marshaler
func (q Quality) MarshalJSON() ([]byte, error) { return json.Marshal(qualityNames[q]) }

// UnmarshalJSON implements json.Unmarshaler
func (q *Quality) UnmarshalJSON(data []byte) error {
	return decodeCategory(data, "quality", qualityValues, q)
}

// SpecialEdition is the special edition variant of an item
type SpecialEdition int

const (
	EditionNone SpecialEdition = iota
	EditionHolographic
	EditionInfinite
	EditionInverted
	EditionRemixed
)

var editionNames = map[SpecialEdition]string{
	EditionNone:        "none",
	EditionHolographic: "Edition_Holographic",
	EditionInfinite:    "Edition_Infinite",
	EditionInverted:    "Edition_Inverted",
	EditionRemixed:     "Edition_Remixed",
}

var editionValues = invert(editionNames, map[string]SpecialEdition{"": EditionNone})

// AllEditions lists every special edition in declaration order
func AllEditions() []SpecialEdition {
	return []SpecialEdition{EditionNone, EditionHolographic, EditionInfinite, EditionInverted, EditionRemixed}
}

func (e SpecialEdition) String() string { return editionNames[e] }

// MarshalJSON implements json.Marshaler
func (e SpecialEdition) MarshalJSON() ([]byte, error) { return json.Marshal(editionNames[e]) }

// UnmarshalJSON implements json.Unmarshaler
func (e *SpecialEdition) UnmarshalJSON(data []byte) error {
	return decodeCategory(data, "special_edition", editionValues, e)
}
