package querykey

import "github.com/XavierBriggs/Midas/pkg/models"

// slotSegment maps a slot to the catalog's path segment. ok is false for
// slots the catalog has no pages for and for slots filtering must remove.
func slotSegment(slot models.Slot) (segment string, ok bool) {
	switch slot {
	case models.SlotAnimatedDecal, models.SlotDecal:
		return "decals", true
	case models.SlotAntenna:
		return "antennas", true
	case models.SlotAvatarBorder:
		return "avatar_borders", true
	case models.SlotBody:
		return "cars", true
	case models.SlotCrate:
		return "crates", true
	case models.SlotEngineAudio:
		return "engine_sounds", true
	case models.SlotGoalExplosion:
		return "goal_explosions", true
	case models.SlotPaintFinish:
		return "paint_finishes", true
	case models.SlotPlayerBanner:
		return "banners", true
	case models.SlotRocketBoost:
		return "boosts", true
	case models.SlotTopper:
		return "toppers", true
	case models.SlotTrail:
		return "trails", true
	case models.SlotWheels:
		return "wheels", true
	case models.SlotUnknown, models.SlotBlueprint, models.SlotPlayerAnthem,
		models.SlotPlayerTitle, models.SlotRewardItem:
		return "", false
	default:
		return "", false
	}
}

// paintToken returns "" for an unpainted item
func paintToken(paint models.Paint) string {
	switch paint {
	case models.PaintBlack:
		return "black"
	case models.PaintBurntSienna:
		return "sienna"
	case models.PaintCobalt:
		return "cobalt"
	case models.PaintCrimson:
		return "crimson"
	case models.PaintForestGreen:
		return "fgreen"
	case models.PaintGrey:
		return "grey"
	case models.PaintLime:
		return "lime"
	case models.PaintOrange:
		return "orange"
	case models.PaintPink:
		return "pink"
	case models.PaintPurple:
		return "purple"
	case models.PaintSaffron:
		return "saffron"
	case models.PaintSkyBlue:
		return "sblue"
	case models.PaintTitaniumWhite:
		return "white"
	default:
		return ""
	}
}

// editionToken returns "" for a regular edition
func editionToken(edition models.SpecialEdition) string {
	switch edition {
	case models.EditionHolographic:
		return "holographic"
	case models.EditionInfinite:
		return "infinite"
	case models.EditionInverted:
		return "inverted"
	case models.EditionRemixed:
		return "remixed"
	default:
		return ""
	}
}

// qualityToken returns "" for an item without a rarity tier
func qualityToken(quality models.Quality) string {
	switch quality {
	case models.QualityBlackMarket:
		return "black_market"
	case models.QualityCommon:
		return "common"
	case models.QualityExotic:
		return "exotic"
	case models.QualityImport:
		return "import"
	case models.QualityLegacy:
		return "legacy"
	case models.QualityLimited:
		return "limited"
	case models.QualityRare:
		return "rare"
	case models.QualityUncommon:
		return "uncommon"
	case models.QualityVeryRare:
		return "very_rare"
	default:
		return ""
	}
}
