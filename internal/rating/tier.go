package rating

// TierCode is the overall classification of a game.
type TierCode string

const (
	TierHalal    TierCode = "HAL"
	TierMashbouh TierCode = "MSH"
	TierHaram    TierCode = "HRM"
	TierKufr     TierCode = "KFR"
)

// TierInfo is the seed data for the rating tier catalog.
type TierInfo struct {
	Code      TierCode
	Name      string
	Icon      string
	Color     string
	SortOrder int
}

var tierCatalog = []TierInfo{
	{TierHalal, "Halal (Acceptable)", "✅", "#2E7D32", 1},
	{TierMashbouh, "Mashbouh (Doubtful)", "⚠️", "#F9A825", 2},
	{TierHaram, "Haram", "⛔", "#C62828", 3},
	{TierKufr, "Kufr / Shirk", "☠️", "#212121", 4},
}

// Tiers returns the tier catalog ordered from least to most severe.
func Tiers() []TierInfo {
	out := make([]TierInfo, len(tierCatalog))
	copy(out, tierCatalog)
	return out
}

// Rank orders tiers from HAL (1) to KFR (4). Unknown codes rank 0.
func (t TierCode) Rank() int {
	for _, info := range tierCatalog {
		if info.Code == t {
			return info.SortOrder
		}
	}
	return 0
}

func (t TierCode) Valid() bool {
	return t.Rank() > 0
}

func (t TierCode) AtLeast(other TierCode) bool {
	return t.Rank() >= other.Rank()
}

func (t TierCode) String() string {
	return string(t)
}
