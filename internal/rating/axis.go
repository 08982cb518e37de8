package rating

import "strings"

// Axis is one of the fixed content-concern dimensions a game is scored on.
type Axis string

const (
	// Risk to faith
	AxisPromotingKufr    Axis = "promoting_kufr"
	AxisAssumingDivinity Axis = "assuming_divinity"
	AxisTamperingGhaib   Axis = "tampering_ghaib"

	// Prohibition exposure
	AxisDistortingIslam  Axis = "distorting_islam"
	AxisGambling         Axis = "gambling"
	AxisLying            Axis = "lying"
	AxisIndecency        Axis = "indecency"
	AxisMusicInstruments Axis = "music_instruments"
	AxisIntoxicants      Axis = "intoxicants"
	AxisCrimeViolence    Axis = "crime_violence"
	AxisProfanity        Axis = "profanity"
	AxisHorror           Axis = "horror"
	AxisBadManners       Axis = "bad_manners"

	// Normalization and wellbeing
	AxisSpending           Axis = "spending"
	AxisOnlineInteractions Axis = "online_interactions"
	AxisTimeWaste          Axis = "time_waste"
	AxisAddictiveDesign    Axis = "addictive_design"
	AxisIntrusiveAds       Axis = "intrusive_ads"
	AxisRomance            Axis = "romance"
)

type Group string

const (
	GroupFaith         Group = "faith"
	GroupProhibitions  Group = "prohibitions"
	GroupNormalization Group = "normalization"
)

// AxisInfo is the reference data attached to an axis. It doubles as the
// seed source for the flag catalog.
type AxisInfo struct {
	Axis        Axis
	Group       Group
	Name        string
	Icon        string
	Description string
}

var axisCatalog = []AxisInfo{
	{AxisPromotingKufr, GroupFaith, "Promoting Kufr", "☪", "Promotes disbelief or other religions as truth"},
	{AxisAssumingDivinity, GroupFaith, "Assuming Divinity", "⚡", "Player or characters take on divine attributes"},
	{AxisTamperingGhaib, GroupFaith, "Tampering with the Unseen", "🔮", "Magic, fortune telling or summoning of the unseen"},

	{AxisDistortingIslam, GroupProhibitions, "Distorting Islam", "📖", "Misrepresents Islamic beliefs, figures or rulings"},
	{AxisGambling, GroupProhibitions, "Gambling", "🎲", "Betting, loot boxes or games of chance for value"},
	{AxisLying, GroupProhibitions, "Lying", "🤥", "Rewards deception as a core mechanic"},
	{AxisIndecency, GroupProhibitions, "Indecency", "🙈", "Nudity, immodest clothing or sexual content"},
	{AxisMusicInstruments, GroupProhibitions, "Music", "🎵", "Background music with instruments that cannot be disabled"},
	{AxisIntoxicants, GroupProhibitions, "Intoxicants", "🍺", "Alcohol, drugs or other intoxicants"},
	{AxisCrimeViolence, GroupProhibitions, "Crime & Violence", "🔪", "Gore, cruelty or glorified crime"},
	{AxisProfanity, GroupProhibitions, "Profanity", "🤬", "Swearing and vulgar language"},
	{AxisHorror, GroupProhibitions, "Horror", "👻", "Frightening or disturbing imagery"},
	{AxisBadManners, GroupProhibitions, "Bad Manners", "😤", "Normalizes disrespect towards parents, elders or others"},

	{AxisSpending, GroupNormalization, "Spending", "💸", "Pressure to spend real money"},
	{AxisOnlineInteractions, GroupNormalization, "Online Interactions", "🌐", "Unmoderated chat or contact with strangers"},
	{AxisTimeWaste, GroupNormalization, "Time Waste", "⏳", "Endless loops with little benefit"},
	{AxisAddictiveDesign, GroupNormalization, "Addictive Design", "🎰", "Daily rewards, streaks and compulsion loops"},
	{AxisIntrusiveAds, GroupNormalization, "Intrusive Ads", "📢", "Frequent or inappropriate advertising"},
	{AxisRomance, GroupNormalization, "Romance", "💘", "Dating or romantic relationships outside marriage"},
}

var axisIndex = func() map[Axis]AxisInfo {
	m := make(map[Axis]AxisInfo, len(axisCatalog))
	for _, info := range axisCatalog {
		m[info.Axis] = info
	}
	return m
}()

// AxisCatalog returns a copy of the axis reference data in display order.
func AxisCatalog() []AxisInfo {
	out := make([]AxisInfo, len(axisCatalog))
	copy(out, axisCatalog)
	return out
}

// Axes returns every axis in display order.
func Axes() []Axis {
	out := make([]Axis, len(axisCatalog))
	for i, info := range axisCatalog {
		out[i] = info.Axis
	}
	return out
}

func ParseAxis(s string) (Axis, bool) {
	a := Axis(strings.ToLower(strings.TrimSpace(s)))
	_, ok := axisIndex[a]
	return a, ok
}

func (a Axis) Valid() bool {
	_, ok := axisIndex[a]
	return ok
}

func (a Axis) Info() (AxisInfo, bool) {
	info, ok := axisIndex[a]
	return info, ok
}

func (a Axis) Group() Group {
	return axisIndex[a].Group
}

// IsFaithRisk reports whether a Severe rating on this axis puts the game in KFR.
func (a Axis) IsFaithRisk() bool {
	return axisIndex[a].Group == GroupFaith
}
