package models

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/rating"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeverityColumns holds the raw N/L/M/S code for every axis.
type SeverityColumns struct {
	PromotingKufr      string `gorm:"size:1;not null;default:'N'" json:"promoting_kufr"`
	AssumingDivinity   string `gorm:"size:1;not null;default:'N'" json:"assuming_divinity"`
	TamperingGhaib     string `gorm:"size:1;not null;default:'N'" json:"tampering_ghaib"`
	DistortingIslam    string `gorm:"size:1;not null;default:'N'" json:"distorting_islam"`
	Gambling           string `gorm:"size:1;not null;default:'N'" json:"gambling"`
	Lying              string `gorm:"size:1;not null;default:'N'" json:"lying"`
	Indecency          string `gorm:"size:1;not null;default:'N'" json:"indecency"`
	MusicInstruments   string `gorm:"size:1;not null;default:'N'" json:"music_instruments"`
	Intoxicants        string `gorm:"size:1;not null;default:'N'" json:"intoxicants"`
	CrimeViolence      string `gorm:"size:1;not null;default:'N'" json:"crime_violence"`
	Profanity          string `gorm:"size:1;not null;default:'N'" json:"profanity"`
	Horror             string `gorm:"size:1;not null;default:'N'" json:"horror"`
	BadManners         string `gorm:"size:1;not null;default:'N'" json:"bad_manners"`
	Spending           string `gorm:"size:1;not null;default:'N'" json:"spending"`
	OnlineInteractions string `gorm:"size:1;not null;default:'N'" json:"online_interactions"`
	TimeWaste          string `gorm:"size:1;not null;default:'N'" json:"time_waste"`
	AddictiveDesign    string `gorm:"size:1;not null;default:'N'" json:"addictive_design"`
	IntrusiveAds       string `gorm:"size:1;not null;default:'N'" json:"intrusive_ads"`
	Romance            string `gorm:"size:1;not null;default:'N'" json:"romance"`
}

func (s *SeverityColumns) fields() map[rating.Axis]*string {
	return map[rating.Axis]*string{
		rating.AxisPromotingKufr:      &s.PromotingKufr,
		rating.AxisAssumingDivinity:   &s.AssumingDivinity,
		rating.AxisTamperingGhaib:     &s.TamperingGhaib,
		rating.AxisDistortingIslam:    &s.DistortingIslam,
		rating.AxisGambling:           &s.Gambling,
		rating.AxisLying:              &s.Lying,
		rating.AxisIndecency:          &s.Indecency,
		rating.AxisMusicInstruments:   &s.MusicInstruments,
		rating.AxisIntoxicants:        &s.Intoxicants,
		rating.AxisCrimeViolence:      &s.CrimeViolence,
		rating.AxisProfanity:          &s.Profanity,
		rating.AxisHorror:             &s.Horror,
		rating.AxisBadManners:         &s.BadManners,
		rating.AxisSpending:           &s.Spending,
		rating.AxisOnlineInteractions: &s.OnlineInteractions,
		rating.AxisTimeWaste:          &s.TimeWaste,
		rating.AxisAddictiveDesign:    &s.AddictiveDesign,
		rating.AxisIntrusiveAds:       &s.IntrusiveAds,
		rating.AxisRomance:            &s.Romance,
	}
}

// Severities parses the stored codes. Unknown codes read as None.
func (s *SeverityColumns) Severities() rating.Severities {
	out := make(rating.Severities, len(rating.Axes()))
	for axis, code := range s.fields() {
		out[axis] = rating.NormalizeCode(axis, *code)
	}
	return out
}

// SetSeverities overwrites every column; axes missing from sev become N.
func (s *SeverityColumns) SetSeverities(sev rating.Severities) {
	for axis, col := range s.fields() {
		*col = sev.Get(axis).Code()
	}
}

// Set updates a single axis.
func (s *SeverityColumns) Set(axis rating.Axis, sev rating.Severity) bool {
	col, ok := s.fields()[axis]
	if ok {
		*col = sev.Code()
	}
	return ok
}

// BreakdownColumns holds the separate N/L/M/H/P per-group breakdown.
type BreakdownColumns struct {
	Faith         string `gorm:"size:1;not null;default:'N'" json:"faith"`
	Prohibitions  string `gorm:"size:1;not null;default:'N'" json:"prohibitions"`
	Normalization string `gorm:"size:1;not null;default:'N'" json:"normalization"`
}

func (b *BreakdownColumns) Breakdown() rating.Breakdown {
	parse := func(group, code string) rating.BreakdownLevel {
		if code == "" {
			return rating.BreakdownNone
		}
		lvl, err := rating.ParseBreakdownLevel(code)
		if err != nil {
			slog.Warn("invalid breakdown level, using None", "group", group, "code", code)
		}
		return lvl
	}
	return rating.Breakdown{
		Faith:         parse("faith", b.Faith),
		Prohibitions:  parse("prohibitions", b.Prohibitions),
		Normalization: parse("normalization", b.Normalization),
	}
}

func (b *BreakdownColumns) SetBreakdown(bd rating.Breakdown) {
	b.Faith = bd.Faith.Code()
	b.Prohibitions = bd.Prohibitions.Code()
	b.Normalization = bd.Normalization.Code()
}

type Game struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Slug        string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Developer   string     `gorm:"size:255" json:"developer"`
	Publisher   string     `gorm:"size:255" json:"publisher"`
	ReleaseDate *time.Time `gorm:"type:date" json:"release_date,omitempty"`
	CoverURL    string     `gorm:"size:500" json:"cover_url,omitempty"`

	SteamURL       string `gorm:"size:500" json:"steam_url,omitempty"`
	PlayStationURL string `gorm:"size:500" json:"playstation_url,omitempty"`
	XboxURL        string `gorm:"size:500" json:"xbox_url,omitempty"`
	NintendoURL    string `gorm:"size:500" json:"nintendo_url,omitempty"`
	AppStoreURL    string `gorm:"size:500" json:"app_store_url,omitempty"`
	PlayStoreURL   string `gorm:"size:500" json:"play_store_url,omitempty"`

	AvailablePC          bool `gorm:"default:false" json:"available_pc"`
	AvailablePlayStation bool `gorm:"default:false" json:"available_playstation"`
	AvailableXbox        bool `gorm:"default:false" json:"available_xbox"`
	AvailableSwitch      bool `gorm:"default:false" json:"available_switch"`
	AvailableMobile      bool `gorm:"default:false" json:"available_mobile"`

	Severity  SeverityColumns  `gorm:"embedded;embeddedPrefix:sev_" json:"severities"`
	Breakdown BreakdownColumns `gorm:"embedded;embeddedPrefix:breakdown_" json:"breakdown"`

	IsAdjustable       bool                        `gorm:"default:false" json:"is_adjustable"`
	RatingTier         string                      `gorm:"size:3;not null;index" json:"rating_tier"`
	OriginalRatingTier *string                     `gorm:"size:3" json:"original_rating_tier,omitempty"`
	Flags              datatypes.JSONSlice[string] `json:"flags"`
	RequiresAdjustment bool                        `gorm:"default:false" json:"requires_adjustment"`
	Rationale          string                      `gorm:"type:text" json:"rationale"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps rating_tier, flags and requires_adjustment in step with
// the stored severities on every create and update.
func (g *Game) BeforeSave(tx *gorm.DB) error {
	g.ApplyRating()
	return nil
}

// HasOverride reports whether a manual tier has been recorded.
func (g *Game) HasOverride() bool {
	return g.OriginalRatingTier != nil
}

// ApplyRating normalizes the stored codes and recomputes the derived fields.
// With a manual override recorded the computed tier goes to
// OriginalRatingTier and RatingTier keeps the manual value.
func (g *Game) ApplyRating() rating.Result {
	sev := g.Severity.Severities()
	g.Severity.SetSeverities(sev)
	g.Breakdown.SetBreakdown(g.Breakdown.Breakdown())

	res := rating.Compute(sev, g.IsAdjustable)
	if g.HasOverride() && rating.TierCode(g.RatingTier).Valid() {
		computed := string(res.Tier)
		g.OriginalRatingTier = &computed
	} else {
		g.OriginalRatingTier = nil
		g.RatingTier = string(res.Tier)
	}

	g.Flags = datatypes.JSONSlice[string](res.FlagCodes())
	g.RequiresAdjustment = g.IsAdjustable && rating.TierCode(g.RatingTier).AtLeast(rating.TierMashbouh)
	return res
}

// Tier returns the effective tier.
func (g *Game) Tier() rating.TierCode {
	return rating.TierCode(g.RatingTier)
}
