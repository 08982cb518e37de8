package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/rating"
)

// GameRequest is the staff payload for creating or editing a game.
// Severities are keyed by axis code; omitted axes are stored as N.
type GameRequest struct {
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Developer      string            `json:"developer"`
	Publisher      string            `json:"publisher"`
	ReleaseDate    string            `json:"release_date"`
	CoverURL       string            `json:"cover_url"`
	SteamURL       string            `json:"steam_url"`
	PlayStationURL string            `json:"playstation_url"`
	XboxURL        string            `json:"xbox_url"`
	NintendoURL    string            `json:"nintendo_url"`
	AppStoreURL    string            `json:"app_store_url"`
	PlayStoreURL   string            `json:"play_store_url"`
	Platforms      []string          `json:"platforms"`
	Severities     map[string]string `json:"severities"`
	Breakdown      map[string]string `json:"breakdown"`
	IsAdjustable   bool              `json:"is_adjustable"`
	Rationale      string            `json:"rationale"`
}

// ApplyTo copies the request onto g. The release date must be YYYY-MM-DD.
func (r *GameRequest) ApplyTo(g *models.Game) error {
	g.Title = r.Title
	if r.Slug != "" {
		g.Slug = r.Slug
	}
	g.Developer = r.Developer
	g.Publisher = r.Publisher
	g.CoverURL = r.CoverURL
	g.SteamURL = r.SteamURL
	g.PlayStationURL = r.PlayStationURL
	g.XboxURL = r.XboxURL
	g.NintendoURL = r.NintendoURL
	g.AppStoreURL = r.AppStoreURL
	g.PlayStoreURL = r.PlayStoreURL
	g.IsAdjustable = r.IsAdjustable
	g.Rationale = r.Rationale

	g.ReleaseDate = nil
	if r.ReleaseDate != "" {
		d, err := time.Parse("2006-01-02", r.ReleaseDate)
		if err != nil {
			return fmt.Errorf("invalid release_date %q", r.ReleaseDate)
		}
		g.ReleaseDate = &d
	}

	if err := SetPlatforms(g, r.Platforms); err != nil {
		return err
	}
	g.Severity.SetSeverities(rating.NormalizeCodes(r.Severities))
	g.Breakdown.Faith = r.Breakdown["faith"]
	g.Breakdown.Prohibitions = r.Breakdown["prohibitions"]
	g.Breakdown.Normalization = r.Breakdown["normalization"]
	return nil
}

// SetPlatforms maps platform names (pc, playstation, xbox, switch, mobile)
// onto the availability flags.
func SetPlatforms(g *models.Game, platforms []string) error {
	g.AvailablePC, g.AvailablePlayStation, g.AvailableXbox = false, false, false
	g.AvailableSwitch, g.AvailableMobile = false, false
	for _, p := range platforms {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "pc":
			g.AvailablePC = true
		case "playstation", "ps":
			g.AvailablePlayStation = true
		case "xbox":
			g.AvailableXbox = true
		case "switch", "nintendo":
			g.AvailableSwitch = true
		case "mobile", "ios", "android":
			g.AvailableMobile = true
		default:
			return fmt.Errorf("unknown platform %q", p)
		}
	}
	return nil
}

type OverrideTierRequest struct {
	Tier string `json:"tier"`
}

type TierView struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type FlagView struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Group    string `json:"group"`
	Icon     string `json:"icon"`
	Severity string `json:"severity"`
	Label    string `json:"label"`
	Tag      string `json:"tag"`
}

type LevelView struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

type BreakdownView struct {
	Faith         LevelView `json:"faith"`
	Prohibitions  LevelView `json:"prohibitions"`
	Normalization LevelView `json:"normalization"`
	Overall       LevelView `json:"overall"`
}

type GameResponse struct {
	*models.Game
	Tier             TierView      `json:"tier"`
	ComputedTier     *TierView     `json:"computed_tier,omitempty"`
	FlagDetails      []FlagView    `json:"flag_details"`
	BreakdownDetails BreakdownView `json:"breakdown_details"`
}

func levelView(l rating.BreakdownLevel) LevelView {
	return LevelView{Code: l.Code(), Label: l.Label(), Tag: l.Tag()}
}

func tierView(cat *catalog.Catalog, code string) TierView {
	if t, ok := cat.Tier(code); ok {
		return TierView{Code: t.Code, Name: t.Name, Icon: t.Icon, Color: t.Color}
	}
	return TierView{Code: code, Name: code}
}

// NewGameResponse decorates a game with catalog names, icons and display
// labels for its flags and breakdown.
func NewGameResponse(g *models.Game, cat *catalog.Catalog) GameResponse {
	sev := g.Severity.Severities()
	flags := make([]FlagView, 0, len(g.Flags))
	for _, f := range cat.FlagsFor([]string(g.Flags)) {
		s := sev.Get(rating.Axis(f.Code))
		flags = append(flags, FlagView{
			Code:     f.Code,
			Name:     f.Name,
			Group:    f.Group,
			Icon:     f.Icon,
			Severity: s.Code(),
			Label:    s.Label(),
			Tag:      s.Tag(),
		})
	}

	bd := g.Breakdown.Breakdown()
	resp := GameResponse{
		Game:        g,
		Tier:        tierView(cat, g.RatingTier),
		FlagDetails: flags,
		BreakdownDetails: BreakdownView{
			Faith:         levelView(bd.Faith),
			Prohibitions:  levelView(bd.Prohibitions),
			Normalization: levelView(bd.Normalization),
			Overall:       levelView(bd.Overall()),
		},
	}
	if g.OriginalRatingTier != nil {
		computed := tierView(cat, *g.OriginalRatingTier)
		resp.ComputedTier = &computed
	}
	return resp
}

type ArticleRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	Body        string `json:"body"`
	AuthorName  string `json:"author_name"`
	CoverURL    string `json:"cover_url"`
	IsPublished bool   `json:"is_published"`
}

func (r *ArticleRequest) ApplyTo(a *models.Article) {
	a.Title = r.Title
	if r.Slug != "" {
		a.Slug = r.Slug
	}
	a.Summary = r.Summary
	a.Body = r.Body
	a.AuthorName = r.AuthorName
	a.CoverURL = r.CoverURL
	a.IsPublished = r.IsPublished
}
