package services

import (
	"crypto/subtle"
	"strings"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/google/uuid"
)

// StaffPolicy grants the staff role from config on top of the stored role.
type StaffPolicy struct {
	emails     map[string]bool
	userIDs    map[string]bool
	adminToken string
}

func NewStaffPolicy(cfg *config.Config) *StaffPolicy {
	p := &StaffPolicy{
		emails:     make(map[string]bool),
		userIDs:    make(map[string]bool),
		adminToken: cfg.AdminToken,
	}
	for _, e := range parseCSV(cfg.StaffEmails) {
		p.emails[strings.ToLower(e)] = true
	}
	for _, id := range parseCSV(cfg.StaffUserIDs) {
		p.userIDs[strings.ToLower(id)] = true
	}
	return p
}

// Apply promotes a plain user listed in STAFF_EMAILS or STAFF_USER_IDS.
// The promotion is not persisted.
func (p *StaffPolicy) Apply(u *models.User) {
	if u == nil || u.IsStaff() {
		return
	}
	if p.emails[strings.ToLower(u.Email)] || p.userIDs[u.ID.String()] {
		u.Role = models.RoleStaff
	}
}

// TokenActor returns a synthetic admin when token matches ADMIN_TOKEN.
func (p *StaffPolicy) TokenActor(token string) (*models.User, bool) {
	if p.adminToken == "" || token == "" {
		return nil, false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(p.adminToken)) != 1 {
		return nil, false
	}
	return &models.User{ID: uuid.Nil, Username: "admin-token", Role: models.RoleAdmin, IsActive: true}, true
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
