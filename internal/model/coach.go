// Package model defines the data structures used throughout the application.
package model

import "time"

// Subscription status values. Only "trialing" and "active" coaches may run
// the plan pipeline; the other two keep the account readable but gated.
const (
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Logo placement positions accepted by the renderer.
const (
	LogoLeft   = "left"
	LogoCenter = "center"
	LogoRight  = "right"
)

// Coach represents a coach account. Coaches own clients, meals and exercises;
// every pipeline entry point verifies ownership against the coach id.
//
// A coach authenticates either with email+password (PasswordHash set) or via
// Google sign-in (GoogleID set, PasswordHash empty). Both may be present for
// accounts that linked Google after registering.
type Coach struct {
	ID                 string    `json:"id"                 db:"id"`
	Email              string    `json:"email"              db:"email"`
	PasswordHash       string    `json:"-"                  db:"password_hash"`
	GoogleID           string    `json:"-"                  db:"google_id"`
	Name               string    `json:"name"               db:"name"`
	SubscriptionStatus string    `json:"subscriptionStatus" db:"subscription_status"`
	Branding           Branding  `json:"branding"`
	CreatedAt          time.Time `json:"createdAt"          db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt"          db:"updated_at"`
}

// Entitled reports whether the coach may generate or send plans.
func (c *Coach) Entitled() bool {
	return c.SubscriptionStatus == SubscriptionActive || c.SubscriptionStatus == SubscriptionTrialing
}

// Branding is the coach-owned set of style parameters applied to every
// generated plan. It is a closed record: only the fields below ever reach
// the renderer, there is no free-form property bag.
type Branding struct {
	AccentColor    string `json:"accentColor"    db:"accent_color"`  // 6-digit hex, no leading '#'
	LogoURL        string `json:"logoUrl"        db:"logo_url"`
	LogoPosition   string `json:"logoPosition"   db:"logo_position"` // left|center|right
	CoverHeading   string `json:"coverHeading"   db:"cover_heading"`
	CoverBody      string `json:"coverBody"      db:"cover_body"`
	FooterText     string `json:"footerText"     db:"footer_text"`
	ShowLogoOnPlan bool   `json:"showLogoOnPlan" db:"show_logo_on_plan"`
}

// DefaultBranding is applied to newly registered coaches.
func DefaultBranding() Branding {
	return Branding{
		AccentColor:    "1F6FEB",
		LogoPosition:   LogoCenter,
		CoverHeading:   "Your Personal Plan",
		FooterText:     "Questions? Reply to this email and your coach will get back to you.",
		ShowLogoOnPlan: true,
	}
}
