// Package render turns a structured plan document into a binary PDF.
//
// Rendering is a pure function of its inputs: no network, no filesystem,
// no clock. Identical inputs produce byte-identical output, which is what
// makes the store's overwrite-in-place semantics safe — there is never a
// reason to diff or version rendered artifacts.
package render

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tlind/coachdesk/internal/model"
)

// PlanDocument is the structured content of one plan artifact. The front
// and back matter (heading, body, footer, logo) come from the coach's saved
// branding, not from the generation request; only Items and ShowLogo vary
// per request.
type PlanDocument struct {
	Kind       model.PlanKind
	ClientName string
	Heading    string
	Body       string
	Footer     string
	Logo       []byte // PNG bytes, already fetched by the caller; nil for none
	ShowLogo   bool
	Items      []model.PlanItem // ordered as the coach selected them
}

// StyleParams is the closed set of style knobs a document is rendered with.
type StyleParams struct {
	AccentColor  string // 6-digit hex triple, no leading '#'
	LogoPosition string // model.LogoLeft, LogoCenter or LogoRight
}

var hexColorRe = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Validate rejects malformed style parameters before they reach a renderer.
func (s StyleParams) Validate() error {
	if !hexColorRe.MatchString(s.AccentColor) {
		return fmt.Errorf("accent color %q is not a 6-digit hex value", s.AccentColor)
	}
	switch s.LogoPosition {
	case model.LogoLeft, model.LogoCenter, model.LogoRight:
	default:
		return fmt.Errorf("logo position %q is not one of left, center, right", s.LogoPosition)
	}
	return nil
}

// AccentRGB decodes the accent color into its channel values.
// Validate must have been called first; malformed input decodes to black.
func (s StyleParams) AccentRGB() (r, g, b int) {
	if !hexColorRe.MatchString(s.AccentColor) {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseInt(s.AccentColor[0:2], 16, 0)
	gv, _ := strconv.ParseInt(s.AccentColor[2:4], 16, 0)
	bv, _ := strconv.ParseInt(s.AccentColor[4:6], 16, 0)
	return int(rv), int(gv), int(bv)
}

// Renderer produces the plan binary. A rendering failure is fatal to the
// whole generation request; no partial artifact is ever stored.
type Renderer interface {
	Render(doc PlanDocument, style StyleParams) ([]byte, error)
}
