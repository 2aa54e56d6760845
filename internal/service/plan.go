package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/freshness"
	"github.com/tlind/coachdesk/internal/mail"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/render"
	"github.com/tlind/coachdesk/internal/repository"
	"github.com/tlind/coachdesk/internal/storage"
)

// PlanService orchestrates the plan pipeline: generation (select, render,
// store, point), delivery and status. It owns the access checks — every
// entry point verifies the coach's entitlement and the client's ownership
// before any work happens, and each stage fails fast so a later failure
// never leaves a half-applied earlier stage.
type PlanService struct {
	coaches  repository.CoachRepository
	clients  repository.ClientRepository
	content  repository.ContentRepository
	renderer render.Renderer
	store    storage.ArtifactStore
	notifier *mail.PlanNotifier
	logger   *slog.Logger

	now func() time.Time
}

func NewPlanService(
	coaches repository.CoachRepository,
	clients repository.ClientRepository,
	content repository.ContentRepository,
	renderer render.Renderer,
	store storage.ArtifactStore,
	notifier *mail.PlanNotifier,
	logger *slog.Logger,
) *PlanService {
	return &PlanService{
		coaches:  coaches,
		clients:  clients,
		content:  content,
		renderer: renderer,
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// PlanStatus is the read model for one (client, kind) pair: the derived
// freshness classification plus the stored pointer, if any.
type PlanStatus struct {
	Kind        model.PlanKind           `json:"kind"`
	URL         string                   `json:"url,omitempty"`
	GeneratedAt *time.Time               `json:"generatedAt,omitempty"`
	Freshness   freshness.Classification `json:"freshness"`
}

// GenerateResult is returned from a successful generation.
type GenerateResult struct {
	URL         string    `json:"url"`
	GeneratedAt time.Time `json:"generatedAt"`
	ItemCount   int       `json:"itemCount"`
}

// authorize loads the coach and client and runs the shared access checks:
// the coach must be entitled and the client must exist, be live, and belong
// to the coach. An unowned client reads as not found.
func (s *PlanService) authorize(ctx context.Context, coachID string, clientID int64) (*model.Coach, *model.Client, error) {
	coach, err := s.coaches.GetCoachByID(ctx, coachID)
	if err != nil {
		return nil, nil, err
	}
	if !coach.Entitled() {
		return nil, nil, apperror.Forbidden("an active subscription is required")
	}

	client, err := s.clients.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	if client.CoachID != coachID {
		return nil, nil, apperror.NotFound("client", clientID)
	}

	return coach, client, nil
}

// Generate runs the full pipeline for one (client, kind) pair:
//
//	authorize → resolve selection → render → store → set pointer
//
// The selection keeps the coach's request order and silently drops ids that
// are missing or owned by someone else; an empty surviving selection is a
// validation error. The artifact is stored under the deterministic key for
// (kind, client), so a regeneration overwrites in place and the pointer URL
// written at the end is the same one as last time — only the timestamp moves.
// If any stage fails, the stored pointer is left exactly as it was.
func (s *PlanService) Generate(ctx context.Context, coachID string, clientID int64, kind model.PlanKind, itemIDs []int64) (*GenerateResult, error) {
	coach, client, err := s.authorize(ctx, coachID, clientID)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveSelection(ctx, coachID, kind, itemIDs)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.ValidationFailed("items", "selection contains no usable items")
	}

	doc := render.PlanDocument{
		Kind:       kind,
		ClientName: client.Name,
		Heading:    coach.Branding.CoverHeading,
		Body:       coach.Branding.CoverBody,
		Footer:     coach.Branding.FooterText,
		ShowLogo:   coach.Branding.ShowLogoOnPlan,
		Items:      items,
	}
	if doc.ShowLogo && coach.Branding.LogoURL != "" {
		doc.Logo = s.fetchLogo(ctx, coach.Branding.LogoURL)
	}

	style := render.StyleParams{
		AccentColor:  coach.Branding.AccentColor,
		LogoPosition: coach.Branding.LogoPosition,
	}
	if err := style.Validate(); err != nil {
		// Rows written before branding validation may carry bad values;
		// render those with the defaults rather than failing the pipeline.
		s.logger.Warn("stored branding invalid, using defaults",
			slog.String("coach_id", coachID),
			slog.String("error", err.Error()),
		)
		def := model.DefaultBranding()
		style = render.StyleParams{AccentColor: def.AccentColor, LogoPosition: def.LogoPosition}
	}

	pdf, err := s.renderer.Render(doc, style)
	if err != nil {
		return nil, apperror.RenderFailed(err)
	}

	url, err := s.store.Put(ctx, kind.StorageKey(clientID), "application/pdf", pdf)
	if err != nil {
		return nil, apperror.StorageFailed("upload", err)
	}

	generatedAt := s.now().UTC()
	if err := s.clients.SetPlanPointer(ctx, clientID, kind, url, generatedAt); err != nil {
		return nil, fmt.Errorf("service: recording plan pointer: %w", err)
	}

	s.logger.Info("plan generated",
		slog.String("coach_id", coachID),
		slog.Int64("client_id", clientID),
		slog.String("kind", string(kind)),
		slog.Int("items", len(items)),
		slog.Int("bytes", len(pdf)),
	)

	return &GenerateResult{URL: url, GeneratedAt: generatedAt, ItemCount: len(items)}, nil
}

// resolveSelection maps the requested content ids to renderable items.
// Ownership filtering happens in the repository; this method restores the
// request order, since the lookup returns rows unordered.
func (s *PlanService) resolveSelection(ctx context.Context, coachID string, kind model.PlanKind, itemIDs []int64) ([]model.PlanItem, error) {
	items := make([]model.PlanItem, 0, len(itemIDs))

	switch kind {
	case model.PlanMeal:
		meals, err := s.content.ListMealsByIDs(ctx, coachID, itemIDs)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]model.Meal, len(meals))
		for _, m := range meals {
			byID[m.ID] = m
		}
		for _, id := range itemIDs {
			if m, ok := byID[id]; ok {
				items = append(items, model.PlanItemFromMeal(m))
			}
		}

	case model.PlanTraining:
		exercises, err := s.content.ListExercisesByIDs(ctx, coachID, itemIDs)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]model.Exercise, len(exercises))
		for _, e := range exercises {
			byID[e.ID] = e
		}
		for _, id := range itemIDs {
			if e, ok := byID[id]; ok {
				items = append(items, model.PlanItemFromExercise(e))
			}
		}

	default:
		return nil, apperror.ValidationFailed("kind", fmt.Sprintf("unknown plan kind %q", kind))
	}

	return items, nil
}

// fetchLogo retrieves the branding logo bytes. Best-effort: a plan without
// a logo is better than no plan, so failures are logged and swallowed.
func (s *PlanService) fetchLogo(ctx context.Context, url string) []byte {
	logo, err := s.store.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("logo fetch failed, rendering without it",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return logo
}

// Send emails the stored artifact to the client. It requires that a plan of
// this kind has been generated (the pointer exists) and that the client has
// an email address. The bytes are re-fetched from the store by the notifier;
// delivery is at-most-once.
func (s *PlanService) Send(ctx context.Context, coachID string, clientID int64, kind model.PlanKind) error {
	_, client, err := s.authorize(ctx, coachID, clientID)
	if err != nil {
		return err
	}

	pointerURL, _ := client.PlanPointer(kind)
	if pointerURL == "" {
		return apperror.NotFound(string(kind)+" plan for client", clientID)
	}
	if client.Email == "" {
		return apperror.ValidationFailed("email", "client has no email address on file")
	}

	if err := s.notifier.Deliver(ctx, pointerURL, client.Email, client.Name, kind); err != nil {
		return err
	}

	s.logger.Info("plan sent",
		slog.String("coach_id", coachID),
		slog.Int64("client_id", clientID),
		slog.String("kind", string(kind)),
	)
	return nil
}

// Status returns the freshness classification and pointer for one
// (client, kind) pair. Available regardless of entitlement: a lapsed coach
// can still see the state of existing plans, they just cannot regenerate.
func (s *PlanService) Status(ctx context.Context, coachID string, clientID int64, kind model.PlanKind) (*PlanStatus, error) {
	client, err := s.clients.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.CoachID != coachID {
		return nil, apperror.NotFound("client", clientID)
	}

	url, generatedAt := client.PlanPointer(kind)
	return &PlanStatus{
		Kind:        kind,
		URL:         url,
		GeneratedAt: generatedAt,
		Freshness:   freshness.Classify(generatedAt, url, &client.UpdatedAt, s.now()),
	}, nil
}

// DownloadURL resolves the redirect target for viewing a stored plan. The
// pointer URL is stable across regenerations, so a unique version query
// parameter is appended to defeat browser caches that would otherwise show
// stale bytes after an overwrite.
func (s *PlanService) DownloadURL(ctx context.Context, coachID string, clientID int64, kind model.PlanKind) (string, error) {
	status, err := s.Status(ctx, coachID, clientID, kind)
	if err != nil {
		return "", err
	}
	if status.URL == "" {
		return "", apperror.NotFound(string(kind)+" plan for client", clientID)
	}
	return fmt.Sprintf("%s?v=%s", status.URL, xid.New().String()), nil
}
