package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/model"
	"github.com/tlind/coachdesk/internal/repository"
)

// ClientService manages a coach's client roster. Every read and write is
// scoped to the authenticated coach; touching another coach's client is
// indistinguishable from the client not existing.
type ClientService struct {
	clients repository.ClientRepository
	logger  *slog.Logger
}

func NewClientService(clients repository.ClientRepository, logger *slog.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

// ClientInput is the writable subset of a client record. Plan pointers are
// never writable through this path; only the pipeline updates them.
type ClientInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func (in *ClientInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Name == "" {
		return apperror.ValidationFailed("name", "client name is required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return apperror.ValidationFailed("email", "client email must be a valid address")
	}
	return nil
}

func (s *ClientService) Create(ctx context.Context, coachID string, in ClientInput) (*model.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	client := &model.Client{
		CoachID: coachID,
		Name:    in.Name,
		Email:   in.Email,
		Notes:   in.Notes,
	}
	if err := s.clients.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		slog.String("coach_id", coachID),
		slog.Int64("client_id", client.ID),
	)
	return client, nil
}

// Get returns the client if it exists and belongs to coachID.
func (s *ClientService) Get(ctx context.Context, coachID string, clientID int64) (*model.Client, error) {
	client, err := s.clients.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.CoachID != coachID {
		return nil, apperror.NotFound("client", clientID)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, coachID string, opts repository.ListOptions) ([]model.Client, error) {
	return s.clients.ListClients(ctx, coachID, opts)
}

func (s *ClientService) Update(ctx context.Context, coachID string, clientID int64, in ClientInput) (*model.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	client, err := s.Get(ctx, coachID, clientID)
	if err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Email = in.Email
	client.Notes = in.Notes
	if err := s.clients.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete soft-deletes the client. Stored artifacts are left behind; their
// stable URLs keep working for anyone still holding a delivered email.
func (s *ClientService) Delete(ctx context.Context, coachID string, clientID int64) error {
	if _, err := s.Get(ctx, coachID, clientID); err != nil {
		return err
	}
	return s.clients.SoftDeleteClient(ctx, clientID)
}
