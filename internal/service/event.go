package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/event"
	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/push"
	"github.com/pcist/pcist-backend/internal/types"
)

type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EventResponse, error)
	List(ctx context.Context, filter *types.Filter) ([]*dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string) error

	RegisterSolo(ctx context.Context, req *dto.RegisterSoloRequest) (*event.Registration, error)
	RegisterTeam(ctx context.Context, req *dto.RegisterTeamRequest) (*event.Team, error)
	ListRegistrations(ctx context.Context, eventID string) (*dto.RegistrationsResponse, error)
	SetPayment(ctx context.Context, req *dto.SetPaymentRequest) error
}

type eventService struct {
	ServiceParams
}

func NewEventService(params ServiceParams) EventService {
	return &eventService{ServiceParams: params}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ev := &event.Event{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		Name:           req.Name,
		EventType:      req.EventType,
		Date:           req.Date,
		Location:       req.Location,
		Description:    req.Description,
		NeedMembership: req.NeedMembership,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := s.EventRepo.Create(ctx, ev); err != nil {
		return nil, err
	}

	// Announce the new event to everyone; failure is logged, not surfaced.
	if err := s.Push.Broadcast(ctx, push.Notification{
		Title: "New event: " + ev.Name,
		Body:  ev.Description,
		Data:  map[string]string{"eventId": ev.ID},
	}); err != nil {
		s.Logger.Errorw("failed to broadcast event announcement", "event_id", ev.ID, "error", err)
	}

	s.Logger.Infow("event created", "event_id", ev.ID, "name", ev.Name)
	return &dto.EventResponse{Event: ev}, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	ev, err := s.EventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.EventResponse{Event: ev}, nil
}

func (s *eventService) List(ctx context.Context, filter *types.Filter) ([]*dto.EventResponse, error) {
	if filter == nil {
		f := types.GetDefaultFilter()
		filter = &f
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	events, err := s.EventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(events, func(ev *event.Event, _ int) *dto.EventResponse {
		return &dto.EventResponse{Event: ev}
	}), nil
}

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ev, err := s.EventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(ev)
	ev.UpdatedAt = time.Now().UTC()
	ev.UpdatedBy = types.GetUserID(ctx)

	if err := s.EventRepo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return &dto.EventResponse{Event: ev}, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.EventRepo.Delete(ctx, id)
}

// RegisterSolo registers the calling user for an event.
func (s *eventService) RegisterSolo(ctx context.Context, req *dto.RegisterSoloRequest) (*event.Registration, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ev, err := s.EventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	u, err := s.requireEligible(ctx, ev, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	reg := &event.Registration{
		ID:        types.GenerateUUID(),
		EventID:   ev.ID,
		UserID:    u.ID,
		Name:      u.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.EventRepo.AddRegistration(ctx, reg); err != nil {
		return nil, err
	}

	s.Logger.Infow("solo registration", "event_id", ev.ID, "user_id", u.ID)
	return reg, nil
}

// RegisterTeam registers every listed member under one shared team id.
// The whole team registers or none of it does.
func (s *eventService) RegisterTeam(ctx context.Context, req *dto.RegisterTeamRequest) (*event.Team, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ev, err := s.EventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	teamID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TEAM)
	team := &event.Team{TeamID: teamID, TeamName: req.TeamName}

	err = s.withTx(ctx, func(ctx context.Context) error {
		for _, userID := range req.Members {
			u, err := s.requireEligible(ctx, ev, userID)
			if err != nil {
				return err
			}
			reg := &event.Registration{
				ID:        types.GenerateUUID(),
				EventID:   ev.ID,
				UserID:    u.ID,
				Name:      u.Name,
				TeamID:    teamID,
				TeamName:  req.TeamName,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.EventRepo.AddRegistration(ctx, reg); err != nil {
				return err
			}
			team.Members = append(team.Members, reg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("team registered", "event_id", ev.ID, "team_id", teamID, "members", len(team.Members))
	return team, nil
}

func (s *eventService) requireEligible(ctx context.Context, ev *event.Event, userID string) (*user.User, error) {
	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ev.NeedMembership && !u.HasActiveMembership(time.Now().UTC()) {
		return nil, ierr.NewError("active membership required").
			WithHintf("event %s is open to members only", ev.Name).
			WithReportableDetails(map[string]any{"userId": u.ID}).
			Mark(ierr.ErrPermissionDenied)
	}
	return u, nil
}

func (s *eventService) ListRegistrations(ctx context.Context, eventID string) (*dto.RegistrationsResponse, error) {
	if _, err := s.EventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	regs, err := s.EventRepo.ListRegistrations(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RegistrationsResponse{}
	byTeam := make(map[string]*event.Team)
	for _, reg := range regs {
		if reg.TeamID == "" {
			resp.Solo = append(resp.Solo, reg)
			continue
		}
		t, ok := byTeam[reg.TeamID]
		if !ok {
			t = &event.Team{TeamID: reg.TeamID, TeamName: reg.TeamName}
			byTeam[reg.TeamID] = t
			resp.Teams = append(resp.Teams, t)
		}
		t.Members = append(t.Members, reg)
	}
	return resp, nil
}

func (s *eventService) SetPayment(ctx context.Context, req *dto.SetPaymentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.EventRepo.SetPaymentDone(ctx, req.EventID, req.UserID, req.Done)
}
