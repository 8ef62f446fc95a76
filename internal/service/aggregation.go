package service

import (
	"context"
	"sort"

	"github.com/iliyamo/olympics-logistics/internal/model"
	"github.com/iliyamo/olympics-logistics/internal/repository"
)

// AggregationService derives member medal tallies and event result sets
// from the individual and team result tables.
type AggregationService struct {
	members *repository.MemberRepo
	events  *repository.EventRepo
}

func NewAggregationService(members *repository.MemberRepo, events *repository.EventRepo) *AggregationService {
	return &AggregationService{members: members, events: events}
}

// GetMemberProfile returns the member's profile, or nil for an unknown id.
// Medal counts are filled in for athletes only: each colour is the sum of
// individual medals and medals of teams the athlete belonged to.
func (s *AggregationService) GetMemberProfile(ctx context.Context, memberID string) (*model.Profile, error) {
	if err := checkMemberID("getMemberProfile", "member id", memberID); err != nil {
		return nil, err
	}
	p, err := s.members.GetProfile(ctx, memberID)
	if err != nil || p == nil {
		return nil, err
	}
	if p.MemberType != model.RoleAthlete {
		return p, nil
	}

	individual, err := s.members.IndividualMedals(ctx, memberID)
	if err != nil {
		return nil, err
	}
	team, err := s.members.TeamMedals(ctx, memberID)
	if err != nil {
		return nil, err
	}
	p.SetMedals(individual.Plus(team))
	return p, nil
}

// EventKind reports whether an event is team-scored: any team entered in
// the event makes it one.
func (s *AggregationService) EventKind(ctx context.Context, eventID int64) (model.EventKind, error) {
	n, err := s.events.CountTeams(ctx, eventID)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return model.EventTeam, nil
	}
	return model.EventIndividual, nil
}

// GetEventResults returns the results of an event ordered by participant.
// Team events yield only team records; individual events only athletes.
func (s *AggregationService) GetEventResults(ctx context.Context, eventID int64) ([]model.ResultRecord, error) {
	if err := checkID("getEventResults", "event id", eventID); err != nil {
		return nil, err
	}
	kind, err := s.EventKind(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var rows []repository.ResultRow
	if kind == model.EventTeam {
		rows, err = s.events.TeamResults(ctx, eventID)
	} else {
		rows, err = s.events.IndividualResults(ctx, eventID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]model.ResultRecord, 0, len(rows))
	for _, r := range rows {
		medal, err := model.ParseMedal(r.MedalCode)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ResultRecord{Participant: r.Participant, CountryName: r.CountryName, Medal: medal})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Participant < out[j].Participant })
	return out, nil
}
