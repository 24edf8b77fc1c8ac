package response

import (
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/views"
)

// Player represents a player in API responses. The share token is
// never echoed back; the link the player arrived by is their copy.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:   string(p.ID),
		Name: p.Name,
	}
}

// Identity describes how the request's token resolved
type Identity struct {
	Resolved bool    `json:"resolved"`
	Player   *Player `json:"player,omitempty"`
}

// Match represents a confirmed pairing in API responses
type Match struct {
	ID         string `json:"id"`
	TimeslotID string `json:"timeslot_id"`
	Player1    Player `json:"player1"`
	Player2    Player `json:"player2"`
}

// MatchFromSnapshot converts a model.Match, resolving player names from
// the snapshot; a dangling player reference yields a name-less entry
func MatchFromSnapshot(m model.Match, snap *model.Snapshot) Match {
	resolve := func(id model.PlayerID) Player {
		if p, ok := snap.PlayerByID(id); ok {
			return PlayerFromModel(p)
		}
		return Player{ID: string(id)}
	}
	return Match{
		ID:         string(m.ID),
		TimeslotID: string(m.TimeslotID),
		Player1:    resolve(m.Player1ID),
		Player2:    resolve(m.Player2ID),
	}
}

// Timeslot represents one bookable period, classified for the viewer
type Timeslot struct {
	ID             string `json:"id"`
	SlotDate       string `json:"slot_date"`
	Period         string `json:"period"`
	Status         string `json:"status"`
	AvailabilityID string `json:"availability_id,omitempty"`
	Match          *Match `json:"match,omitempty"`
}

// DateGroup is the timeslots of one calendar date
type DateGroup struct {
	Date      string     `json:"date"`
	Timeslots []Timeslot `json:"timeslots"`
}

// ConfirmedMatch is a match of the viewing player with display fields
type ConfirmedMatch struct {
	MatchID  string `json:"match_id"`
	SlotDate string `json:"slot_date,omitempty"`
	Period   string `json:"period,omitempty"`
	Opponent string `json:"opponent"`
}

// ConfirmedMatchFromView converts a views.ConfirmedMatch
func ConfirmedMatchFromView(cm views.ConfirmedMatch) ConfirmedMatch {
	out := ConfirmedMatch{
		MatchID:  string(cm.Match.ID),
		Opponent: cm.OpponentName,
	}
	if cm.Timeslot != nil {
		out.SlotDate = cm.Timeslot.SlotDate
		out.Period = cm.Timeslot.Period
	}
	return out
}

// Schedule is the full page payload: identity, grouped timeslots with
// per-slot status, and the viewer's confirmed matches
type Schedule struct {
	Identity  Identity         `json:"identity"`
	Dates     []DateGroup      `json:"dates"`
	MyMatches []ConfirmedMatch `json:"my_matches"`
}

// ScheduleFromSnapshot builds the schedule payload for one viewer
func ScheduleFromSnapshot(snap *model.Snapshot, player model.Player, resolved bool) Schedule {
	var playerID model.PlayerID
	identity := Identity{Resolved: resolved}
	if resolved {
		playerID = player.ID
		p := PlayerFromModel(player)
		identity.Player = &p
	}

	myIndex := views.MyAvailabilityIndex(snap, playerID)

	var dates []DateGroup
	for _, group := range views.GroupedTimeslots(snap) {
		slots := make([]Timeslot, 0, len(group.Timeslots))
		for _, ts := range group.Timeslots {
			slot := Timeslot{
				ID:       string(ts.ID),
				SlotDate: ts.SlotDate,
				Period:   ts.Period,
				Status:   string(views.TimeslotStatus(snap, playerID, ts.ID)),
			}
			if availID, ok := myIndex[ts.ID]; ok {
				slot.AvailabilityID = string(availID)
			}
			if match, ok := views.MatchForTimeslot(snap, ts.ID); ok {
				m := MatchFromSnapshot(match, snap)
				slot.Match = &m
			}
			slots = append(slots, slot)
		}
		dates = append(dates, DateGroup{Date: group.Date, Timeslots: slots})
	}

	myMatches := make([]ConfirmedMatch, 0)
	for _, cm := range views.MyConfirmedMatches(snap, playerID) {
		myMatches = append(myMatches, ConfirmedMatchFromView(cm))
	}

	return Schedule{
		Identity:  identity,
		Dates:     dates,
		MyMatches: myMatches,
	}
}

// Toggle is the response to an availability toggle
type Toggle struct {
	Action     string `json:"action"`
	Reconciled bool   `json:"reconciled"`
}
