// Package verify checks a revealed game transcript against its published
// commitments. It works purely on the reveal payload, so clients can audit a
// game without trusting the server that produced it.
package verify

import (
	"github.com/faircommit/factiondraft/internal/commit"
)

// RevealedFaction is a faction as it appears in a reveal payload.
type RevealedFaction struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Set  string `json:"set"`
}

// RevealedPlayer is one player's full transcript: the hand they were dealt,
// the faction they picked, and the salts that open both commitments.
type RevealedPlayer struct {
	Name                 string            `json:"name"`
	Factions             []RevealedFaction `json:"factions"`
	AssignmentSalt       string            `json:"assignment_salt"`
	AssignmentCommitment string            `json:"assignment_commitment"`
	SelectedFaction      *RevealedFaction  `json:"selected_faction"`
	SelectionSalt        string            `json:"selection_salt"`
	SelectionCommitment  string            `json:"selection_commitment"`
}

// Reveal is the full revealed state of a finished game.
type Reveal struct {
	GameID   string           `json:"game_id"`
	Players  []RevealedPlayer `json:"players"`
	Revealed bool             `json:"revealed"`
}

// PlayerReport records the outcome of the three checks run per player.
type PlayerReport struct {
	Name            string `json:"name"`
	AssignmentValid bool   `json:"assignment_valid"`
	SelectionValid  bool   `json:"selection_valid"`
	SelectionInHand bool   `json:"selection_in_hand"`
}

// OK reports whether every check for this player passed.
func (r PlayerReport) OK() bool {
	return r.AssignmentValid && r.SelectionValid && r.SelectionInHand
}

// Report aggregates per-player results for a whole game.
type Report struct {
	GameID  string         `json:"game_id"`
	Valid   bool           `json:"valid"`
	Players []PlayerReport `json:"players"`
}

// Check verifies every player's assignment and selection commitments and that
// each selected faction came from the hand that player was dealt. A reveal
// with no players, or one where any check fails, yields Valid=false.
func Check(reveal Reveal) Report {
	report := Report{
		GameID:  reveal.GameID,
		Valid:   len(reveal.Players) > 0,
		Players: make([]PlayerReport, 0, len(reveal.Players)),
	}

	for _, player := range reveal.Players {
		pr := checkPlayer(player)
		if !pr.OK() {
			report.Valid = false
		}
		report.Players = append(report.Players, pr)
	}

	return report
}

func checkPlayer(player RevealedPlayer) PlayerReport {
	pr := PlayerReport{Name: player.Name}

	names := make([]string, 0, len(player.Factions))
	for _, f := range player.Factions {
		names = append(names, f.Name)
	}
	pr.AssignmentValid = commit.Verify(
		player.AssignmentCommitment,
		commit.AssignmentSubject(player.Name, names),
		player.AssignmentSalt,
	)

	if player.SelectedFaction == nil {
		return pr
	}

	pr.SelectionValid = commit.Verify(
		player.SelectionCommitment,
		commit.SelectionSubject(player.Name, player.SelectedFaction.Name),
		player.SelectionSalt,
	)

	for _, f := range player.Factions {
		if f.ID == player.SelectedFaction.ID {
			pr.SelectionInHand = true
			break
		}
	}

	return pr
}
