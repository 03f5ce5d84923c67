package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/faircommit/factiondraft/internal/verify"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateResult:
		o.printCreateResult(v)
	case GameStatus:
		o.printGameStatus(v)
	case AuthResult:
		o.printAuthResult(v)
	case PlayerOptions:
		o.printPlayerOptions(v)
	case SelectResult:
		o.printSelectResult(v)
	case verify.Reveal:
		o.printReveal(v)
	case verify.Report:
		o.printReport(v)
	case []GameSummary:
		o.printGameList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Faction response type (matches API)
type Faction struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Set  string `json:"set"`
}

// CreatedPlayer response type
type CreatedPlayer struct {
	Name                 string `json:"name"`
	Link                 string `json:"link"`
	AssignmentCommitment string `json:"assignment_commitment"`
}

// CreateResult response type
type CreateResult struct {
	GameID            string          `json:"game_id"`
	FactionsPerPlayer int             `json:"factions_per_player"`
	Players           []CreatedPlayer `json:"players"`
}

// PlayerStatus response type
type PlayerStatus struct {
	Name                 string `json:"name"`
	HasSetCredential     bool   `json:"has_set_credential"`
	HasSelected          bool   `json:"has_selected"`
	AssignmentCommitment string `json:"assignment_commitment"`
	SelectionCommitment  string `json:"selection_commitment,omitempty"`
}

// GameStatus response type
type GameStatus struct {
	GameID            string         `json:"game_id"`
	FactionsPerPlayer int            `json:"factions_per_player"`
	AllSelected       bool           `json:"all_selected"`
	Revealed          bool           `json:"revealed"`
	Players           []PlayerStatus `json:"players"`
}

// AuthResult response type
type AuthResult struct {
	Token  string `json:"token"`
	Action string `json:"action"`
}

// PlayerOptions response type
type PlayerOptions struct {
	GameID               string    `json:"game_id"`
	Player               string    `json:"player"`
	Factions             []Faction `json:"factions"`
	AssignmentCommitment string    `json:"assignment_commitment"`
	HasSelected          bool      `json:"has_selected"`
	SelectedFaction      *Faction  `json:"selected_faction,omitempty"`
}

// SelectResult response type
type SelectResult struct {
	SelectionCommitment string `json:"selection_commitment"`
	AllSelected         bool   `json:"all_selected"`
	Revealed            bool   `json:"revealed"`
}

// GameSummary response type
type GameSummary struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	PlayerCount int    `json:"player_count"`
	Revealed    bool   `json:"revealed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printCreateResult(c CreateResult) {
	fmt.Printf("Game: %s\n", c.GameID)
	fmt.Printf("Factions per player: %d\n", c.FactionsPerPlayer)
	fmt.Printf("Players (%d):\n", len(c.Players))
	for _, p := range c.Players {
		fmt.Printf("  - %s\n", p.Name)
		fmt.Printf("    link:       %s\n", p.Link)
		fmt.Printf("    commitment: %s\n", p.AssignmentCommitment)
	}
}

func (o *Output) printGameStatus(g GameStatus) {
	fmt.Printf("Game: %s\n", g.GameID)
	phase := "forming"
	if g.Revealed {
		phase = "revealed"
	}
	fmt.Printf("Phase: %s\n", phase)
	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		state := "waiting"
		if p.HasSelected {
			state = "selected"
		}
		fmt.Printf("  - %s: %s\n", p.Name, state)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	if a.Action == "credential_set" {
		fmt.Println("Password set for this game")
	} else {
		fmt.Println("Authenticated")
	}
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printPlayerOptions(p PlayerOptions) {
	fmt.Printf("Game: %s\n", p.GameID)
	fmt.Printf("Player: %s\n", p.Player)
	fmt.Printf("Your hand (%d):\n", len(p.Factions))
	for _, f := range p.Factions {
		marker := " "
		if p.SelectedFaction != nil && p.SelectedFaction.ID == f.ID {
			marker = "*"
		}
		fmt.Printf("  %s %s (%s, %s)\n", marker, f.Name, f.ID, f.Set)
	}
	if p.HasSelected {
		fmt.Println("You have already selected")
	}
}

func (o *Output) printSelectResult(s SelectResult) {
	fmt.Println("Selection locked in")
	fmt.Printf("Commitment: %s\n", s.SelectionCommitment)
	if s.Revealed {
		fmt.Println("All players have selected - the game is revealed")
	} else {
		fmt.Println("Waiting for other players")
	}
}

func (o *Output) printReveal(r verify.Reveal) {
	fmt.Printf("Game: %s\n", r.GameID)
	for _, p := range r.Players {
		selected := "-"
		if p.SelectedFaction != nil {
			selected = p.SelectedFaction.Name
		}
		fmt.Printf("  %s picked %s\n", p.Name, selected)
		fmt.Printf("    hand:")
		for _, f := range p.Factions {
			fmt.Printf(" %s", f.Name)
		}
		fmt.Println()
	}
}

func (o *Output) printReport(r verify.Report) {
	fmt.Printf("Game: %s\n", r.GameID)
	for _, p := range r.Players {
		fmt.Printf("  %s: assignment=%s selection=%s in-hand=%s\n",
			p.Name, checkMark(p.AssignmentValid), checkMark(p.SelectionValid), checkMark(p.SelectionInHand))
	}
	if r.Valid {
		fmt.Println("Result: VALID - every commitment checks out")
	} else {
		fmt.Println("Result: INVALID - the transcript does not match its commitments")
	}
}

func checkMark(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}

func (o *Output) printGameList(games []GameSummary) {
	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range games {
		phase := "forming"
		if g.Revealed {
			phase = "revealed"
		}
		fmt.Printf("  %s  %d players  %s  (created %s)\n", g.ID, g.PlayerCount, phase, g.CreatedAt)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
