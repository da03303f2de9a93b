package game

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

// handScript is a scripted hand: a room setup, a fixed shuffle seed, the
// sequence of player actions, and the expected end state.
type handScript struct {
	Name       string         `yaml:"name"`
	GameType   string         `yaml:"gameType"`
	MaxSeats   uint32         `yaml:"maxSeats"`
	SmallBlind int64          `yaml:"smallBlind"`
	BigBlind   int64          `yaml:"bigBlind"`
	Ante       int64          `yaml:"ante"`
	Seed       int64          `yaml:"seed"`
	Players    []scriptPlayer `yaml:"players"`
	Actions    []scriptAction `yaml:"actions"`
	Expect     scriptExpect   `yaml:"expect"`
}

type scriptPlayer struct {
	SeatNo uint32 `yaml:"seatNo"`
	Name   string `yaml:"name"`
	Stack  int64  `yaml:"stack"`
}

type scriptAction struct {
	SeatNo uint32 `yaml:"seatNo"`
	Action string `yaml:"action"`
	Amount int64  `yaml:"amount"`
}

type scriptExpect struct {
	Phase      string           `yaml:"phase"`
	PotAwarded int64            `yaml:"potAwarded"`
	TotalChips int64            `yaml:"totalChips"`
	Stacks     map[uint32]int64 `yaml:"stacks"`
}

func parseGameType(t *testing.T, s string) GameType {
	t.Helper()
	for _, g := range []GameType{GameType_HOLDEM, GameType_INDIAN,
		GameType_PLO_BOMB_POT, GameType_THREE_TWO_ONE} {
		if g.String() == s {
			return g
		}
	}
	t.Fatalf("unknown game type %q", s)
	return 0
}

func TestHandScripts(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			data, err := ioutil.ReadFile(file)
			require.NoError(t, err)

			var script handScript
			require.NoError(t, yaml.Unmarshal(data, &script))

			config := &RoomConfig{
				GameCode:   script.Name,
				GameType:   parseGameType(t, script.GameType),
				MaxSeats:   script.MaxSeats,
				SmallBlind: script.SmallBlind,
				BigBlind:   script.BigBlind,
				Ante:       script.Ante,
			}
			players := make([]*Player, len(script.Players))
			for i, sp := range script.Players {
				players[i] = &Player{SeatNo: sp.SeatNo, Name: sp.Name, Stack: sp.Stack}
			}

			deal, err := DealHand(config, players, script.Seed)
			require.NoError(t, err)

			hand := deal.Hand
			updated := deal.Players
			var final *ActionResult
			for _, step := range script.Actions {
				action := ParseACTION(step.Action)
				require.NotZero(t, action, "unknown action %q", step.Action)

				result := ApplyAction(hand, updated, deal.Boards, deal.HoleCards,
					ActionInput{SeatNo: step.SeatNo, Action: action, Amount: step.Amount})
				require.Empty(t, result.Error,
					"seat %d %s rejected", step.SeatNo, step.Action)
				hand = result.Hand
				updated = result.Players
				final = result
			}

			assert.Equal(t, script.Expect.Phase, hand.Phase.String())
			if script.Expect.PotAwarded != 0 {
				require.NotNil(t, final)
				assert.Equal(t, script.Expect.PotAwarded, final.PotAwarded)
			}
			if script.Expect.TotalChips != 0 {
				total := int64(0)
				for _, p := range updated {
					total += p.Stack
				}
				if hand.Phase != HandStatus_COMPLETE {
					total += hand.PotSize
				}
				assert.Equal(t, script.Expect.TotalChips, total)
			}
			bySeat := playersBySeat(updated)
			for seatNo, stack := range script.Expect.Stacks {
				assert.Equal(t, stack, bySeat[seatNo].Stack, "seat %d stack", seatNo)
			}
		})
	}
}
