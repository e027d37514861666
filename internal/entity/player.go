package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Player identifies a side. Each player owns exactly one mark.
type Player int

const (
	Human Player = iota + 1
	Computer
)

const (
	humanName    = "human"
	computerName = "computer"
)

func ParsePlayer(name string) (Player, error) {
	switch name {
	case humanName:
		return Human, nil
	case computerName:
		return Computer, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, name)
	}
}

func (that Player) Mark() Mark {
	switch that {
	case Human:
		return HumanMark
	case Computer:
		return ComputerMark
	default:
		return EmptyCell
	}
}

func (that Player) Opponent() Player {
	if that == Human {
		return Computer
	}
	return Human
}

func (that Player) String() string {
	switch that {
	case Human:
		return humanName
	case Computer:
		return computerName
	default:
		return ""
	}
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = 0
		return nil
	}

	player, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}

	*that = player

	return nil
}
