package entity

// Mark is the state of a single board cell.
type Mark string

const (
	Empty   Mark = ""
	PlayerA Mark = "X"
	PlayerB Mark = "O"
)

func (that Mark) IsPlayer() bool {
	return that == PlayerA || that == PlayerB
}

// Opponent - returns the other player's mark, Empty stays Empty.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

func (that Mark) String() string {
	if that == Empty {
		return "-"
	}
	return string(that)
}

// MarkForPly - PlayerA places on even plies, PlayerB on odd ones.
func MarkForPly(ply int) Mark {
	if ply%2 == 0 {
		return PlayerA
	}
	return PlayerB
}
