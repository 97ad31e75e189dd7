package apperror

import "errors"

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidPly   = errors.New("invalid ply")

	ErrAIMovePending = errors.New("ai move is pending")

	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrNotFound                = errors.New("not found")
	ErrInvalidScore            = errors.New("invalid score")
)
