package entity

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// IsAnonymous - a player without a registered name has no identity to report scores under.
func (that *Player) IsAnonymous() bool {
	return that.Name == ""
}
