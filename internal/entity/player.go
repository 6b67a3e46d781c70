package entity

type Player struct {
	ID      string `json:"id"`
	RoundID string `json:"round_id,omitempty"`
}
