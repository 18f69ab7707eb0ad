package dice

import (
	"encoding/json"
	"fmt"
)

// Chip is an object owned by a player.
type Chip struct {
	Object

	Player int
}

// NewChip creates a chip owned by player 0.
func NewChip(id, name string) *Chip {
	c := &Chip{}
	objectDefaults(&c.Object, id, name)
	c.Type = TypeChip
	return c
}

// Base returns the embedded object.
func (c *Chip) Base() *Object {
	if c == nil {
		return nil
	}
	return &c.Object
}

type chipDocument struct {
	objectDocument
	Player int `json:"player"`
}

func (c *Chip) MarshalJSON() ([]byte, error) {
	doc, err := c.document()
	if err != nil {
		return nil, err
	}
	return json.Marshal(chipDocument{objectDocument: doc, Player: c.Player})
}

func (c *Chip) UnmarshalJSON(data []byte) error {
	apply, err := c.Object.decode(data)
	if err != nil {
		return err
	}
	var p struct {
		Player *json.Number `json:"player"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("dice: decode chip: %w", err)
	}
	var player int
	if p.Player != nil {
		if player, err = integer(*p.Player); err != nil {
			return fmt.Errorf("dice: decode chip player: %w", err)
		}
	}

	apply()
	if p.Player != nil {
		c.Player = player
	}
	return nil
}
