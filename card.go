package dice

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Card is a two-sided object owned by a player. The displayed texture always
// follows the face state: the front texture when face up, the back texture
// when face down. If the texture for the current side is not bound, whatever
// was displayed before stays displayed.
type Card struct {
	Object

	Player int

	front  *ebiten.Image
	back   *ebiten.Image
	faceUp bool
}

// NewCard creates a face-down card with no textures bound.
func NewCard(id, name string) *Card {
	c := &Card{}
	objectDefaults(&c.Object, id, name)
	c.Type = TypeCard
	return c
}

// Base returns the embedded object.
func (c *Card) Base() *Object {
	if c == nil {
		return nil
	}
	return &c.Object
}

// SetFrontTexture binds the front texture and shows it if the card is face up.
func (c *Card) SetFrontTexture(tex *ebiten.Image) {
	c.front = tex
	if c.faceUp && c.front != nil {
		c.SetTexture(c.front)
	}
}

// SetBackTexture binds the back texture and shows it if the card is face down.
func (c *Card) SetBackTexture(tex *ebiten.Image) {
	c.back = tex
	if !c.faceUp && c.back != nil {
		c.SetTexture(c.back)
	}
}

// FrontTexture returns the bound front texture, or nil.
func (c *Card) FrontTexture() *ebiten.Image {
	return c.front
}

// BackTexture returns the bound back texture, or nil.
func (c *Card) BackTexture() *ebiten.Image {
	return c.back
}

// SetFaceUp sets the face state and shows the matching texture.
func (c *Card) SetFaceUp(faceUp bool) {
	c.faceUp = faceUp
	if faceUp {
		if c.front != nil {
			c.SetTexture(c.front)
		}
		return
	}
	if c.back != nil {
		c.SetTexture(c.back)
	}
}

// FaceUp reports whether the card shows its front.
func (c *Card) FaceUp() bool {
	return c.faceUp
}

// Flip toggles the face state.
func (c *Card) Flip() {
	c.SetFaceUp(!c.faceUp)
}

type cardDocument struct {
	objectDocument
	Player int  `json:"player"`
	FaceUp bool `json:"face_up"`
}

type cardPatch struct {
	Player *json.Number `json:"player"`
	FaceUp *bool        `json:"face_up"`
}

// MarshalJSON encodes the card: the object document plus player and face_up.
func (c *Card) MarshalJSON() ([]byte, error) {
	doc, err := c.document()
	if err != nil {
		return nil, err
	}
	return json.Marshal(cardDocument{objectDocument: doc, Player: c.Player, FaceUp: c.faceUp})
}

// UnmarshalJSON applies present fields. face_up goes through SetFaceUp so the
// displayed texture is re-resolved. A document that fails to decode leaves the
// card unchanged.
func (c *Card) UnmarshalJSON(data []byte) error {
	apply, err := c.Object.decode(data)
	if err != nil {
		return err
	}
	var p cardPatch
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("dice: decode card: %w", err)
	}
	var player int
	if p.Player != nil {
		if player, err = integer(*p.Player); err != nil {
			return fmt.Errorf("dice: decode card player: %w", err)
		}
	}

	apply()
	if p.Player != nil {
		c.Player = player
	}
	if p.FaceUp != nil {
		c.SetFaceUp(*p.FaceUp)
	}
	return nil
}
