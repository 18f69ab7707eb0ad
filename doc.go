// Package dice is the object model of a 2D tabletop-game engine built on
// [Ebitengine]: cards, chips, boards and anything else that sits on a table.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for a [Table]:
//
//	table := dice.NewTable()
//	// ... add roots ...
//	dice.Run(table, dice.RunConfig{Title: "My Game", Width: 1024, Height: 768})
//
// For full control, implement [ebiten.Game] yourself and call [Table.Update]
// and [Table.Draw] directly:
//
//	func (g *Game) Update() error        { g.table.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.table.Draw(dice.ScreenRenderer{Target: s}) }
//
// # Scene graph
//
// Every entity is a [Node]. [Object] is the generic node; [Card] and [Chip]
// embed it and add their own state. Nodes form trees: a child's position,
// rotation (degrees) and scale are relative to its parent, and
// [Object.GlobalBounds] composes the whole ancestor chain.
//
//	board := dice.NewObject("board", "Board")
//	board.SetTexture(textures.Get("board"))
//
//	card := dice.NewCard("ace", "Ace of Spades")
//	card.SetFrontTexture(textures.Get("ace"))
//	card.SetBackTexture(textures.Get("back"))
//	card.SetPosition(120, 80)
//	board.AddChild(card)
//
// Update recurses only through active nodes and Draw only through visible
// ones; a hidden or inactive node freezes its whole subtree. Children are
// visited in insertion order and painted on top of their parent.
//
// Structural mistakes (nil child, duplicate child id, unknown id on removal)
// are logged at warn level through the logger installed with [SetLogger] and
// leave the tree unchanged.
//
// # Properties
//
// Each object carries a property bag for ad-hoc game data:
//
//	card.SetProperty("value", 11)
//	v := dice.Property(card, "value", 0) // 11
//
// Values that are missing or of the wrong kind return the supplied default.
//
// # Persistence
//
// Every node implements [json.Marshaler] and [json.Unmarshaler]. Unmarshaling
// only applies the fields present in the document, so partial documents act
// as patches, and it never rebuilds children. To rebuild whole trees with
// their concrete types use [Load] or a [Registry]:
//
//	data, _ := json.Marshal(board)
//	copy, err := dice.Load(data)
//
// Textures are never serialized; bind them again after loading.
//
// [Ebitengine]: https://ebitengine.org
package dice
