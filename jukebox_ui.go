package main

import (
	"image/color"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/sound"
)

// newJukeboxUI builds the button panel anchored to the bottom of the window:
// one row of songs to fade to and one row of controls.
func newJukeboxUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	row := func() *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			)),
		)
	}

	nowPlaying := widget.NewText(
		widget.TextOpts.Text(g.nowPlaying(), &face, white),
	)
	g.nowLabel = func(s string) { nowPlaying.Label = s }

	songs := row()
	for _, song := range g.songs.Songs() {
		if isBattleSong(song) {
			continue
		}
		songs.AddChild(button(string(song), func() {
			if err := g.fader.SetWithFade(song); err != nil {
				g.log.Warn().Err(err).Str("song", string(song)).Msg("jukebox")
			}
		}))
	}

	controls := row()
	controls.AddChild(button("Silence", func() {
		_ = g.fader.SetWithFade(sound.None)
	}))
	controls.AddChild(button("Battle", func() {
		song, ok := g.battleSong()
		if !ok {
			return
		}
		if err := g.fader.SetForeground(song); err != nil {
			g.log.Warn().Err(err).Str("song", string(song)).Msg("jukebox")
			return
		}
		if err := g.behaviour.Goto("battle"); err != nil {
			g.log.Debug().Err(err).Msg("jukebox")
		}
	}))
	controls.AddChild(button("End battle", func() {
		g.fader.FadeForegroundToAmbient()
		if err := g.behaviour.Goto("overworld"); err != nil {
			g.log.Debug().Err(err).Msg("jukebox")
		}
	}))
	controls.AddChild(button("Screenshot", g.window.RequestScreenshot))
	controls.AddChild(button("Quit", func() {
		g.events.Push(engine.QuitEvent{})
	}))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionEnd}),
		),
	)
	panel.AddChild(nowPlaying)
	panel.AddChild(songs)
	panel.AddChild(controls)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func isBattleSong(s sound.Song) bool {
	return strings.Contains(string(s), "battle")
}

func (g *Game) battleSong() (sound.Song, bool) {
	for _, s := range g.songs.Songs() {
		if isBattleSong(s) {
			return s, true
		}
	}
	return sound.None, false
}
