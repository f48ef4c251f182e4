package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// NewPauseUI builds the pause menu: resume, the two snapping toggles and
// quit. Toggles write straight into the player's components.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	newButton := func(label string, onClick func(b *widget.Button)) *widget.Button {
		var btn *widget.Button
		btn = widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick(btn)
			}),
		)
		return btn
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(centered),
	)

	resumeBtn := newButton("Resume", func(*widget.Button) {
		g.setPaused(false)
	})

	moveSnap := newButton(snapLabel("Movement snapping", g.movementSnapping()), func(b *widget.Button) {
		if p, ok := ecs.Get(g.scene.World, g.scene.Player, component.PlayerComponent.Kind()); ok {
			p.Snapping = !p.Snapping
		}
		b.Text().Label = snapLabel("Movement snapping", g.movementSnapping())
	})

	animSnap := newButton(snapLabel("Animation snapping", g.animationSnapping()), func(b *widget.Button) {
		if a, ok := ecs.Get(g.scene.World, g.scene.Player, component.LocomotionAnimationComponent.Kind()); ok {
			a.Snapping = !a.Snapping
		}
		b.Text().Label = snapLabel("Animation snapping", g.animationSnapping())
	})

	quitBtn := newButton("Quit", func(*widget.Button) {
		g.quit = true
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/2, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(moveSnap)
	panel.AddChild(animSnap)
	panel.AddChild(quitBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func snapLabel(name string, on bool) string {
	state := "off"
	if on {
		state = "on"
	}
	return fmt.Sprintf("%s: %s", name, state)
}

func (g *Game) movementSnapping() bool {
	p, ok := ecs.Get(g.scene.World, g.scene.Player, component.PlayerComponent.Kind())
	return ok && p.Snapping
}

func (g *Game) animationSnapping() bool {
	a, ok := ecs.Get(g.scene.World, g.scene.Player, component.LocomotionAnimationComponent.Kind())
	return ok && a.Snapping
}
