package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/starfolio/section"
)

var (
	headerTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	headerDimColor  = color.NRGBA{R: 0x88, G: 0x88, B: 0x99, A: 0xff}
)

// Header is the navigation bar across the top of the window: one button per
// section plus the contact copy action.
type Header struct {
	UI *ebitenui.UI

	copyBtn *widget.Button
	status  *widget.Text
	current section.Section
}

func NewHeader(g *Game) *Header {
	h := &Header{current: -1}

	barImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x05, G: 0x05, B: 0x12, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x3a, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x55, A: 255})
	btnOff := imageui.NewNineSliceColor(color.NRGBA{R: 0x11, G: 0x11, B: 0x18, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: headerTextColor, Disabled: headerDimColor}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	for _, sec := range section.All {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover, Disabled: btnOff}),
			widget.ButtonOpts.Text(strings.ToUpper(sec.String()), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.jumpTo(sec, glideSeconds)
			}),
		)
		bar.AddChild(btn)
	}

	h.copyBtn = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover, Disabled: btnOff}),
		widget.ButtonOpts.Text("COPY EMAIL", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(rowData),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.contact.Copy()
		}),
	)
	bar.AddChild(h.copyBtn)

	h.status = widget.NewText(
		widget.TextOpts.Text("", &face, headerDimColor),
		widget.TextOpts.WidgetOpts(rowData),
	)
	bar.AddChild(h.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	h.UI = &ebitenui.UI{Container: root}
	return h
}

// Refresh enables the copy action only in the contact section and shows
// the last copy result.
func (h *Header) Refresh(current section.Section, contact *ContactCopier) {
	if current != h.current {
		h.current = current
		h.copyBtn.GetWidget().Disabled = current != section.Contact
	}
	h.status.Label = contact.Status()
}
