// Package ui provides the interactive demo: a fyne window where a button is
// the anchor and a bubble is the positioned target. Scrolling the page and
// resizing the window drive the headless host window the positioner runs
// against.
package ui

import (
	"fmt"
	"image/color"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/host"
	"github.com/chrisuehlinger/anchorpos/position"
)

// frameLimit bounds the frames flushed after each interaction.
const frameLimit = 10

// pageSize is the size of the scrollable page the anchor sits on.
var pageSize = fyne.NewSize(2400, 1800)

// DemoOptions configures the demo window.
type DemoOptions struct {
	Strategy       position.Strategy
	Size           fyne.Size
	VisualViewport bool
	Logger         *log.Logger
}

// DemoUI is the demo window.
type DemoUI struct {
	app    fyne.App
	window fyne.Window
	logger *log.Logger

	host   *host.Window
	anchor *dom.Element
	target *dom.Element

	anchorBtn      *widget.Button
	bubble         *fyne.Container
	scroll         *container.Scroll
	status         *widget.Label
	strategySelect *widget.Select

	strategy position.Strategy
	cancel   position.CancelFunc
	viewport fyne.Size
	started  bool
}

// NewDemoUI creates the demo window.
func NewDemoUI(opts DemoOptions) *DemoUI {
	if opts.Size.Width <= 0 || opts.Size.Height <= 0 {
		opts.Size = fyne.NewSize(1024, 768)
	}
	if opts.Strategy.Name() == "" {
		opts.Strategy = position.VerticalTooltip
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	a := app.New()
	w := a.NewWindow("anchorpos")
	w.Resize(opts.Size)

	doc := dom.NewDocument()
	root := doc.CreateElement("html")
	doc.AppendChild(root.AsNode())
	body := root.AppendChild(doc.CreateElement("body"))
	anchor := body.AppendChild(doc.CreateElement("button"))
	anchor.SetId("anchor")
	target := body.AppendChild(doc.CreateElement("div"))
	target.SetId("tip")
	target.SetAttribute("hidden", "")

	var hostOpts []host.WindowOption
	if opts.VisualViewport {
		hostOpts = append(hostOpts, host.WithVisualViewport())
	}

	d := &DemoUI{
		app:      a,
		window:   w,
		logger:   opts.Logger,
		host:     host.NewWindow(doc, float64(opts.Size.Width), float64(opts.Size.Height), hostOpts...),
		anchor:   anchor,
		target:   target,
		strategy: opts.Strategy,
	}
	d.setupUI()
	w.SetOnClosed(d.close)
	return d
}

// setupUI creates the demo components.
func (d *DemoUI) setupUI() {
	// The page: a large transparent area with the anchor in the middle
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(pageSize)
	d.anchorBtn = widget.NewButton("Anchor", d.toggle)
	d.anchorBtn.Resize(d.anchorBtn.MinSize())
	d.anchorBtn.Move(fyne.NewPos(
		(pageSize.Width-d.anchorBtn.MinSize().Width)/2,
		(pageSize.Height-d.anchorBtn.MinSize().Height)/2,
	))
	page := container.NewWithoutLayout(spacer, d.anchorBtn)

	d.scroll = container.NewScroll(page)
	d.scroll.OnScrolled = func(offset fyne.Position) {
		d.host.ScrollTo(float64(offset.X), float64(offset.Y))
		d.settle()
	}

	label := widget.NewLabel("Positioned next to the anchor")
	background := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	background.CornerRadius = theme.InputRadiusSize()
	d.bubble = container.NewStack(background, container.NewPadded(label))
	d.bubble.Hide()
	overlay := container.NewWithoutLayout(d.bubble)

	viewportArea := container.New(&viewportLayout{onResize: d.resized}, d.scroll, overlay)

	names := make([]string, 0, 4)
	for _, s := range position.Strategies() {
		names = append(names, s.Name())
	}
	d.strategySelect = widget.NewSelect(names, d.selectStrategy)
	d.strategySelect.SetSelected(d.strategy.Name())

	d.status = widget.NewLabel("Click the anchor")

	toolbar := container.NewHBox(widget.NewLabel("Strategy"), d.strategySelect)
	if vv := d.host.VisualViewport(); vv != nil {
		keyboard := widget.NewSlider(0, 400)
		keyboard.OnChanged = func(v float64) {
			vv.SetOffset(0, v)
			d.settle()
		}
		toolbar.Add(widget.NewLabel("Visual viewport offset"))
		toolbar.Add(container.NewGridWrap(fyne.NewSize(200, keyboard.MinSize().Height), keyboard))
	}

	d.window.SetContent(container.NewBorder(toolbar, d.status, nil, nil, viewportArea))
}

// selectStrategy switches strategies and re-places a visible bubble.
func (d *DemoUI) selectStrategy(name string) {
	s, err := position.Lookup(name)
	if err != nil {
		d.logger.Error("select strategy", "err", err)
		return
	}
	d.strategy = s
	if d.cancel != nil {
		d.place()
	}
}

// toggle shows the bubble next to the anchor, or hides it.
func (d *DemoUI) toggle() {
	if d.cancel != nil {
		d.hide()
		return
	}
	d.place()
}

// place starts positioning the bubble with the current strategy.
func (d *DemoUI) place() {
	if d.cancel != nil {
		d.cancel()
	}
	d.syncGeometry()
	clearPlacement(d.target, d.anchor)
	d.target.SetAttribute("hidden", "")
	d.bubble.Hide()

	d.cancel = position.Position(d.host, d.target, d.anchor, d.strategy, d.settled, position.WithLogger(d.logger))
	d.settle()
}

func (d *DemoUI) hide() {
	d.cancel()
	d.cancel = nil
	d.target.SetAttribute("hidden", "")
	d.bubble.Hide()
	d.status.SetText("Click the anchor")
}

// syncGeometry copies widget boxes into the document.
func (d *DemoUI) syncGeometry() {
	d.anchor.SetGeometry(viewportGeometry(d.anchorBtn.Position(), d.anchorBtn.Size(), d.scroll.Offset))
	size := d.bubble.MinSize()
	d.target.SetGeometry(&dom.ElementGeometry{Width: float64(size.Width), Height: float64(size.Height)})
}

// settled runs once the first placement has been applied.
func (d *DemoUI) settled(fitsPreferred bool) {
	d.target.RemoveAttribute("hidden")
	d.bubble.Show()
	d.logger.Debug("settled", "strategy", d.strategy.Name(), "fitsPreferred", fitsPreferred)
}

// settle runs pending frames and moves the bubble to the written position.
func (d *DemoUI) settle() {
	d.host.FlushFrames(frameLimit)
	d.applyPlacement()
}

func (d *DemoUI) applyPlacement() {
	if d.cancel == nil {
		return
	}
	var fallbackX float32
	if g := d.anchor.Geometry(); g != nil {
		fallbackX = float32(g.X)
	}
	p := PlacementOf(d.target, d.viewport, fallbackX)
	if !p.Placed {
		return
	}
	d.bubble.Resize(d.bubble.MinSize())
	d.bubble.Move(p.Pos)

	text := fmt.Sprintf("%s at (%.0f, %.0f)", d.strategy.Name(), p.Pos.X, p.Pos.Y)
	if arrow := arrowSummary(d.anchor); arrow != "" {
		text += ", " + arrow
	}
	d.status.SetText(text)
}

// resized is called by the viewport layout whenever the visible area
// changes size.
func (d *DemoUI) resized(size fyne.Size) {
	if size == d.viewport {
		return
	}
	d.viewport = size
	d.host.Resize(float64(size.Width), float64(size.Height))
	if !d.started {
		d.started = true
		d.host.Load()
	}
	d.settle()
}

func (d *DemoUI) close() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	position.Forget(d.host)
}

// Run shows the window and runs the fyne event loop.
func (d *DemoUI) Run() {
	d.window.ShowAndRun()
}

// viewportLayout stacks the page and the overlay over the same area and
// reports the area's size.
type viewportLayout struct {
	onResize func(fyne.Size)
}

func (l *viewportLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if l.onResize != nil {
		l.onResize(size)
	}
}

func (l *viewportLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(200, 150)
}
