package gui

import (
	"fmt"
	"math"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/phasetime/internal/level"
	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	a.drawSidebar()
	a.drawControls()
	a.drawFooter()
	if a.showCompanion {
		a.drawCompanion()
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, surface.Plain(text), rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawScene() {
	if a.tex.ID == 0 {
		return
	}
	dst := a.sceneRect()
	src := rl.NewRectangle(0, 0, float32(a.texW), float32(a.texH))
	rl.DrawTexturePro(a.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (a *App) drawSidebar() {
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, sidebarWidth, h, ColPanel)
	a.drawText("phasetime", 16, 20, 28, ColSelect)

	active := a.stage.Level()
	for _, lv := range level.All() {
		r := levelRect(lv.ID)
		if lv.ID == active {
			rl.DrawRectangleRec(r, ColBg)
			rl.DrawRectangle(int32(r.X), int32(r.Y), 3, int32(r.Height), ColAccent)
			a.drawText(lv.Title, int(r.X)+10, int(r.Y)+5, 16, ColSelect)
		} else {
			a.drawText(lv.Title, int(r.X)+10, int(r.Y)+5, 16, ColText)
		}
	}
}

func (a *App) drawControls() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	x := w - controlsWidth
	rl.DrawRectangle(x, 0, controlsWidth, h, ColPanel)
	a.drawText("CONTROLS", int(x)+30, 30, 18, ColSelect)

	p := a.store.Get()
	for i, r := range params.Ranges {
		track := a.sliderRect(i)
		label := ColText
		if i == a.control {
			label = ColSelect
		}
		a.drawText(r.Label, int(track.X), int(track.Y)-32, 16, label)
		a.drawText(fmt.Sprintf("%.2f", p.Field(r.Name)), int(track.X+track.Width)-40, int(track.Y)-32, 16, ColAccent)
		rl.DrawRectangleRec(track, ColTrack)
		ratio := float32(r.Ratio(p.Field(r.Name)))
		fill := track
		fill.Width *= ratio
		rl.DrawRectangleRec(fill, ColSelect)
		rl.DrawCircle(int32(track.X+track.Width*ratio), int32(track.Y+track.Height/2), 8, ColSelect)
	}

	y := 330
	status, col := "RUNNING", ColSelect
	switch {
	case a.recorder != nil:
		status, col = fmt.Sprintf("REC %d", a.recorder.Len()), ColAccent
	case a.stage.Paused():
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, int(x)+30, y, 18, col)
	a.drawText(fmt.Sprintf("t     %.2fs", a.stage.Time()), int(x)+30, y+30, 16, ColText)
	a.drawText(fmt.Sprintf("frame %d", a.stage.Frames()), int(x)+30, y+52, 16, ColText)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int(x)+30, y+74, 16, ColTextDim)

	a.drawTelemetry(int(x)+30, y+110, sliderWidth, 60)

	if a.audio != nil && a.audio.Active() {
		lv := a.audio.Levels()
		for i, v := range []float64{lv.Bass, lv.Mid, lv.High} {
			bh := int32(math.Round(40 * math.Min(v, 1)))
			rl.DrawRectangle(x+30+int32(i)*22, int32(y+250)-bh, 16, bh, ColAccent)
		}
		a.drawText("AUDIO", int(x)+104, y+226, 14, ColTextDim)
	} else {
		a.drawText("AUDIO [OFF]", int(x)+30, y+226, 14, ColTextDim)
	}
}

// drawTelemetry plots recent frame luminance as a line strip.
func (a *App) drawTelemetry(rectX, rectY, width, height int) {
	if len(a.luminance) < 2 {
		return
	}
	minVal, maxVal := a.luminance[0], a.luminance[0]
	for _, v := range a.luminance {
		minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1e-3
	}
	points := make([]rl.Vector2, len(a.luminance))
	for i, val := range a.luminance {
		px := float32(rectX) + float32(i)/float32(historyLen)*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText("luminance", rectX, rectY+height+6, 14, ColTextDim)
}

func (a *App) drawFooter() {
	lv, _, ok := a.stage.Active()
	if !ok {
		return
	}
	r := a.sceneRect()
	x, y := int(r.X)+20, int(r.Y+r.Height)+10
	a.drawText(lv.Description, x, y, 16, ColText)
	a.drawText(strings.ReplaceAll(lv.Math, "$", ""), x, y+24, 16, ColAccent)
	a.drawText(lv.Link, x, y+48, 14, ColTextDim)

	hint := "[UP/DOWN] LEVEL  [TAB] CONTROL  [LEFT/RIGHT] ADJUST  [SPACE] PAUSE  [R] RESET  [C] NOTES  [G] GIF  [P] PNG  [Q] QUIT"
	if a.status != "" && time.Now().Before(a.statusUntil) {
		hint = a.status
	}
	a.drawText(hint, x, y+70, 12, ColTextDim)
}

func (a *App) drawCompanion() {
	lv, _, ok := a.stage.Active()
	if !ok {
		return
	}
	r := a.sceneRect()
	box := rl.NewRectangle(r.X+20, r.Y+20, r.Width-40, r.Height-40)
	rl.DrawRectangleRec(box, rl.NewColor(250, 250, 250, 235))
	rl.DrawRectangleLinesEx(box, 1, ColTrack)

	x, y := int(box.X)+20, int(box.Y)+20
	maxChars := int(box.Width-40) / 9
	for _, sec := range []struct{ head, body string }{
		{"PROBLEM", lv.Companion.Problem},
		{"IDEA", lv.Companion.Idea},
		{"WHY", lv.Companion.Why},
		{"BRIDGE", lv.Companion.Bridge},
	} {
		a.drawText(sec.head, x, y, 16, ColAccent)
		y += 22
		for _, l := range wrap(clean(sec.body), maxChars) {
			if y > int(box.Y+box.Height)-24 {
				return
			}
			a.drawText(l, x, y, 15, ColText)
			y += 19
		}
		y += 10
	}
}

func clean(s string) string {
	return strings.NewReplacer("**", "", "$$", "", "$", "", "\\text", "", "\\", "").Replace(s)
}

func wrap(s string, n int) []string {
	if n < 10 {
		n = 10
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		cur := ""
		for _, w := range words {
			if len(cur)+len(w)+1 > n && cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			if cur != "" {
				cur += " "
			}
			cur += w
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}
