package art

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type Animation struct {
	FPS    int
	Loops  int
	Frames []string
}

// Animations holds the built-in frames for every key. Every frame is three
// lines tall so they overlay cleanly.
var Animations = map[FrameKey]Animation{
	FrameDefault: {FPS: 1, Loops: 1, Frames: []string{getDefaultCat()}},
	FrameSad:     {FPS: 1, Loops: 1, Frames: []string{getSadCat()}},
	FrameDead:    {FPS: 1, Loops: 1, Frames: []string{getDeadCat()}},
	FramePetting: {FPS: 4, Loops: 2, Frames: []string{
		" /\\_/\\  ~\n( ^.^ ) ♥\n > ^ <",
		" /\\_/\\ ~\n( ^ω^ )  ♥\n > ^ <",
	}},
	FrameFeeding: {FPS: 4, Loops: 2, Frames: []string{
		" /\\_/\\\n( o.o ) ><>\n > ^ <",
		" /\\_/\\\n( ^o^ )><>\n > ^ <",
	}},
	FramePunched: {FPS: 8, Loops: 2, Frames: []string{
		" /\\_/\\  *\n( >.< ) POW\n > ^ <",
		"  /\\_/\\\n ( @.@ )\n  > ^ <",
	}},
	FrameBathing: {FPS: 4, Loops: 4, Frames: []string{
		" /\\_/\\  o\n( -.- ) O\n >~~~< o",
		" /\\_/\\ O\n( -.- )  o\n >~~~<  O",
	}},
}

// PlayAnimation draws each frame over the previous one by moving the cursor
// back up before redrawing.
func PlayAnimation(w io.Writer, anim Animation) {
	if len(anim.Frames) == 0 {
		return
	}
	fps := anim.FPS
	if fps <= 0 {
		fps = 4
	}
	loops := anim.Loops
	if loops <= 0 {
		loops = 1
	}
	delay := time.Second / time.Duration(fps)

	height := 0
	for _, f := range anim.Frames {
		height = max(height, strings.Count(f, "\n")+1)
	}

	first := true
	for l := 0; l < loops; l++ {
		for _, frame := range anim.Frames {
			if !first {
				fmt.Fprintf(w, "\033[%dA", height)
				time.Sleep(delay)
			}
			first = false

			lines := strings.Split(frame, "\n")
			for i := 0; i < height; i++ {
				fmt.Fprint(w, "\033[2K")
				if i < len(lines) {
					fmt.Fprint(w, lines[i])
				}
				fmt.Fprint(w, "\n")
			}
		}
	}
}
