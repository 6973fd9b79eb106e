package art

import (
	"strings"

	"github.com/sethgrid/catflip/internal/pet"
	"github.com/sethgrid/catflip/internal/wellbeing"
)

type FrameKey string

const (
	FrameDefault FrameKey = "default"
	FrameDead    FrameKey = "dead"
	FrameBathing FrameKey = "bathing"
	FramePunched FrameKey = "punched"
	FramePetting FrameKey = "petting"
	FrameFeeding FrameKey = "feeding"
	FrameSad     FrameKey = "sad"
)

// ChooseFrameKey picks what to draw. Death beats every animation flag, and
// flags beat mood.
func ChooseFrameKey(flags map[pet.Flag]bool, dead bool, score float64) FrameKey {
	switch {
	case dead:
		return FrameDead
	case flags[pet.FlagBeingBathed]:
		return FrameBathing
	case flags[pet.FlagBeingPunched]:
		return FramePunched
	case flags[pet.FlagBeingPet]:
		return FramePetting
	case flags[pet.FlagBeingFed]:
		return FrameFeeding
	case score < wellbeing.SadThreshold:
		return FrameSad
	}
	return FrameDefault
}

// GetStaticArt returns the first frame for key, falling back to the default
// cat.
func GetStaticArt(key FrameKey) string {
	if anim, ok := Animations[key]; ok && len(anim.Frames) > 0 {
		return anim.Frames[0]
	}
	return Animations[FrameDefault].Frames[0]
}

// Decorate draws owned accessories onto a frame. Unknown accessories are
// skipped.
func Decorate(frame string, accessories []string) string {
	if len(accessories) == 0 {
		return frame
	}
	lines := strings.Split(frame, "\n")
	for _, acc := range accessories {
		switch acc {
		case "headphones":
			lines[0] = "d" + strings.TrimPrefix(lines[0], " ") + "b"
		case "starPin":
			if len(lines) > 2 {
				lines[2] += " ★"
			}
		}
	}
	return strings.Join(lines, "\n")
}

func getDefaultCat() string {
	return ` /\_/\
( o.o )
 > ^ <`
}

func getSadCat() string {
	return ` /\_/\
( T.T )
 > ^ <`
}

func getDeadCat() string {
	return ` /\_/\
( x.x )
 > ^ <`
}
