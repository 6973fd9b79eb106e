package art

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethgrid/catflip/internal/pet"
)

func TestChooseFrameKey(t *testing.T) {
	all := map[pet.Flag]bool{
		pet.FlagBeingPet:     true,
		pet.FlagBeingFed:     true,
		pet.FlagBeingPunched: true,
		pet.FlagBeingBathed:  true,
	}

	tests := []struct {
		name  string
		flags map[pet.Flag]bool
		dead  bool
		score float64
		want  FrameKey
	}{
		{"dead beats everything", all, true, 90, FrameDead},
		{"bathing beats punched", all, false, 10, FrameBathing},
		{"punched beats petting", map[pet.Flag]bool{pet.FlagBeingPunched: true, pet.FlagBeingPet: true}, false, 50, FramePunched},
		{"petting beats feeding", map[pet.Flag]bool{pet.FlagBeingPet: true, pet.FlagBeingFed: true}, false, 50, FramePetting},
		{"feeding", map[pet.Flag]bool{pet.FlagBeingFed: true}, false, 50, FrameFeeding},
		{"sad below threshold", nil, false, 39.9, FrameSad},
		{"default at threshold", nil, false, 40, FrameDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseFrameKey(tt.flags, tt.dead, tt.score))
		})
	}
}

func TestGetStaticArt(t *testing.T) {
	assert.Contains(t, GetStaticArt(FrameDead), "x.x")
	assert.Contains(t, GetStaticArt(FrameSad), "T.T")
	assert.Equal(t, GetStaticArt(FrameDefault), GetStaticArt("unknown"))

	for key, anim := range Animations {
		for i, f := range anim.Frames {
			assert.Equal(t, 3, strings.Count(f, "\n")+1, "%s frame %d", key, i)
		}
	}
}

func TestDecorate(t *testing.T) {
	frame := GetStaticArt(FrameDefault)
	assert.Equal(t, frame, Decorate(frame, nil))

	out := Decorate(frame, []string{"headphones", "starPin", "cape"})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `d/\_/\b`, lines[0])
	assert.True(t, strings.HasSuffix(lines[2], "★"))
}

func TestAnimationStaysInPlace(t *testing.T) {
	anim := Animation{
		FPS:   1000,
		Loops: 3,
		Frames: []string{
			"    o\n   /|\\\n   / \\",
			"  \\o/\n   |\n  / \\",
		},
	}

	var buf bytes.Buffer
	PlayAnimation(&buf, anim)
	output := buf.String()

	assert.Equal(t, anim.Loops, strings.Count(output, "    o"))
	assert.Equal(t, anim.Loops, strings.Count(output, "  \\o/"))
	assert.Equal(t, anim.Loops*len(anim.Frames)-1, strings.Count(output, "\033[3A"))

	screen := simulateTerminalOutput(output)
	assert.Equal(t, []string{"  \\o/", "   |", "  / \\"}, screen)
}

func TestPlayAnimationEmpty(t *testing.T) {
	var buf bytes.Buffer
	PlayAnimation(&buf, Animation{})
	assert.Empty(t, buf.String())
}

// simulateTerminalOutput replays the cursor-up and clear-line sequences
// PlayAnimation emits and returns the visible lines.
func simulateTerminalOutput(output string) []string {
	lines := []string{""}
	cur := 0

	for i := 0; i < len(output); {
		if output[i] == '\033' && i+1 < len(output) && output[i+1] == '[' {
			i += 2
			start := i
			for i < len(output) && output[i] >= '0' && output[i] <= '9' {
				i++
			}
			n, _ := strconv.Atoi(output[start:i])
			cmd := output[i]
			i++
			switch cmd {
			case 'A':
				cur = max(0, cur-n)
			case 'K':
				lines[cur] = ""
			}
			continue
		}
		if output[i] == '\n' {
			cur++
			for len(lines) <= cur {
				lines = append(lines, "")
			}
			i++
			continue
		}
		lines[cur] += output[i : i+1]
		i++
	}

	// the trailing newline leaves the cursor on an empty line
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
