package outline

import (
	"errors"
	"testing"

	"github.com/tsawler/rubric/model"
)

// makeSizedLine creates a minimal merged line at a font size
func makeSizedLine(txt string, size float64) model.MergedLine {
	return model.MergedLine{
		Page:     1,
		Text:     txt,
		FontName: "Helvetica",
		FontSize: size,
		Rect:     model.NewRect(72, 100, 300, 100+size),
	}
}

func repeatLines(txt string, size float64, n int) []model.MergedLine {
	lines := make([]model.MergedLine, n)
	for i := range lines {
		lines[i] = makeSizedLine(txt, size)
	}
	return lines
}

func TestProfiler_BodySize(t *testing.T) {
	profiler := NewProfiler()
	lines := repeatLines("body", 10, 3)
	lines = append(lines,
		makeSizedLine("lead paragraph", 12),
		makeSizedLine("pull quote", 12),
		makeSizedLine("Section", 16),
	)

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.BodySize != 10 {
		t.Errorf("BodySize = %v, want 10", profile.BodySize)
	}
}

func TestProfiler_BodySizeTieFirstEncountered(t *testing.T) {
	profiler := NewProfiler()
	// Two sizes with equal counts; the first one seen wins
	lines := append(repeatLines("a", 14, 3), repeatLines("b", 12, 3)...)

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.BodySize != 14 {
		t.Errorf("BodySize = %v, want 14 (first encountered)", profile.BodySize)
	}
}

func TestProfiler_NoiseFloor(t *testing.T) {
	profiler := NewProfiler()
	// Tiny superscript text dominates by count but sits below the floor
	lines := repeatLines("tiny", 4, 50)
	lines = append(lines, repeatLines("body", 11, 5)...)

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.BodySize != 11 {
		t.Errorf("BodySize = %v, want 11", profile.BodySize)
	}
}

func TestProfiler_NoBodySize(t *testing.T) {
	profiler := NewProfiler()

	_, err := profiler.Profile(nil)
	if !errors.Is(err, ErrNoBodySize) {
		t.Errorf("Profile(nil) error = %v, want ErrNoBodySize", err)
	}

	// Sizes at the floor are excluded too; the check is strict
	_, err = profiler.Profile(repeatLines("tiny", 5, 20))
	if !errors.Is(err, ErrNoBodySize) {
		t.Errorf("Profile(all at floor) error = %v, want ErrNoBodySize", err)
	}
}

func TestProfiler_LevelLadder(t *testing.T) {
	profiler := NewProfiler()
	lines := repeatLines("body", 10, 20)
	lines = append(lines,
		makeSizedLine("sub", 14),
		makeSizedLine("title", 24),
		makeSizedLine("section", 18),
	)

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}

	want := model.SizeLevelMap{24: model.H1, 18: model.H2, 14: model.H3}
	if len(profile.Levels) != len(want) {
		t.Fatalf("Levels has %d entries, want %d", len(profile.Levels), len(want))
	}
	for size, level := range want {
		if got, ok := profile.Levels.LevelFor(size); !ok || got != level {
			t.Errorf("Levels[%v] = %v, want %v", size, got, level)
		}
	}
}

func TestProfiler_CandidateThreshold(t *testing.T) {
	profiler := NewProfiler()
	lines := repeatLines("body", 12, 20)
	// 12.6 sits at the body*1.05 threshold and must not make the ladder
	lines = append(lines, makeSizedLine("close", 12.6), makeSizedLine("clear", 12.7))

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if _, ok := profile.Levels.LevelFor(12.6); ok {
		t.Error("Size 12.6 assigned a level; threshold must be strict")
	}
	if level, ok := profile.Levels.LevelFor(12.7); !ok || level != model.H1 {
		t.Errorf("Levels[12.7] = %v, want H1", level)
	}
}

func TestProfiler_DecorativeSizesExcluded(t *testing.T) {
	profiler := NewProfiler()
	lines := repeatLines("body", 12, 20)
	lines = append(lines, makeSizedLine("banner", 44), makeSizedLine("title", 24))

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if _, ok := profile.Levels.LevelFor(44); ok {
		t.Error("Size 44 assigned a level; sizes above MaxHeadingSize are decorative")
	}
	if level, ok := profile.Levels.LevelFor(24); !ok || level != model.H1 {
		t.Errorf("Levels[24] = %v, want H1", level)
	}
}

func TestProfiler_LadderCappedAtFiveLevels(t *testing.T) {
	profiler := NewProfiler()
	lines := repeatLines("body", 10, 30)
	for _, size := range []float64{30, 28, 26, 24, 22, 20, 18} {
		lines = append(lines, makeSizedLine("h", size))
	}

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if len(profile.Levels) != 5 {
		t.Fatalf("Levels has %d entries, want 5", len(profile.Levels))
	}

	// The five largest sizes get levels; the rest are dropped
	want := map[float64]model.HeadingLevel{
		30: model.H1, 28: model.H2, 26: model.H3, 24: model.H4, 22: model.H5,
	}
	for size, level := range want {
		if got, ok := profile.Levels.LevelFor(size); !ok || got != level {
			t.Errorf("Levels[%v] = %v, want %v", size, got, level)
		}
	}
	for _, size := range []float64{20, 18} {
		if _, ok := profile.Levels.LevelFor(size); ok {
			t.Errorf("Levels[%v] assigned; ladder must cap at five", size)
		}
	}
}

func TestProfiler_LadderOrderIndependentOfEncounter(t *testing.T) {
	profiler := NewProfiler()
	lines := repeatLines("body", 12, 20)
	// Smaller heading size encountered before the larger one
	lines = append(lines, makeSizedLine("section", 18), makeSizedLine("title", 24))

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if level, _ := profile.Levels.LevelFor(24); level != model.H1 {
		t.Errorf("Levels[24] = %v, want H1 regardless of encounter order", level)
	}
	if level, _ := profile.Levels.LevelFor(18); level != model.H2 {
		t.Errorf("Levels[18] = %v, want H2", level)
	}
}

func TestProfiler_CustomConfig(t *testing.T) {
	config := DefaultProfilerConfig()
	config.MaxLevels = 2
	profiler := NewProfilerWithConfig(config)

	lines := repeatLines("body", 12, 10)
	lines = append(lines, makeSizedLine("a", 24), makeSizedLine("b", 18), makeSizedLine("c", 14))

	profile, err := profiler.Profile(lines)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if len(profile.Levels) != 2 {
		t.Errorf("Levels has %d entries, want 2", len(profile.Levels))
	}
}
