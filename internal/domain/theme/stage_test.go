package theme

import "testing"

func TestClassifyStage(t *testing.T) {
	tests := []struct {
		name string
		in   StageInput
		want Stage
	}{
		{
			name: "overheated on 3w spread",
			in:   StageInput{Spread3W: 55, Spread6W: 10},
			want: StageOverheated,
		},
		{
			name: "overheated on 6w spread",
			in:   StageInput{Spread3W: 10, Spread6W: 50},
			want: StageOverheated,
		},
		{
			name: "overheated wins over early despite strong return",
			in:   StageInput{Return3W: 12, Spread3W: 60},
			want: StageOverheated,
		},
		{
			name: "spreading band",
			in:   StageInput{Return3W: 12, Spread3W: 25},
			want: StageSpreading,
		},
		{
			name: "early on 3w return",
			in:   StageInput{Return3W: 10, Spread3W: 5},
			want: StageEarly,
		},
		{
			name: "early on 6w return",
			in:   StageInput{Return6W: 15, Spread6W: 10},
			want: StageEarly,
		},
		{
			name: "notable band",
			in:   StageInput{Return3W: 5},
			want: StageNotable,
		},
		{
			name: "notable on 6w return",
			in:   StageInput{Return6W: 8},
			want: StageNotable,
		},
		{
			name: "settling when only 3w turned negative",
			in:   StageInput{Return3W: -3, Return6W: 2, Spread3W: 5},
			want: StageSettling,
		},
		{
			name: "extinct when both windows negative",
			in:   StageInput{Return3W: -3, Return6W: -1, Spread3W: 5},
			want: StageExtinct,
		},
		{
			name: "negative return with wide spread falls through to default",
			in:   StageInput{Return3W: -3, Return6W: -1, Spread3W: 15},
			want: StageNotable,
		},
		{
			name: "all zeros defaults to notable",
			in:   StageInput{},
			want: StageNotable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStage(tt.in); got != tt.want {
				t.Errorf("ClassifyStage(%+v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyStage_Deterministic(t *testing.T) {
	in := StageInput{Return3W: 7, Return6W: 9, Spread3W: 12, Spread6W: 18}
	first := ClassifyStage(in)
	for i := 0; i < 10; i++ {
		if got := ClassifyStage(in); got != first {
			t.Fatalf("classification changed between calls: %s vs %s", first, got)
		}
	}
}

func TestStageLabel(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageNotable, "주목"},
		{StageEarly, "초기"},
		{StageSpreading, "확산"},
		{StageOverheated, "과열"},
		{StageSettling, "정리"},
		{StageExtinct, "소멸"},
	}
	for _, tt := range tests {
		if got := tt.stage.Label(); got != tt.want {
			t.Errorf("Label(%s) = %s, want %s", tt.stage, got, tt.want)
		}
	}
}

func TestRankTrend(t *testing.T) {
	m := ThemeMetrics{Rank3W: 2, Rank6W: 5, Rank9W: 3}

	if got := m.RankTrend(Window3W); got != TrendUp {
		t.Errorf("3w trend = %q, want up", got)
	}
	if got := m.RankTrend(Window6W); got != TrendDown {
		t.Errorf("6w trend = %q, want down", got)
	}
	if got := m.RankTrend(Window9W); got != TrendFlat {
		t.Errorf("9w trend = %q, want flat", got)
	}

	flat := ThemeMetrics{Rank3W: 4, Rank6W: 4}
	if got := flat.RankTrend(Window3W); got != TrendFlat {
		t.Errorf("equal ranks trend = %q, want flat", got)
	}
}

func TestParseWindow(t *testing.T) {
	for _, w := range Windows {
		got, ok := ParseWindow(w.String())
		if !ok || got != w {
			t.Errorf("ParseWindow(%s) = %v, %v", w.String(), got, ok)
		}
	}
	if _, ok := ParseWindow("12w"); ok {
		t.Error("expected 12w to be rejected")
	}
}

func TestSpreadThreshold(t *testing.T) {
	if th, ok := SpreadThreshold(Window3W); !ok || th != 10 {
		t.Errorf("3w threshold = %v, %v", th, ok)
	}
	if th, ok := SpreadThreshold(Window6W); !ok || th != 15 {
		t.Errorf("6w threshold = %v, %v", th, ok)
	}
	if _, ok := SpreadThreshold(Window9W); ok {
		t.Error("9w must not define a spread threshold")
	}
}
