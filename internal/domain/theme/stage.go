package theme

// Stage is the lifecycle label of a theme's momentum phase. Values keep
// the Korean codes the dashboard displays.
type Stage string

const (
	StageNotable    Stage = "0단계"
	StageEarly      Stage = "1단계"
	StageSpreading  Stage = "2단계"
	StageOverheated Stage = "3단계"
	StageSettling   Stage = "정리"
	StageExtinct    Stage = "소멸"
)

// Label returns the short Korean description shown next to the stage code.
func (s Stage) Label() string {
	switch s {
	case StageNotable:
		return "주목"
	case StageEarly:
		return "초기"
	case StageSpreading:
		return "확산"
	case StageOverheated:
		return "과열"
	case StageSettling:
		return "정리"
	case StageExtinct:
		return "소멸"
	}
	return ""
}

// StageInput carries the four signals the classifier reads.
type StageInput struct {
	Return3W float64
	Return6W float64
	Spread3W float64
	Spread6W float64
}

// stageRule is one branch of the classifier. Rules are evaluated in order
// and the first match wins; several rules' raw conditions overlap, so the
// order here is the contract, not the magnitudes.
type stageRule struct {
	name    string
	matches func(StageInput) bool
	stage   func(StageInput) Stage
}

func fixed(s Stage) func(StageInput) Stage {
	return func(StageInput) Stage { return s }
}

var stageRules = []stageRule{
	{
		name:    "overheated",
		matches: func(in StageInput) bool { return maxSpread(in) >= 50 },
		stage:   fixed(StageOverheated),
	},
	{
		name:    "spreading",
		matches: func(in StageInput) bool { return maxSpread(in) >= 20 },
		stage:   fixed(StageSpreading),
	},
	{
		name:    "early",
		matches: func(in StageInput) bool { return in.Return3W >= 10 || in.Return6W >= 15 },
		stage:   fixed(StageEarly),
	},
	{
		name:    "notable",
		matches: func(in StageInput) bool { return in.Return3W >= 5 || in.Return6W >= 8 },
		stage:   fixed(StageNotable),
	},
	{
		name:    "declining",
		matches: func(in StageInput) bool { return in.Return3W < 0 && in.Spread3W < 10 },
		stage: func(in StageInput) Stage {
			if in.Return6W < 0 {
				return StageExtinct
			}
			return StageSettling
		},
	},
	{
		name:    "default",
		matches: func(StageInput) bool { return true },
		stage:   fixed(StageNotable),
	},
}

func maxSpread(in StageInput) float64 {
	if in.Spread3W > in.Spread6W {
		return in.Spread3W
	}
	return in.Spread6W
}

// ClassifyStage maps returns and spreads to a lifecycle stage. Pure
// function; identical inputs always yield the same stage.
func ClassifyStage(in StageInput) Stage {
	for _, rule := range stageRules {
		if rule.matches(in) {
			return rule.stage(in)
		}
	}
	return StageNotable
}
