package domain

// TeachingState is a classroom mode. Several states may be active at once.
type TeachingState struct {
	ID             string
	Name           string
	IsActive       bool
	ElapsedSeconds int
}

// TeachingAction is an observed behaviour that can be tallied and timed.
type TeachingAction struct {
	ID             string
	Name           string
	Count          int
	IsTiming       bool
	ElapsedSeconds int
}

// Template names a catalog entry before a session gives it counters.
type Template struct {
	ID   string
	Name string
}

func DefaultStateTemplates() []Template {
	return []Template{
		{ID: "lecture", Name: "講述教學"},
		{ID: "group", Name: "小組討論"},
		{ID: "practice", Name: "實作/演算"},
		{ID: "digital", Name: "數位運用"},
	}
}

func DefaultActionTemplates() []Template {
	return []Template{
		{ID: "praise", Name: "正向鼓勵"},
		{ID: "correct", Name: "糾正規範"},
		{ID: "open_q", Name: "開放提問"},
		{ID: "closed_q", Name: "封閉提問"},
		{ID: "patrol", Name: "巡視走動"},
	}
}

// NewStates builds zero-valued states from templates.
func NewStates(templates []Template) []TeachingState {
	states := make([]TeachingState, 0, len(templates))
	for _, t := range templates {
		states = append(states, TeachingState{ID: t.ID, Name: t.Name})
	}
	return states
}

// NewActions builds zero-valued actions from templates.
func NewActions(templates []Template) []TeachingAction {
	actions := make([]TeachingAction, 0, len(templates))
	for _, t := range templates {
		actions = append(actions, TeachingAction{ID: t.ID, Name: t.Name})
	}
	return actions
}
