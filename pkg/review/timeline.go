package review

import "strings"

// Timeline step statuses.
const (
	StepFinish = "finish"
	StepError  = "error"
	StepWait   = "wait"
)

// TimelineStep is one entry of the review detail header.
type TimelineStep struct {
	Title       string
	Status      string
	Description []string
	Icon        string
}

// Timeline lays out the submission, one step per chain link and the final
// outcome. Chain steps take their status from the matching history entry.
func Timeline(r Review) []TimelineStep {
	var chain []Step
	if r.Process != nil {
		chain = r.Process.Chain
	}
	steps := make([]TimelineStep, 0, len(chain)+2)

	first := TimelineStep{Title: r.Describe, Status: StepFinish}
	if len(r.Histories) > 0 {
		first.Description = historyLines(r.Histories[0], false)
	}
	steps = append(steps, first)

	for i, link := range chain {
		step := TimelineStep{Title: link.Describe}
		if i+1 < len(r.Histories) {
			history := r.Histories[i+1]
			step.Status = StepError
			if history.Result == Resolve {
				step.Status = StepFinish
			}
			step.Description = historyLines(history, true)
		} else {
			step.Status = StepWait
			if r.Result == Rejected {
				step.Status = StepError
			}
			step.Description = []string{strings.Join([]string{link.RoleName, link.UserName}, "/")}
		}
		steps = append(steps, step)
	}

	final := TimelineStep{Title: Finish.Text(), Status: StepWait, Icon: "smile"}
	if r.Status == Finish {
		final.Status = StepError
		if r.Result == Resolve {
			final.Status = StepFinish
		}
	}
	if r.Result == Rejected {
		final.Icon = "meh"
	}
	return append(steps, final)
}

func historyLines(h History, withResult bool) []string {
	name := ""
	if h.User != nil {
		name = h.User.Name
	}
	describe := h.Describe
	if withResult {
		describe = h.Result.Text() + "原因: " + h.Describe
	}
	at := ""
	if !h.ReviewAt.IsZero() {
		at = h.ReviewAt.Format(DateTimeLayout)
	}
	return []string{name, describe, at}
}
