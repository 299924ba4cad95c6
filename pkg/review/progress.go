package review

import "strings"

// Progress bar statuses.
const (
	ProgressActive    = "active"
	ProgressSuccess   = "success"
	ProgressException = "exception"
)

// ProgressInfo is the progress bar state of a review.
type ProgressInfo struct {
	Percent float64
	Status  string
}

// Progress computes how far the review moved through its chain. Reviews
// without a chain report 100.
func Progress(r Review) ProgressInfo {
	percent := 100.0
	if r.Process != nil && len(r.Process.Chain) > 0 {
		percent = float64(r.CurrentReviewUserIndex) / float64(len(r.Process.Chain)) * 100
	}

	status := ProgressActive
	switch r.Result {
	case Resolve:
		status = ProgressSuccess
	case Rejected:
		status = ProgressException
	}
	return ProgressInfo{Percent: percent, Status: status}
}

// CurrentReviewer describes the chain step waiting for review, or "-" when
// the review has no chain.
func CurrentReviewer(r Review) string {
	if r.Process == nil {
		return "-"
	}
	var step Step
	if idx := r.CurrentReviewUserIndex; idx >= 0 && idx < len(r.Process.Chain) {
		step = r.Process.Chain[idx]
	}
	lines := []string{step.Describe}
	if step.Role != nil {
		lines = append(lines, "可审核角色: "+step.Role.Name)
	}
	if step.User != nil {
		lines = append(lines, "可审核用户: "+step.User.Name)
	}
	return strings.Join(lines, "\n")
}
