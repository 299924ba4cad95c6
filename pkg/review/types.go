// Package review holds the screen logic of the review workflow: the action
// bar of a review list, the approve/reject dialog, progress and current
// reviewer summaries, and the review detail screen with its timeline.
package review

import (
	"encoding/json"
	"fmt"
	"time"
)

// Result is the outcome of a review step.
type Result string

const (
	Resolve  Result = "RESOLVE"
	Rejected Result = "REJECTED"
)

// Text is the display label.
func (r Result) Text() string {
	switch r {
	case Resolve:
		return "同意"
	case Rejected:
		return "拒绝"
	}
	return string(r)
}

// Status tracks whether a review still waits for reviewers.
type Status string

const (
	Wait   Status = "WAIT"
	Finish Status = "FINISH"
)

// Text is the display label.
func (s Status) Text() string {
	switch s {
	case Wait:
		return "待审核"
	case Finish:
		return "审核完成"
	}
	return string(s)
}

// DateTimeLayout formats review timestamps.
const DateTimeLayout = "2006-01-02 15:04:05"

// Principal is a user or role taking part in a review.
type Principal struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Step is one link of the review chain.
type Step struct {
	Describe string     `json:"describe"`
	Role     *Principal `json:"role,omitempty"`
	User     *Principal `json:"user,omitempty"`
	RoleName string     `json:"roleName,omitempty"`
	UserName string     `json:"userName,omitempty"`
}

// Process is the ordered reviewer chain.
type Process struct {
	Chain []Step `json:"chain"`
}

// History records one review action. The first entry is the submission.
type History struct {
	User     *Principal `json:"user,omitempty"`
	Describe string     `json:"describe"`
	Result   Result     `json:"result,omitempty"`
	ReviewAt time.Time  `json:"reviewAt"`
}

// Review is a change request moving through the reviewer chain.
type Review struct {
	ID                     string         `json:"id"`
	Describe               string         `json:"describe"`
	Status                 Status         `json:"status"`
	Result                 Result         `json:"result,omitempty"`
	ResultDescribe         string         `json:"resultDescribe,omitempty"`
	ResourceReviewStatus   string         `json:"resourceReviewStatus,omitempty"`
	CurrentReviewUserIndex int            `json:"currentReviewUserIndex"`
	Process                *Process       `json:"reviewProcess,omitempty"`
	Histories              []History      `json:"histories,omitempty"`
	Before                 map[string]any `json:"before,omitempty"`
	After                  map[string]any `json:"after,omitempty"`
	CreateAt               time.Time      `json:"createAt"`
}

// FromAny decodes a review handed over by another screen. Maps are decoded
// through their JSON form.
func FromAny(raw any) (*Review, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case Review:
		return &typed, nil
	case *Review:
		return typed, nil
	case map[string]any:
		data, err := json.Marshal(typed)
		if err != nil {
			return nil, fmt.Errorf("review: encode: %w", err)
		}
		var out Review
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("review: decode: %w", err)
		}
		return &out, nil
	default:
		return nil, fmt.Errorf("review: unsupported value %T", raw)
	}
}

// Authorizer answers whether the current user holds every listed authority.
type Authorizer interface {
	HasAuthorities(codes []string) bool
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(codes []string) bool

// HasAuthorities calls f.
func (f AuthorizerFunc) HasAuthorities(codes []string) bool {
	return f(codes)
}

// Authorities gates an action. A literal allow/deny wins over codes; no codes
// means everyone is allowed.
type Authorities struct {
	Literal *bool
	Codes   []string
}

// Allow returns a literal gate.
func Allow(allowed bool) Authorities {
	return Authorities{Literal: &allowed}
}

// Require gates on authority codes.
func Require(codes ...string) Authorities {
	return Authorities{Codes: codes}
}

// Permit evaluates the gate.
func (a Authorities) Permit(auth Authorizer) bool {
	if a.Literal != nil {
		return *a.Literal
	}
	if len(a.Codes) == 0 {
		return true
	}
	if auth == nil {
		return false
	}
	return auth.HasAuthorities(a.Codes)
}
