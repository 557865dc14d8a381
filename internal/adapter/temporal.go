package adapter

import (
	"context"

	"go.temporal.io/sdk/activity"
)

// Activity exposes activity execution details to enable mocking
//
//go:generate mockgen -source=temporal.go -destination=../mocks/temporal.go -package=mocks -mock_names=Activity=MockActivity
type Activity interface {
	// Attempt returns the current attempt of the running activity, starting at 1
	Attempt(ctx context.Context) int32
}

type temporalActivity struct{}

// NewActivity returns an Activity backed by the Temporal activity package
func NewActivity() Activity {
	return temporalActivity{}
}

func (temporalActivity) Attempt(ctx context.Context) int32 {
	return activity.GetInfo(ctx).Attempt
}
