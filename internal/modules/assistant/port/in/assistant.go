package in

import "context"

type Usecase interface {
	Ask(ctx context.Context, question string) (string, error)
}
