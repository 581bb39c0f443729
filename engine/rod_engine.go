package engine

import (
	"context"
	"fmt"
)

// BrowserFetchFunc wraps the browser package's fetch logic. It is injected
// from main so engine/ never imports browser/ (which would be a cycle:
// browser builds FetchResults from this package's types).
type BrowserFetchFunc func(ctx context.Context, req *FetchRequest) (*FetchResult, error)

// RodEngine is a browser-based engine that delegates to the rod scraper via
// a callback. forceStealth distinguishes the plain tier ("rod") from the
// last-resort tier ("rod-stealth").
type RodEngine struct {
	fetchFunc    BrowserFetchFunc
	forceStealth bool
	name         string
}

// NewRodEngine creates a RodEngine. When forceStealth is true the engine
// always sets Stealth on outgoing requests.
func NewRodEngine(fetchFunc BrowserFetchFunc, forceStealth bool) *RodEngine {
	name := "rod"
	if forceStealth {
		name = "rod-stealth"
	}
	return &RodEngine{
		fetchFunc:    fetchFunc,
		forceStealth: forceStealth,
		name:         name,
	}
}

func (e *RodEngine) Name() string { return e.name }

func (e *RodEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if e.fetchFunc == nil {
		return nil, fmt.Errorf("%s: fetchFunc not configured", e.name)
	}

	// Clone the request so the caller's copy is not mutated.
	r := *req
	if e.forceStealth {
		r.Stealth = true
	}

	result, err := e.fetchFunc(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.name, err)
	}

	result.EngineName = e.name
	return result, nil
}
