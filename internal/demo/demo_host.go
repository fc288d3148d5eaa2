package demo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"stacktrain.dev/stacktrain/internal/train"
)

// Edit records a single EditRequest call.
type Edit struct {
	Number int
	Base   string
	Body   string
}

// Host implements train.Host in memory.
type Host struct {
	requests map[int]*train.Request
	// Edits records every accepted edit, in order.
	Edits []Edit
	// EditErrors rejects edits for the given request numbers.
	EditErrors map[int]error
	// ListError fails ListOpenRequests.
	ListError error
	// PendingHeads is consumed one entry per GetRequestByBranch call and
	// becomes the request's HeadSHA, simulating a host catching up to a push.
	PendingHeads map[string][]string
	// Lookups counts GetRequest calls per number.
	Lookups map[int]int
	Delay   time.Duration
}

// NewHost creates a host holding requests.
func NewHost(requests ...*train.Request) *Host {
	h := &Host{
		requests:     make(map[int]*train.Request),
		EditErrors:   make(map[int]error),
		PendingHeads: make(map[string][]string),
		Lookups:      make(map[int]int),
	}
	for _, r := range requests {
		h.Put(r)
	}
	return h
}

// Put adds or replaces a request.
func (h *Host) Put(req *train.Request) {
	cp := *req
	if cp.State == "" {
		cp.State = train.StateOpen
	}
	h.requests[cp.Number] = &cp
}

// Request returns a copy of the stored request, or nil.
func (h *Host) Request(number int) *train.Request {
	req, ok := h.requests[number]
	if !ok {
		return nil
	}
	cp := *req
	return &cp
}

// ListOpenRequests returns every open request keyed by head branch.
func (h *Host) ListOpenRequests(_ context.Context) (train.Snapshot, error) {
	h.sleep()
	if h.ListError != nil {
		return nil, h.ListError
	}
	snapshot := make(train.Snapshot)
	for _, req := range h.requests {
		if strings.ToUpper(req.State) == train.StateOpen {
			cp := *req
			snapshot[req.Head] = &cp
		}
	}
	return snapshot, nil
}

// GetRequest returns the request with number, or nil.
func (h *Host) GetRequest(_ context.Context, number int) (*train.Request, error) {
	h.sleep()
	h.Lookups[number]++
	return h.Request(number), nil
}

// GetRequestByBranch returns the newest request whose head is branch.
func (h *Host) GetRequestByBranch(_ context.Context, branch string) (*train.Request, error) {
	h.sleep()
	var numbers []int
	for n, req := range h.requests {
		if req.Head == branch {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return nil, nil
	}
	sort.Ints(numbers)
	req := h.requests[numbers[len(numbers)-1]]

	if pending := h.PendingHeads[branch]; len(pending) > 0 {
		req.HeadSHA = pending[0]
		h.PendingHeads[branch] = pending[1:]
	}
	cp := *req
	return &cp, nil
}

// EditRequest applies an edit unless it is configured to fail.
func (h *Host) EditRequest(_ context.Context, number int, base, body string) error {
	h.sleep()
	if err := h.EditErrors[number]; err != nil {
		return err
	}
	req, ok := h.requests[number]
	if !ok {
		return fmt.Errorf("demo host: pull request #%d not found", number)
	}
	req.Base = base
	req.Body = body
	h.Edits = append(h.Edits, Edit{Number: number, Base: base, Body: body})
	return nil
}

func (h *Host) sleep() {
	if h.Delay > 0 {
		time.Sleep(h.Delay)
	}
}
