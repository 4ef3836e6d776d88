// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"errors"
	"testing"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Close was called.
type mockWorker struct {
	closeCount int
	err        error
}

func (m *mockWorker) Close() error {
	m.closeCount++
	return m.err
}

func TestWorkers_Close_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := New(w1, w2, w3)
	if err := ws.Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.closeCount != 1 {
			t.Errorf("worker[%d]: expected closeCount=1, got %d", i, w.closeCount)
		}
	}
}

func TestWorkers_Close_Empty(t *testing.T) {
	ws := New()

	// Should not panic on empty workers list
	if err := ws.Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestWorkers_Close_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	if err := ws.Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestWorkers_Close_ReverseOrder(t *testing.T) {
	order := []int{}

	// orderWorker records its index into the shared order slice
	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := New(newOrderWorker(1), newOrderWorker(2), newOrderWorker(3))
	_ = ws.Close()

	expected := []int{3, 2, 1}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Close_JoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	a := &mockWorker{err: errA}
	b := &mockWorker{err: errB}
	c := &mockWorker{}

	err := New(a, b, c).Close()

	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined errors, got %v", err)
	}
	if c.closeCount != 1 {
		t.Errorf("expected every worker to be closed, got closeCount=%d", c.closeCount)
	}
}

func TestCloseFunc(t *testing.T) {
	called := false
	var w Worker = CloseFunc(func() { called = true })

	if err := w.Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !called {
		t.Error("expected the wrapped function to be called")
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Close.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Close() error {
	*o.order = append(*o.order, o.id)
	return nil
}
