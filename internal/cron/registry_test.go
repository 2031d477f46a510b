package cron

import "testing"

func TestRegistrySkipsNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &testJob{name: "one"}, nil)
	registry.Register(nil)
	registry.Register(&testJob{name: "two"})

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Name() != "one" || jobs[1].Name() != "two" {
		t.Fatalf("unexpected order: %q, %q", jobs[0].Name(), jobs[1].Name())
	}
}
