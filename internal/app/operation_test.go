package app

import (
	"errors"
	"testing"
	"time"
)

func TestNewOperation(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	op := NewOperation("CreateNote", now)

	if op.ID != "20240115T093000Z" {
		t.Errorf("ID = %q, want UTC timestamp", op.ID)
	}
	if op.Name != "CreateNote" {
		t.Errorf("Name = %q, want CreateNote", op.Name)
	}
	if op.Status != "success" {
		t.Errorf("Status = %q, want success", op.Status)
	}
	if !op.StartedAt.Equal(now) {
		t.Errorf("StartedAt = %v, want %v", op.StartedAt, now)
	}
}

func TestOperation_Record(t *testing.T) {
	tests := []struct {
		name   string
		errs   []error
		failed bool
	}{
		{name: "no errors", errs: []error{nil, nil}, failed: false},
		{name: "one error", errs: []error{nil, errors.New("boom")}, failed: true},
		{name: "error then success stays failed", errs: []error{errors.New("boom"), nil}, failed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation("Op", time.Now())
			for _, err := range tt.errs {
				if got := op.Record(err); got != err {
					t.Errorf("Record() = %v, want %v", got, err)
				}
			}
			if op.Failed() != tt.failed {
				t.Errorf("Failed() = %v, want %v", op.Failed(), tt.failed)
			}
		})
	}
}
