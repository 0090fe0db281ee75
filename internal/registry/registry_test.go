package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/session"
)

type stubRunner struct{ id string }

func (r stubRunner) ID() string    { return r.id }
func (r stubRunner) Title() string { return strings.ToUpper(r.id) }

func (r stubRunner) Run(context.Context, *session.Session) error { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("test-b", func() Runner { return stubRunner{"test-b"} })
	Register("test-a", func() Runner { return stubRunner{"test-a"} })

	if !Exists("test-a") || Exists("test-missing") {
		t.Error("Exists() reports wrong registrations")
	}

	r, err := Create("test-b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if r.ID() != "test-b" {
		t.Errorf("Create() returned %q", r.ID())
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create() of an unknown runner should fail")
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "test-") {
			ids = append(ids, info.ID+"="+info.Title)
		}
	}
	if strings.Join(ids, ",") != "test-a=TEST-A,test-b=TEST-B" {
		t.Errorf("List() = %v, expected sorted entries with titles", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Runner { return stubRunner{"test-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", func() Runner { return stubRunner{"test-dup"} })
}
