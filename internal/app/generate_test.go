package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gitmsg/gitmsg/internal/domain"
	"github.com/gitmsg/gitmsg/internal/ports"
	"github.com/gitmsg/gitmsg/internal/security"
	"github.com/gitmsg/gitmsg/internal/testutil"
)

func newGenerate(model ports.Model, redact bool) *GenerateService {
	return NewGenerateService(model, security.NewRedactor(), 75, redact, time.Minute)
}

func TestGenerateParsesCandidates(t *testing.T) {
	model := &testutil.FakeModel{Replies: []string{testutil.SampleReply}}
	svc := newGenerate(model, false)

	got, err := svc.Generate(context.Background(), domain.Diff{Content: testutil.SampleDiffSmall})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual([]string(got), testutil.SampleMessages) {
		t.Errorf("Generate() = %v, want %v", got, testutil.SampleMessages)
	}

	if len(model.Prompts) != 1 {
		t.Fatalf("model queried %d times, want 1", len(model.Prompts))
	}
	if !strings.Contains(model.Prompts[0], testutil.SampleDiffSmall) {
		t.Error("prompt does not contain the diff")
	}
	if !strings.Contains(model.Prompts[0], "75 characters") {
		t.Error("prompt does not mention the character budget")
	}
}

func TestGenerateNoisyReply(t *testing.T) {
	model := &testutil.FakeModel{Replies: []string{testutil.SampleReplyNoisy}}
	svc := newGenerate(model, false)

	got, err := svc.Generate(context.Background(), domain.Diff{Content: testutil.SampleDiffSmall})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual([]string(got), testutil.SampleMessages) {
		t.Errorf("Generate() = %v, want commentary skipped and quotes stripped", got)
	}
}

func TestGenerateRedactsPrompt(t *testing.T) {
	diff := "diff --git a/conf.go b/conf.go\n+password = \"hunter2\"\n"
	model := &testutil.FakeModel{Replies: []string{testutil.SampleReply}}
	svc := newGenerate(model, true)

	if _, err := svc.Generate(context.Background(), domain.Diff{Content: diff}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Contains(model.Prompts[0], "hunter2") {
		t.Error("prompt still contains the secret")
	}
	if !strings.Contains(model.Prompts[0], "[REDACTED]") {
		t.Error("prompt does not contain the redaction marker")
	}
}

func TestGenerateRedactionOff(t *testing.T) {
	diff := "diff --git a/conf.go b/conf.go\n+password = \"hunter2\"\n"
	model := &testutil.FakeModel{Replies: []string{testutil.SampleReply}}
	svc := newGenerate(model, false)

	if _, err := svc.Generate(context.Background(), domain.Diff{Content: diff}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(model.Prompts[0], "hunter2") {
		t.Error("diff content was altered with redaction disabled")
	}
}

func TestGenerateModelErrorPassthrough(t *testing.T) {
	cause := &ports.ServiceError{Backend: "Ollama", Err: errors.New("connection refused")}
	svc := newGenerate(&testutil.FakeModel{Err: cause}, false)

	_, err := svc.Generate(context.Background(), domain.Diff{Content: testutil.SampleDiffSmall})
	var se *ports.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("Generate() error = %v, want *ports.ServiceError", err)
	}
	if se.Backend != "Ollama" {
		t.Errorf("Backend = %q, want Ollama", se.Backend)
	}
}

func TestGenerateUnparseableReply(t *testing.T) {
	model := &testutil.FakeModel{Replies: []string{"I cannot write commit messages for this diff."}}
	svc := newGenerate(model, false)

	_, err := svc.Generate(context.Background(), domain.Diff{Content: testutil.SampleDiffSmall})
	if !errors.Is(err, domain.ErrNoCandidates) {
		t.Errorf("Generate() error = %v, want ErrNoCandidates", err)
	}
}

func TestGenerateEmptyReply(t *testing.T) {
	svc := newGenerate(&testutil.FakeModel{}, false)

	_, err := svc.Generate(context.Background(), domain.Diff{Content: testutil.SampleDiffSmall})
	if !errors.Is(err, domain.ErrNoCandidates) {
		t.Errorf("Generate() error = %v, want ErrNoCandidates", err)
	}
}
