package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/dgallion1/docstruct/internal/heuristics"
	"github.com/google/uuid"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	data := []byte("hello world")
	job := NewJob("report.pdf", "", "en", data)

	if job.ID == "" {
		t.Fatal("expected a job ID")
	}
	if _, err := uuid.Parse(job.ID); err != nil {
		t.Errorf("expected a UUID job ID, got %q: %v", job.ID, err)
	}
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %q/%q", job.Status, job.Phase)
	}
	if job.ContentHash != ContentHashHex(data) {
		t.Errorf("expected content hash of the upload, got %q", job.ContentHash)
	}
	if string(job.FileData()) != "hello world" {
		t.Errorf("expected file data to be kept, got %q", job.FileData())
	}
	if other := NewJob("report.pdf", "", "en", data); other.ID == job.ID {
		t.Error("expected distinct IDs for distinct jobs")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusConverting, "converting"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SetStatusFailed(t *testing.T) {
	job := &Job{
		ID:        "test-fail",
		Status:    StatusConverting,
		UpdatedAt: time.Now(),
	}
	job.SetStatus(StatusFailed, "converting")
	if job.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, job.Status)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("page 3 unreadable")
	job.AddError("page 7 unreadable")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "page 3 unreadable" {
		t.Errorf("expected first error %q, got %q", "page 3 unreadable", snap.Progress.Errors[0])
	}

	// The snapshot must not alias the job's slice.
	snap.Progress.Errors[0] = "changed"
	if job.Snapshot().Progress.Errors[0] != "page 3 unreadable" {
		t.Error("expected snapshot errors to be a copy")
	}
}

func TestJob_SetPages(t *testing.T) {
	job := &Job{ID: "pages-test", UpdatedAt: time.Now()}
	job.SetPages(12)

	snap := job.Snapshot()
	if snap.Progress.Pages != 12 {
		t.Errorf("expected 12 pages, got %d", snap.Progress.Pages)
	}
}

func TestJob_SetResult(t *testing.T) {
	doc := doctree.NewDocument(&doctree.Meta{Title: "Found Title", Language: "en"})
	sec := doctree.NewSection("1 Intro", "1", "1")
	sub := doctree.NewSection("1.1 Detail", "1.1", "1")
	doc.Append(sec)
	sec.Append(doctree.NewParagraph("Opening words.", "1", "Times", 10, nil, 2), sub)
	sub.Append(
		doctree.NewParagraph("More words here.", "1", "Times", 10, nil, 3),
		doctree.NewFloat("Figure 1: A chart", "1", "1"),
		doctree.NewFootnote("1 A note", "1", "1"),
	)
	res := &heuristics.Result{
		Document:  doc,
		Removed:   []*doctree.Node{doctree.NewParagraph("Cover", "1", "Times", 10, nil, 1)},
		Fragments: 7,
	}

	job := NewJob("doc.pdf", "", "en", []byte("raw"))
	job.SetResult(res)

	if job.Document() != doc {
		t.Error("expected the converted document to be stored")
	}
	if job.FileData() != nil {
		t.Error("expected the raw file to be released")
	}
	snap := job.Snapshot()
	if snap.Title != "Found Title" {
		t.Errorf("expected title from the document, got %q", snap.Title)
	}
	want := Progress{Fragments: 7, Sections: 2, Paragraphs: 2, Floats: 1, Footnotes: 1, Removed: 1, Errors: []string{}}
	if snap.Progress.Fragments != want.Fragments || snap.Progress.Sections != want.Sections ||
		snap.Progress.Paragraphs != want.Paragraphs || snap.Progress.Floats != want.Floats ||
		snap.Progress.Footnotes != want.Footnotes || snap.Progress.Removed != want.Removed {
		t.Errorf("expected progress %+v, got %+v", want, snap.Progress)
	}
}

func TestJob_SetResultKeepsGivenTitle(t *testing.T) {
	doc := doctree.NewDocument(&doctree.Meta{Title: "From File"})
	job := NewJob("doc.txt", "Given", "", []byte("x"))
	job.SetResult(&heuristics.Result{Document: doc})
	if job.Snapshot().Title != "Given" {
		t.Errorf("expected the submitted title to win, got %q", job.Snapshot().Title)
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("file content here")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
