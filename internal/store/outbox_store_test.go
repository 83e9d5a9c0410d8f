package store_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dhlink/internal/domain"
	"dhlink/internal/store"
)

func record(i int) domain.OutboxRecord {
	return domain.OutboxRecord{
		ID: domain.MessageID(fmt.Sprintf("m-%d", i)),
		To: "server",
		Envelope: domain.EncryptedEnvelope{
			Ciphertext: fmt.Sprintf("ct-%d", i),
			IV:         "AAAAAAAAAAAAAAAAAAAAAA==",
		},
		KeyFingerprint: "00112233445566778899",
		SentUTC:        int64(1700000000 + i),
	}
}

func TestOutbox_EmptyStore(t *testing.T) {
	var s domain.OutboxStore = store.NewOutboxFileStore(t.TempDir())
	got, err := s.ListOutbox(10)
	if err != nil {
		t.Fatalf("ListOutbox: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d records from an empty store", len(got))
	}
}

func TestOutbox_AppendList_OK(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "home")
	var s domain.OutboxStore = store.NewOutboxFileStore(dir)

	for i := 0; i < 3; i++ {
		if err := s.AppendOutbox(record(i)); err != nil {
			t.Fatalf("AppendOutbox(%d): %v", i, err)
		}
	}
	all, err := s.ListOutbox(0)
	if err != nil {
		t.Fatalf("ListOutbox: %v", err)
	}
	if len(all) != 3 || all[0] != record(0) || all[2] != record(2) {
		t.Fatalf("records = %+v", all)
	}

	last, err := s.ListOutbox(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 2 || last[0].ID != "m-1" || last[1].ID != "m-2" {
		t.Fatalf("last two = %+v", last)
	}
}

func TestOutbox_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	if err := store.NewOutboxFileStore(dir).AppendOutbox(record(7)); err != nil {
		t.Fatal(err)
	}
	got, err := store.NewOutboxFileStore(dir).ListOutbox(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != record(7) {
		t.Fatalf("reopened store = %+v", got)
	}
}

func TestOutbox_CapacityDropsOldest(t *testing.T) {
	s := store.NewOutboxFileStore(t.TempDir()).WithCapacity(2)
	for i := 0; i < 5; i++ {
		if err := s.AppendOutbox(record(i)); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.ListOutbox(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "m-3" || got[1].ID != "m-4" {
		t.Fatalf("records = %+v", got)
	}
}

func TestOutbox_FileIsPrivateAndClean(t *testing.T) {
	dir := t.TempDir()
	s := store.NewOutboxFileStore(dir)
	if err := s.AppendOutbox(record(1)); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(filepath.Join(dir, "outbox.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := fi.Mode().Perm(); perm != 0o600 {
		t.Fatalf("outbox mode = %o, want 600", perm)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestOutbox_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "outbox.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := store.NewOutboxFileStore(dir)
	if _, err := s.ListOutbox(0); err == nil {
		t.Fatal("expected error for corrupt outbox")
	}
	if err := s.AppendOutbox(record(1)); err == nil {
		t.Fatal("append over a corrupt outbox should fail rather than discard it")
	}
}
