package store

import (
	"testing"
)

func TestAppendTurnIdsIncrease(t *testing.T) {
	s := NewDocumentSession("sess-1")

	first := s.AppendTurn(RoleUser, "What is Ada's age?", "")
	second := s.AppendTurn(RoleAssistant, "36", "Ada,36")

	if first.Id != 1 || second.Id != 2 {
		t.Errorf("turn ids = %d, %d, want 1, 2", first.Id, second.Id)
	}
	if len(s.Turns) != 2 {
		t.Fatalf("len(Turns) = %d, want 2", len(s.Turns))
	}
	if s.Turns[0].Role != RoleUser || s.Turns[1].Role != RoleAssistant {
		t.Error("turns must keep append order")
	}
}

func TestResetKeepsTurnCounter(t *testing.T) {
	s := NewDocumentSession("sess-1")
	s.Status = StatusReady
	s.RawText = "text"
	s.FileName = "report.pdf"
	s.FileSize = 1024
	s.PendingQuestion = true
	s.AppendTurn(RoleUser, "q", "")

	s.Reset()

	if s.Status != StatusEmpty || s.RawText != "" || s.FileName != "" || s.FileSize != 0 {
		t.Error("Reset must clear the loaded document")
	}
	if s.Turns != nil || s.PendingQuestion {
		t.Error("Reset must clear conversation and pending flag")
	}

	turn := s.AppendTurn(RoleUser, "again", "")
	if turn.Id != 2 {
		t.Errorf("post-reset turn id = %d, want 2 (ids never repeat)", turn.Id)
	}
}

func TestResetAdvancesEpoch(t *testing.T) {
	s := NewDocumentSession("sess-1")
	before := s.Epoch

	s.Reset()
	s.Reset()

	if s.Epoch != before+2 {
		t.Errorf("Epoch = %d, want %d", s.Epoch, before+2)
	}
}
