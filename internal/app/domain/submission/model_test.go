package submission

import "testing"

func TestCloneIsDeep(t *testing.T) {
	orig := Submission{
		ID:   "s1",
		Kind: KindApp,
		AppData: &AppFormData{
			Title:       "App",
			Screenshots: []string{"a.png"},
		},
		ReviewHistory: []ReviewEvent{{Status: "pending"}},
	}

	clone := orig.Clone()
	clone.AppData.Title = "Changed"
	clone.AppData.Screenshots[0] = "b.png"
	clone.ReviewHistory[0].Status = "approved"

	if orig.AppData.Title != "App" {
		t.Fatalf("clone aliases payload struct")
	}
	if orig.AppData.Screenshots[0] != "a.png" {
		t.Fatalf("clone aliases payload slices")
	}
	if orig.ReviewHistory[0].Status != "pending" {
		t.Fatalf("clone aliases review history")
	}
}

func TestClonePreservesNilPayloads(t *testing.T) {
	clone := (Submission{ID: "s1", Kind: KindDeal}).Clone()
	if clone.AppData != nil || clone.DealData != nil {
		t.Fatalf("expected nil payloads preserved")
	}
	if clone.ReviewHistory != nil {
		t.Fatalf("expected nil history preserved")
	}
}
