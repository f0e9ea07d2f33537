package match

import (
	"testing"

	"ratebridge/internal/ratings"
)

func TestBestMatchExactIdentifierWins(t *testing.T) {
	catalog := []ratings.TargetRating{
		{Title: "Totally Different Film", TargetID: "tt1", Rating: 7},
		{Title: "The Matrix", Year: "1999", TargetID: "tt2", Rating: 9},
	}
	query := ratings.SourceRating{Title: "The Matrix", Year: "1999", SourceID: "s1", TargetID: "tt1", Rating: 5}

	match := BestMatch(query, catalog, DefaultPolicy())
	if match == nil {
		t.Fatal("expected an exact match")
	}
	if !match.Exact {
		t.Fatal("identifier match must be marked exact")
	}
	if match.Target.TargetID != "tt1" {
		t.Fatalf("exact id must beat a better title match, got %q", match.Target.TargetID)
	}
	if match.Score != 1.0 {
		t.Fatalf("exact match score = %v, want 1.0", match.Score)
	}
}

func TestBestMatchFuzzyWithYearBonus(t *testing.T) {
	catalog := []ratings.TargetRating{
		{Title: "The Matrix", Year: "1999", TargetID: "tt0133093", Rating: 9},
		{Title: "The Matrix Reloaded", Year: "2003", TargetID: "tt0234215", Rating: 7},
	}
	query := ratings.SourceRating{Title: "黑客帝国", EnglishTitle: "Matrix", Year: "1999", SourceID: "s1", Rating: 5}

	match := BestMatch(query, catalog, DefaultPolicy())
	if match == nil {
		t.Fatal("expected a fuzzy match")
	}
	if match.Exact {
		t.Fatal("title match must not be marked exact")
	}
	if match.Target.TargetID != "tt0133093" {
		t.Fatalf("matched %q, want tt0133093", match.Target.TargetID)
	}
	if match.Score <= 0.8 || match.Score > 1.0 {
		t.Fatalf("score out of expected range: %v", match.Score)
	}
}

func TestBestMatchBelowThreshold(t *testing.T) {
	catalog := []ratings.TargetRating{
		{Title: "Completely Unrelated", Year: "1980", TargetID: "tt9", Rating: 5},
	}
	query := ratings.SourceRating{Title: "The Matrix", Year: "1999", SourceID: "s1", Rating: 5}

	if match := BestMatch(query, catalog, DefaultPolicy()); match != nil {
		t.Fatalf("expected no match, got %q score %v", match.Target.TargetID, match.Score)
	}
}

func TestBestMatchEmptyCatalog(t *testing.T) {
	query := ratings.SourceRating{Title: "The Matrix", SourceID: "s1", Rating: 5}
	if match := BestMatch(query, nil, DefaultPolicy()); match != nil {
		t.Fatalf("expected nil for empty catalog, got %+v", match)
	}
}

func TestBestMatchTieKeepsEarliestCatalogEntry(t *testing.T) {
	catalog := []ratings.TargetRating{
		{Title: "Solaris", Year: "1972", TargetID: "tt0069293", Rating: 8},
		{Title: "Solaris", Year: "1972", TargetID: "tt0000001", Rating: 6},
	}
	query := ratings.SourceRating{Title: "Solaris", Year: "1972", SourceID: "s1", Rating: 4}

	match := BestMatch(query, catalog, DefaultPolicy())
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Target.TargetID != "tt0069293" {
		t.Fatalf("tie must keep the earliest entry, got %q", match.Target.TargetID)
	}
}

func TestBestMatchYearBonusCapsAtOne(t *testing.T) {
	catalog := []ratings.TargetRating{
		{Title: "Heat", Year: "1995", TargetID: "tt0113277", Rating: 8},
	}
	query := ratings.SourceRating{Title: "Heat", Year: "1995", SourceID: "s1", Rating: 5}

	match := BestMatch(query, catalog, DefaultPolicy())
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Score != 1.0 {
		t.Fatalf("score must cap at 1.0, got %v", match.Score)
	}
}
