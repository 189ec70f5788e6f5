package service

import (
	"errors"
	"testing"

	"konsert-backend/internal/models"
)

func newTestHomepageService() (*HomepageService, *ArtistService, *VenueService) {
	artists := NewArtistService(newMemoryArtistRepository(), nil)
	venues := NewVenueService(newMemoryVenueRepository(), nil)
	homepage := NewHomepageService(newMemorySettingRepository(), artists, venues, nil, "Konsert")
	return homepage, artists, venues
}

func TestHomepageService_GetDefaults(t *testing.T) {
	svc, _, _ := newTestHomepageService()

	homepage, err := svc.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if homepage.Title != "Konsert" {
		t.Fatalf("expected site name as default title, got %q", homepage.Title)
	}
	if homepage.FeaturedArtistIDs == nil || homepage.FeaturedVenueIDs == nil {
		t.Fatalf("expected empty featured lists, got nil")
	}
}

func TestHomepageService_UpdateRejectsUnknownIDs(t *testing.T) {
	svc, _, _ := newTestHomepageService()

	ids := []uint{7}
	_, err := svc.Update(models.UpdateHomepageRequest{FeaturedArtistIDs: &ids})
	if !errors.Is(err, ErrFeaturedNotFound) {
		t.Fatalf("expected ErrFeaturedNotFound, got %v", err)
	}
}

func TestHomepageService_ResolveHonoursDraftMode(t *testing.T) {
	svc, artists, venues := newTestHomepageService()

	live, _ := artists.Create(models.CreateArtistRequest{Title: "Live", Published: true})
	hidden, _ := artists.Create(models.CreateArtistRequest{Title: "Hidden"})
	hall, _ := venues.Create(models.CreateVenueRequest{Title: "Hall", Published: true})

	artistIDs := []uint{hidden.ID, live.ID, live.ID}
	venueIDs := []uint{hall.ID}
	updated, err := svc.Update(models.UpdateHomepageRequest{
		Title:             stringPtr("  Velkommen  "),
		FeaturedArtistIDs: &artistIDs,
		FeaturedVenueIDs:  &venueIDs,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Velkommen" || len(updated.FeaturedArtistIDs) != 2 {
		t.Fatalf("unexpected stored homepage %+v", updated)
	}

	public, err := svc.Resolve(false)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(public.FeaturedArtists) != 1 || public.FeaturedArtists[0].ID != live.ID {
		t.Fatalf("expected only the published artist, got %+v", public.FeaturedArtists)
	}
	if len(public.FeaturedVenues) != 1 {
		t.Fatalf("expected featured venue, got %+v", public.FeaturedVenues)
	}

	draft, err := svc.Resolve(true)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(draft.FeaturedArtists) != 2 || draft.FeaturedArtists[0].ID != hidden.ID {
		t.Fatalf("expected draft homepage to include hidden artist first, got %+v", draft.FeaturedArtists)
	}
}
