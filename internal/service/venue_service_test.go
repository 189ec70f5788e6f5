package service

import (
	"testing"

	"konsert-backend/internal/models"
)

func TestVenueService_CreateNormalisesFields(t *testing.T) {
	svc := NewVenueService(newMemoryVenueRepository(), nil)

	venue, err := svc.Create(models.CreateVenueRequest{
		Title:       "Rockefeller Music Hall",
		Description: `<p onclick="x()">Big room</p>`,
		Address:     "  Torggata   16 ",
		City:        " Oslo ",
		Capacity:    1350,
		Published:   true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if venue.Slug != "rockefeller-music-hall" {
		t.Fatalf("unexpected slug %q", venue.Slug)
	}
	if venue.Description != "<p>Big room</p>" {
		t.Fatalf("expected event handler stripped, got %q", venue.Description)
	}
	if venue.Address != "Torggata 16" || venue.City != "Oslo" {
		t.Fatalf("expected address fields collapsed, got %q / %q", venue.Address, venue.City)
	}
	if venue.PublishedAt == nil {
		t.Fatalf("expected published venue to carry a publication time")
	}

	found, err := svc.GetBySlug("rockefeller-music-hall", false)
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if found.ID != venue.ID {
		t.Fatalf("expected venue %d, got %d", venue.ID, found.ID)
	}
}

func TestVenueService_UpdateCapacityOnly(t *testing.T) {
	svc := NewVenueService(newMemoryVenueRepository(), nil)

	venue, _ := svc.Create(models.CreateVenueRequest{Title: "Blå", City: "Oslo"})
	capacity := 400

	updated, err := svc.Update(venue.ID, models.UpdateVenueRequest{Capacity: &capacity})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Capacity != 400 || updated.City != "Oslo" || updated.Slug != "bla" {
		t.Fatalf("unexpected venue after update %+v", updated)
	}
}
