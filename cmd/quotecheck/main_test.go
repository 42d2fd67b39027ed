package main

import (
	"context"
	"testing"
)

func TestDriveOverrideSource(t *testing.T) {
	fx := newFixtures(10)
	src := driveOverrideSource{SnapshotSource: fx, perKm: 299, minDrive: 4900}

	snap, err := src.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot() error = %v", err)
	}
	if snap.Config.PerKm != 299 || snap.Config.MinDrive != 4900 {
		t.Errorf("overridden config = %d/%d, want 299/4900", snap.Config.PerKm, snap.Config.MinDrive)
	}

	// The override happens on the fetched copy, not shared state.
	plain, err := fx.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot() error = %v", err)
	}
	if plain.Config.PerKm != 150 || plain.Config.MinDrive != 2500 {
		t.Errorf("fixture config = %d/%d, want untouched 150/2500", plain.Config.PerKm, plain.Config.MinDrive)
	}
}

func TestDriveOverrideSource_ZeroLeavesConfig(t *testing.T) {
	fx := newFixtures(10)
	src := driveOverrideSource{SnapshotSource: fx}

	snap, err := src.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot() error = %v", err)
	}
	if snap.Config.PerKm != 150 || snap.Config.MinDrive != 2500 {
		t.Errorf("config = %d/%d, want 150/2500", snap.Config.PerKm, snap.Config.MinDrive)
	}
}
