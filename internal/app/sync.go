package app

import (
	"context"

	"go.uber.org/zap"
)

// SyncReport summarizes a cache refresh.
type SyncReport struct {
	Devices   int `json:"devices"`
	Playlists int `json:"playlists"`
}

// Sync refreshes the device and playlist snapshots from the API. Each
// snapshot is replaced wholesale; partial failures leave the previous
// snapshot in place for the cache that did not refresh.
func (a *Context) Sync(ctx context.Context) (SyncReport, error) {
	client, err := a.API()
	if err != nil {
		return SyncReport{}, err
	}

	devices, err := client.Devices().List(ctx)
	if err != nil {
		return SyncReport{}, err
	}
	if err := a.Devices.Save(devices); err != nil {
		return SyncReport{}, err
	}

	playlists, err := client.Playlists().ListAll(ctx)
	if err != nil {
		return SyncReport{}, err
	}
	if err := a.Playlists.Save(playlists); err != nil {
		return SyncReport{}, err
	}

	a.Log.Debug("cache synced",
		zap.Int("devices", len(devices)),
		zap.Int("playlists", len(playlists)))
	return SyncReport{Devices: len(devices), Playlists: len(playlists)}, nil
}
