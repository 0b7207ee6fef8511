package api

import (
	"context"
	"net/http"
)

// DevicesClient exposes playback device operations.
type DevicesClient struct {
	c *Client
}

// Devices returns the device family.
func (c *Client) Devices() DevicesClient { return DevicesClient{c} }

// List returns every device currently known to the remote.
func (d DevicesClient) List(ctx context.Context) ([]Device, error) {
	raw, err := d.c.do(ctx, http.MethodGet, "/me/player/devices", nil, nil)
	if err != nil {
		return nil, err
	}
	var w struct {
		Devices []wireDevice `json:"devices"`
	}
	if err := decode(raw, &w); err != nil {
		return nil, err
	}
	devices := make([]Device, 0, len(w.Devices))
	for _, wd := range w.Devices {
		devices = append(devices, wd.device())
	}
	return devices, nil
}

// SetActive transfers playback to the device and starts playing there.
func (d DevicesClient) SetActive(ctx context.Context, id string) error {
	body := map[string]any{"device_ids": []string{id}, "play": true}
	_, err := d.c.do(ctx, http.MethodPut, "/me/player", nil, body)
	return err
}
