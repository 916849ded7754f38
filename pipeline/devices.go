package pipeline

import (
	"fmt"
	"time"

	"axiapac.com/timeclock/config"
	"axiapac.com/timeclock/ingest"
)

// BuildDevices resolves configured devices to their terminal source.
func BuildDevices(devices []config.DeviceConfig, bridge, export ingest.Terminal) ([]ingest.Device, error) {
	out := make([]ingest.Device, 0, len(devices))
	for _, d := range devices {
		device := ingest.Device{ID: d.ID, Name: d.Name, Address: d.Address}

		switch d.Kind {
		case config.DeviceKindCSV:
			device.Terminal = export
		case config.DeviceKindBridge, "":
			device.Terminal = bridge
		default:
			return nil, fmt.Errorf("device %s: unsupported kind %q", d.ID, d.Kind)
		}

		if d.Timezone != "" {
			loc, err := time.LoadLocation(d.Timezone)
			if err != nil {
				return nil, fmt.Errorf("device %s: %w", d.ID, err)
			}
			device.Location = loc
		}
		out = append(out, device)
	}
	return out, nil
}
