package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/aorozco-g/arch-setup/prompt"
	"github.com/aorozco-g/arch-setup/step"
	"github.com/aorozco-g/arch-setup/system"
)

// joinWifi scans for networks, asks which one to join, and connects
// with a hidden passphrase prompt. Declining the initial confirmation
// completes the step without connecting.
func joinWifi(e system.Exec, p prompt.Prompter) step.Action {
	return func(ctx context.Context) error {
		proceed, err := p.Confirm("Connect to a Wi-Fi network?", true)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}

		out, err := e.Run(ctx, "nmcli -t -f SSID dev wifi list")
		if err != nil {
			return fmt.Errorf("scan networks: %w", err)
		}
		ssids := splitNonEmptyLines(out)
		if len(ssids) == 0 {
			return fmt.Errorf("no networks found")
		}

		ssid, err := p.Select("Choose a network", ssids)
		if err != nil {
			return err
		}
		pass, err := p.Secret("Passphrase for " + ssid)
		if err != nil {
			return err
		}

		command := fmt.Sprintf("nmcli dev wifi connect %q password %q", ssid, pass)
		if _, err := e.Run(ctx, command); err != nil {
			return fmt.Errorf("connect to %s: %w", ssid, err)
		}
		return nil
	}
}

// pairBluetooth powers the adapter, scans briefly, and pairs the device
// the user picks. Declining the confirmation completes the step.
func pairBluetooth(e system.Exec, p prompt.Prompter) step.Action {
	return func(ctx context.Context) error {
		proceed, err := p.Confirm("Pair a Bluetooth device?", false)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}

		if _, err := e.Run(ctx, "bluetoothctl power on"); err != nil {
			return fmt.Errorf("power on adapter: %w", err)
		}
		out, err := e.Run(ctx, "bluetoothctl --timeout 10 scan on >/dev/null && bluetoothctl devices")
		if err != nil {
			return fmt.Errorf("scan devices: %w", err)
		}
		devices := splitNonEmptyLines(out)
		if len(devices) == 0 {
			return fmt.Errorf("no devices found")
		}

		device, err := p.Select("Choose a device", devices)
		if err != nil {
			return err
		}
		// bluetoothctl lists "Device <MAC> <name>"; the MAC is field two.
		fields := strings.Fields(device)
		if len(fields) < 2 {
			return fmt.Errorf("unparseable device entry %q", device)
		}
		mac := fields[1]

		if _, err := e.Run(ctx, "bluetoothctl pair "+mac+" && bluetoothctl connect "+mac); err != nil {
			return fmt.Errorf("pair %s: %w", mac, err)
		}
		return nil
	}
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
