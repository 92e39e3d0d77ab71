package radio

import (
	"fmt"
	"log"
	"os/exec"
)

// execCommand allows mocking in tests.
var execCommand = exec.Command

// SetInterfaceChannel sets the WiFi channel for a given interface.
func SetInterfaceChannel(iface string, channel int) error {
	if channel <= 0 {
		return fmt.Errorf("invalid channel: %d", channel)
	}
	cmd := execCommand("iw", iface, "set", "channel", fmt.Sprintf("%d", channel))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to set channel %d on %s: %v (%s)", channel, iface, err, string(output))
	}
	return nil
}

// EnableMonitorMode puts the interface into monitor mode. Injection of
// management frames needs the card listening raw.
func EnableMonitorMode(iface string) error {
	log.Printf("Enabling monitor mode on %s...", iface)
	if err := runCmd("ip", "link", "set", iface, "down"); err != nil {
		return err
	}
	if err := runCmd("iw", iface, "set", "type", "monitor"); err != nil {
		log.Printf("Hint: if you see 'Device or resource busy', stop NetworkManager/wpa_supplicant and retry.")
		return err
	}
	if err := runCmd("ip", "link", "set", iface, "up"); err != nil {
		return err
	}
	return nil
}

// DisableMonitorMode puts the interface back into managed mode.
func DisableMonitorMode(iface string) {
	log.Printf("Restoring managed mode on %s...", iface)
	runCmd("ip", "link", "set", iface, "down")
	runCmd("iw", iface, "set", "type", "managed")
	runCmd("ip", "link", "set", iface, "up")
}

func runCmd(name string, args ...string) error {
	cmd := execCommand(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Command failed: %s %v\nOutput: %s", name, args, string(output))
		return err
	}
	return nil
}
