package safety

import (
	"fmt"
	"strings"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

// UnpluggedReport renders one line per handle whose device is missing, in
// input order, formatted "<kind>: <port>,\n". The result is empty when
// every handle is attached.
func UnpluggedReport(host v5.Host, devices []v5.Device) string {
	var b strings.Builder
	for _, dev := range devices {
		kind := host.PluggedKind(dev.Port())
		if kind.Present() {
			continue
		}
		fmt.Fprintf(&b, "%s: %d,\n", kind, dev.Port())
	}
	return b.String()
}
