package frs

import (
	"frsmenu/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("frsmenu.lib.scrapers.frs")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes clients created afterwards dump their raw
// HTTP traffic to `out` (only when debug logging is enabled).
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
