// Package control
// Author: momentics <momentics@gmail.com>
//
// Opt-in observation for the routing layer: a counter registry, an
// observer feeding it, a bounded trace of recent allocation events, and
// a debug probe registry with stock heap-capacity probes. Nothing here
// is on the router's hot path unless explicitly attached.
package control
