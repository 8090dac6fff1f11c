// Package router
// Author: momentics <momentics@gmail.com>
//
// Threshold-based allocation routing between a fast internal pool and a
// larger external (SPIRAM-style) pool. Requests at or above the
// threshold prefer external memory and may fall back to internal only
// while a configured reserve of internal bytes stays free; smaller
// requests never leave the internal pool. The router is stateless
// between calls and performs no locking of its own.
package router
