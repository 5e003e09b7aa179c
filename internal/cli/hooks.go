package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports graph, store and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnNodeCreated(nodeID, typeName string) {
	h.logger.Debug("node created", "id", nodeID, "type", typeName)
}

func (h *logHooks) OnConnect(parentID, childID string, accepted bool, reason string) {
	h.logger.Debug("connect", "parent", parentID, "child", childID, "accepted", accepted, "reason", reason)
}

func (h *logHooks) OnDisconnect(parentID, childID string) {
	h.logger.Debug("disconnect", "parent", parentID, "child", childID)
}

func (h *logHooks) OnNodeDeleted(nodeID string) {
	h.logger.Debug("node deleted", "id", nodeID)
}

func (h *logHooks) OnRetype(nodeID, from, to string, severed int) {
	h.logger.Debug("retype", "id", nodeID, "from", from, "to", to, "severed", severed)
}

func (h *logHooks) OnLoad(_ context.Context, backend, name string, size int, d time.Duration, err error) {
	h.logger.Debug("store load", "backend", backend, "graph", name, "bytes", size, "elapsed", d, "err", err)
}

func (h *logHooks) OnSave(_ context.Context, backend, name string, size int, d time.Duration, err error) {
	h.logger.Debug("store save", "backend", backend, "graph", name, "bytes", size, "elapsed", d, "err", err)
}

func (h *logHooks) OnDelete(_ context.Context, backend, name string, err error) {
	h.logger.Debug("store delete", "backend", backend, "graph", name, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
