package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 64

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// Stream settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// FilterParam is the query parameter holding a comma separated list of event types
	FilterParam = "types"
)

// Stream event types. Pipeline outcomes keep their bus type names.
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "Outcome stream client connected"
	LogMsgClientDisconnected = "Outcome stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting outcome to stream clients"
	LogMsgBroadcastDropped   = "Outcome stream buffer full, event dropped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgSubscribed         = "Outcome stream subscribed to bus"
	ErrMsgStreamUnsupported  = "streaming not supported"
)
