package config

// MaxPort is the highest valid TCP port
const MaxPort = 65535

// Ledger backends
const (
	LedgerMemory   = "memory"
	LedgerPostgres = "postgres"
)

// Allowed values
var (
	LogFormats     = []string{"text", "json"}
	SchedulerModes = []string{"auto", "global", "region"}
	LedgerBackends = []string{LedgerMemory, LedgerPostgres}
)

// Error messages
const (
	ErrMsgParseConfig = "failed to parse environment"
)
